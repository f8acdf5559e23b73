/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift payroll server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Configure logging
  3. Load the shift catalog (CATALOG_PATH or built-in table)
  4. Initialize SQLite session store
  5. Create API handler and router
  6. Start the session sweeper
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT, default 8080)
  -db      SQLite database path (overrides DB_PATH, default ":memory:")

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the sweeper
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection

EXAMPLES:
  # Session data only in memory
  ./server

  # Keep timesheets across restarts
  ./server -db="./data/payroll.db"

  # Custom shift table
  CATALOG_PATH=./shifts.json ./server -port=3000

ENVIRONMENT:
  See config/config.go.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/shift-payroll/api"
	"github.com/warp/shift-payroll/config"
	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/shift"
	"github.com/warp/shift-payroll/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	log := cfg.NewLogger()

	// Shift catalog
	catalog := shift.DefaultCatalog()
	if cfg.CatalogPath != "" {
		c, err := factory.LoadCatalogFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load shift catalog: %v", err)
		}
		catalog = c
	}
	log.WithField("shifts", catalog.Len()).Info("Shift catalog loaded")

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, catalog, log)
	handler.OvertimeStep = cfg.OvertimeStepMinutes

	// Create router
	router := api.NewRouter(handler, cfg.CORSOrigins)

	// Session expiry
	sweeper := api.NewSessionSweeper(store, log)
	sweeper.TTL = cfg.SessionTTL
	sweeper.CheckInterval = cfg.SweepInterval
	sweeper.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Server starting on http://localhost:%d", *port)
		log.Infof("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
