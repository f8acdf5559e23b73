/*
config.go - Process configuration from the environment

PURPOSE:
  Collects everything cmd/server needs to start: listen port, session
  database path, log level, optional shift catalog file, session expiry
  and the default overtime step. Command-line flags in main override
  PORT and DB_PATH.

ENVIRONMENT:
  PORT                   HTTP port (default 8080)
  DB_PATH                SQLite path (default ":memory:")
  LOG_LEVEL              logrus level name (default "info")
  CATALOG_PATH           Shift catalog JSON; empty uses the built-in table
  SESSION_TTL            Idle time before a timesheet is swept (default 12h)
  SWEEP_INTERVAL         How often the sweeper runs (default 15m)
  OVERTIME_STEP_MINUTES  Overtime rounding step for new timesheets (default 30, 0 = raw)
  CORS_ORIGINS           Comma-separated allowed origins

  A .env file in the working directory is loaded first when present.

SEE ALSO:
  - cmd/server/main.go: Consumer
*/
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-payroll/generic"
)

// Config is the resolved process configuration.
type Config struct {
	Port                int
	DBPath              string
	LogLevel            logrus.Level
	CatalogPath         string
	SessionTTL          time.Duration
	SweepInterval       time.Duration
	OvertimeStepMinutes int
	CORSOrigins         []string
}

// Load reads .env (if any) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	level, err := logrus.ParseLevel(getEnvString("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}

	return Config{
		Port:                getEnvInt("PORT", 8080),
		DBPath:              getEnvString("DB_PATH", ":memory:"),
		LogLevel:            level,
		CatalogPath:         getEnvString("CATALOG_PATH", ""),
		SessionTTL:          getEnvDuration("SESSION_TTL", 12*time.Hour),
		SweepInterval:       getEnvDuration("SWEEP_INTERVAL", 15*time.Minute),
		OvertimeStepMinutes: getEnvInt("OVERTIME_STEP_MINUTES", generic.DefaultOvertimeStep),
		CORSOrigins:         getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
	}
}

// NewLogger returns a logger configured for this process.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(c.LogLevel)
	return logger
}

// helper function to read an environment or return a default value
func getEnvString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnvString(key, strconv.Itoa(defaultVal)))
	if err == nil {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val, err := time.ParseDuration(getEnvString(key, defaultVal.String()))
	if err == nil && val > 0 {
		return val
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
