package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "CATALOG_PATH", "SESSION_TTL", "SWEEP_INTERVAL", "OVERTIME_STEP_MINUTES", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 30, cfg.OvertimeStepMinutes)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "payroll.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SWEEP_INTERVAL", "bogus")
	t.Setenv("OVERTIME_STEP_MINUTES", "0")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := FromEnv()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "payroll.db", cfg.DBPath)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 0, cfg.OvertimeStepMinutes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestNewLogger_UsesLevel(t *testing.T) {
	cfg := Config{LogLevel: logrus.WarnLevel}
	logger := cfg.NewLogger()
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}
