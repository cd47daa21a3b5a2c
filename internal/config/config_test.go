package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "7788", cfg.ServerPort)
	require.Equal(t, time.Hour, cfg.JWTExpiration)
	require.Equal(t, 24*time.Hour, cfg.PlanRetention)
	require.Equal(t, time.Hour, cfg.SweepInterval)
}

func TestLoadParsesDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PLAN_RETENTION", "72h")
	t.Setenv("SWEEP_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 72*time.Hour, cfg.PlanRetention)
	require.Equal(t, 30*time.Minute, cfg.SweepInterval)
}
