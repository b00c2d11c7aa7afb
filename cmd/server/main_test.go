package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/config"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter"
)

func TestFlags_Apply(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--algorithm", "fixed-window",
		"--limit", "10",
		"--window", "1s",
	}))

	var f flags
	f.algorithm, _ = cmd.Flags().GetString("algorithm")
	f.limit, _ = cmd.Flags().GetInt("limit")
	f.window, _ = cmd.Flags().GetDuration("window")

	cfg := config.Default()
	require.NoError(t, f.apply(cmd, &cfg))

	assert.Equal(t, ratelimiter.FixedWindowLimiterType, cfg.Limiter.Type)
	assert.Equal(t, 10, cfg.Limiter.Limit)
	assert.Equal(t, time.Second, cfg.Limiter.Window)
	assert.Equal(t, 1.0, cfg.Limiter.Rate, "unset flags keep the configured value")
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestFlags_ApplyRejectsUnknownAlgorithm(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--algorithm", "gcra"}))

	cfg := config.Default()
	err := flags{algorithm: "gcra"}.apply(cmd, &cfg)
	assert.EqualError(t, err, `unknown rate limiter type "gcra"`)
}
