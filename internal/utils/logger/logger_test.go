package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"history/internal/app/server/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "unknown environment",
			env:           "staging",
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.expectedLevel <= slog.LevelInfo, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestNewWithLevel(t *testing.T) {
	ctx := context.Background()

	quiet := NewWithLevel(config.EnvLocal, "warn")
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.True(t, quiet.Enabled(ctx, slog.LevelWarn))

	loud := NewWithLevel(config.EnvProd, "DEBUG")
	assert.True(t, loud.Enabled(ctx, slog.LevelDebug))

	fallback := NewWithLevel(config.EnvProd, "verbose")
	assert.False(t, fallback.Enabled(ctx, slog.LevelDebug))
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, config.EnvProd, "")

	log.Debug("hidden")
	log.Info("shown", "owner", "alice")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"owner":"alice"`)
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog(&bytes.Buffer{})
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_Output(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Info("record created", "record_id", 7, "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "record created")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"record_id": 7`)
	assert.Contains(t, out, `"error": "boom"`)
}
