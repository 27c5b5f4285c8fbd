package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/schemasync/pkg/logging"
)

func TestLoggerFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("SetDefault sets global logger", func(t *testing.T) {
		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.DebugLevel))

		logging.Debug().Msg("debug")
		logging.Info().Msg("info")
		logging.Warn().Msg("warn")
		logging.Error().Msg("error")

		output := buf.String()
		for _, want := range []string{"debug", "info", "warn", "error"} {
			assert.Contains(t, output, want)
		}
	})

	t.Run("New creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger := logging.New(&buf)
		logger.Info().Msg("json test")

		assert.Contains(t, buf.String(), `"level":"info"`)
		assert.Contains(t, buf.String(), `"message":"json test"`)
	})

	t.Run("Err adds error to event", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.ErrorLevel))

		logging.Err(assert.AnError).Msg("error test")
		assert.Contains(t, buf.String(), assert.AnError.Error())
	})
}

func TestConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	t.Run("defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("level parsing", func(t *testing.T) {
		tests := []struct {
			level string
			want  zerolog.Level
		}{
			{"debug", zerolog.DebugLevel},
			{"WARN", zerolog.WarnLevel},
			{"warning", zerolog.WarnLevel},
			{"off", zerolog.Disabled},
			{"bogus", zerolog.InfoLevel},
		}
		for _, tt := range tests {
			t.Run(tt.level, func(t *testing.T) {
				logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Format: "json", Output: "discard"})
				assert.Equal(t, tt.want, logger.GetLevel())
			})
		}
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestContextHelpers(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	ctx = logging.WithRunID(ctx, "run-123")
	ctx = logging.WithTarget(ctx, "discovered-schemas", "orders", "a1b2c3", "OrderEvent")
	ctx = logging.WithAction(ctx, "advance")
	ctx = logging.WithVersion(ctx, 7)

	logging.FromContext(ctx).Info().Msg("publishing")

	assert.Equal(t, "run-123", logging.RunID(ctx))
	tl.AssertContains(t, `"run_id":"run-123"`)
	tl.AssertContains(t, `"registry":"discovered-schemas"`)
	tl.AssertContains(t, `"schema":"orders"`)
	tl.AssertContains(t, `"api_id":"a1b2c3"`)
	tl.AssertContains(t, `"model":"OrderEvent"`)
	tl.AssertContains(t, `"action":"advance"`)
	tl.AssertContains(t, `"version":7`)
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}

func TestWithFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"available": []int{1, 2, 3},
		"dry_run":   true,
	})
	logging.Ctx(ctx).Debug().Msg("listed")

	tl.AssertContains(t, `"available":[1,2,3]`)
	tl.AssertContains(t, `"dry_run":true`)
}
