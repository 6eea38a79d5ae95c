package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/pkg/logging"
)

// keepGlobals restores the default logger and zerolog's global level.
func keepGlobals(t *testing.T) {
	t.Helper()
	logger := *logging.Default()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(logger)
		zerolog.SetGlobalLevel(level)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.True(t, cfg.NoColor)
	assert.False(t, cfg.AddCaller)
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("unset keeps defaults", func(t *testing.T) {
		for _, env := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "LOG_TIME_FORMAT", "DEBUG"} {
			t.Setenv(env, "")
		}
		assert.Equal(t, logging.DefaultConfig(), logging.ConfigFromEnv())
	})

	t.Run("variables override", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_OUTPUT", "stdout")
		t.Setenv("LOG_TIME_FORMAT", "rfc3339")

		cfg := logging.ConfigFromEnv()
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
		assert.Equal(t, "rfc3339", cfg.TimeFormat)
	})

	t.Run("DEBUG without LOG_LEVEL", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DEBUG", "1")
		assert.Equal(t, "debug", logging.ConfigFromEnv().Level)
	})
}

func TestNewLoggerFromConfig(t *testing.T) {
	keepGlobals(t)

	t.Run("writes JSON to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ultrasearch.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
		})
		logger.Debug().Str("instrument", "ultracam").Msg("catalog loaded")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"instrument":"ultracam"`)
		assert.Contains(t, string(data), `"caller":`, "debug adds the caller")
	})

	t.Run("levels", func(t *testing.T) {
		tests := []struct {
			level string
			want  zerolog.Level
		}{
			{"trace", zerolog.TraceLevel},
			{"DEBUG", zerolog.DebugLevel},
			{"warning", zerolog.WarnLevel},
			{"error", zerolog.ErrorLevel},
			{"off", zerolog.Disabled},
			{"", zerolog.InfoLevel},
			{"loud", zerolog.InfoLevel},
		}
		for _, tt := range tests {
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Output: "discard"})
			assert.Equal(t, tt.want, logger.GetLevel(), tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel(), tt.level)
		}
	})

	t.Run("nil config", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestSetDefault(t *testing.T) {
	keepGlobals(t)

	tl := logging.NewTestLogger(t)
	logging.SetDefault(*tl.Logger)
	logging.Default().Info().Msg("through the default")

	tl.AssertContains(t, "through the default")
	tl.AssertCount(t, 1)
}
