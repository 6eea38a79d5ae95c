package app

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/pkg/logging"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, ""},
		{"verbose", Config{Verbose: true}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"quiet wins over verbose", Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit level wins", Config{Verbose: true, LogLevel: "error"}, "error"},
		{"invalid level", Config{LogLevel: "loud"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(&tt.config); got != tt.want {
				t.Errorf("determineLogLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "debug", LogFormat: "json", LogOutput: "stderr"})
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}

func TestNewLoggerFallsBackToEnvironment(t *testing.T) {
	saved, savedLevel := *logging.Default(), zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(saved)
		zerolog.SetGlobalLevel(savedLevel)
	})
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_OUTPUT", "discard")

	logger := NewLogger(&Config{})
	if logger.GetLevel() != zerolog.ErrorLevel {
		t.Errorf("level = %v, want error from LOG_LEVEL", logger.GetLevel())
	}

	logger = NewLogger(&Config{Verbose: true})
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug from --verbose", logger.GetLevel())
	}
}
