package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/pkg/constants"
)

// Config selects where log lines go and how they look.
type Config struct {
	Level      string // trace, debug, info, warn, error or off
	Format     string // json, console or auto
	Output     string // stderr, stdout, discard or a file path
	TimeFormat string // kitchen, rfc3339, unix or a Go layout
	NoColor    bool
	AddCaller  bool
}

// DefaultConfig logs info and above to stderr, as console text on a
// terminal and JSON lines otherwise.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// ConfigFromEnv overlays LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and
// LOG_TIME_FORMAT on DefaultConfig. DEBUG=1 stands in for LOG_LEVEL=debug.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	for env, field := range map[string]*string{
		"LOG_LEVEL":       &cfg.Level,
		"LOG_FORMAT":      &cfg.Format,
		"LOG_OUTPUT":      &cfg.Output,
		"LOG_TIME_FORMAT": &cfg.TimeFormat,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*field = v
		}
	}
	return cfg
}

// NewLoggerFromConfig builds a logger and sets zerolog's global level to
// match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(newWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

func newWriter(cfg *Config) io.Writer {
	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		out = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out = os.Stderr
		} else {
			out = f
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeLayout(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func timeLayout(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}
