package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/ultrasearch/internal/server"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/constants"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Output     string
	Instrument string

	// Config file
	ConfigFile string

	// Catalog files per instrument. Instruments without a path use the
	// embedded sample catalog.
	Catalogs map[catalog.Instrument]string
	Watch    bool

	// Search defaults
	SearchRadius float64
	SearchExpose float64

	// HTTP server
	Server server.Config

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. ULTRASEARCH_* environment variables
//  3. .env files
//  4. Config file (configFile, or ~/.ultrasearch.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// .env files must be loaded before viper reads the environment
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot parse config file", err)
			}
		}
	}

	srv := server.DefaultConfig()
	srv.Host = v.GetString("server.host")
	srv.Port = v.GetInt("server.port")
	srv.PathPrefix = v.GetString("server.prefix")
	srv.LogBaseURL = v.GetString("server.log_base_url")
	srv.RateLimit = v.GetInt("server.rate_limit")
	srv.CORSOrigins = v.GetStringSlice("server.cors_origins")
	srv.CORSEnabled = len(srv.CORSOrigins) > 0

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Output:     v.GetString("output"),
		Instrument: v.GetString("instrument"),

		ConfigFile: v.ConfigFileUsed(),

		Catalogs: make(map[catalog.Instrument]string),
		Watch:    v.GetBool("watch"),

		SearchRadius: v.GetFloat64("search.radius"),
		SearchExpose: v.GetFloat64("search.expose"),

		Server: srv,

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}
	for _, inst := range catalog.Instruments() {
		if path := v.GetString("catalogs." + inst.String()); path != "" {
			config.Catalogs[inst] = path
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := server.DefaultConfig()

	v.SetDefault("search.radius", constants.DefaultRadiusDeg)
	v.SetDefault("search.expose", constants.DefaultMinExposeMinutes)
	v.SetDefault("server.host", defaults.Host)
	v.SetDefault("server.port", defaults.Port)
	v.SetDefault("server.prefix", defaults.PathPrefix)
	v.SetDefault("server.rate_limit", defaults.RateLimit)
}

// Validate rejects settings no command could run with.
func (c *Config) Validate() error {
	if c.Instrument != "" {
		if _, err := catalog.ParseInstrument(c.Instrument); err != nil {
			return err
		}
	}
	if c.SearchRadius < 0 {
		return errors.NewValidationError("search.radius", c.SearchRadius, "must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.NewValidationError("server.port", c.Server.Port, "must be between 0 and 65535")
	}
	return nil
}

// UpdateFromFlags applies parsed command flags. Boolean flags only ever
// switch a setting on, and empty strings leave the configured value alone,
// so flags take precedence over config files and the environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, instrument, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if instrument != "" {
		c.Instrument = instrument
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set win, so .env.local is read first to override .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
