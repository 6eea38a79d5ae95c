// Package serve provides the serve command, which runs the HTTP API.
package serve

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/internal/cmd/emoji"
	"github.com/agentstation/ultrasearch/internal/server"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the search API with WebSocket and SSE updates",
		Long: `Start the HTTP API over every configured catalog.

Endpoints, below the path prefix (default /api/v1):
  GET  /instruments        loaded catalogs
  GET  /targets            unique targets (?instrument=&q=&limit=&offset=)
  GET  /search             matching runs (?ra=&dec=&radius=&expose= or ?target=)
  GET  /search.html        the rendered results page
  GET  /targets.html       the rendered target list
  POST /reload             re-read catalogs from disk
  GET  /updates            reload events as Server-Sent Events
  GET  /updates/ws         reload events over WebSocket

Responses are cached per catalog generation, so a reload is visible
immediately. With watch enabled, catalogs reload when their files change.`,
		Example: `  ultrasearch serve                                    # localhost:8080
  ultrasearch serve --port 3000 --host 0.0.0.0
  ultrasearch serve --log-base-url https://example.org/ultracam/logs/
  ultrasearch serve --cors-origins https://example.org --rate-limit 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().String("log-base-url", "", "Base URL of the nightly logs linked from result pages")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated, * for all)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Response cache TTL")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface) error {
	cfg := parseConfig(cmd, app.ServerConfig())
	logger := app.Logger()

	store, err := app.Store(cmd.Context())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(store.Instruments()))
	for _, inst := range store.Instruments() {
		names = append(names, inst.Title())
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Str("prefix", cfg.PathPrefix).
		Strs("catalogs", names).
		Bool("watch", app.Watch()).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Serving %s on http://%s%s\n",
		emoji.Info, strings.Join(names, ", "), cfg.Addr(), cfg.PathPrefix)

	srv := server.New(store, cfg, logger)
	return srv.ListenAndServe(cmd.Context())
}

// parseConfig overlays flags that were set on the configured settings.
func parseConfig(cmd *cobra.Command, cfg server.Config) server.Config {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("log-base-url") {
		cfg.LogBaseURL, _ = flags.GetString("log-base-url")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit, _ = flags.GetInt("rate-limit")
	}
	if flags.Changed("cache-ttl") {
		cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	}
	// The unprefixed /health route is always registered, so the API itself
	// cannot live at the root.
	if p := strings.Trim(cfg.PathPrefix, "/"); p != "" {
		cfg.PathPrefix = "/" + p
	} else {
		cfg.PathPrefix = server.DefaultConfig().PathPrefix
	}
	return cfg
}

