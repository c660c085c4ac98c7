package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rhuss/hfbridge/pkg/config"
	"github.com/rhuss/hfbridge/pkg/debug"
	"github.com/rhuss/hfbridge/pkg/interceptor"
	"github.com/rhuss/hfbridge/pkg/observability"
	"github.com/rhuss/hfbridge/pkg/transport"
)

var proxyFlags struct {
	upstream string
	port     int
	watch    bool
}

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the local OpenAI-compatible redirecting proxy",
	Long: `Run a local HTTP proxy in front of an OpenAI-compatible upstream.

While the endpoint configuration is complete (API key and URL), requests to
the chat completion paths are redirected to the Hugging Face endpoint with
its credentials. Everything else, and every request while the configuration
is incomplete, reaches the upstream unchanged. If the endpoint cannot be
reached, the original request falls back to the upstream.

Changes to the config file are picked up without a restart.

Examples:
  hfbridge proxy --config hfbridge.yaml
  hfbridge proxy --upstream http://localhost:4000 --port 9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("upstream") {
			cfg.Interceptor.Upstream = proxyFlags.upstream
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = proxyFlags.port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runProxy(ctx, cfg, config.FindConfigFile(cfgFile), proxyFlags.watch)
	},
}

func init() {
	rootCmd.AddCommand(proxyCmd)

	proxyCmd.Flags().StringVar(&proxyFlags.upstream, "upstream", "", "upstream base URL (default from config)")
	proxyCmd.Flags().IntVar(&proxyFlags.port, "port", 0, "listen port (default from config)")
	proxyCmd.Flags().BoolVar(&proxyFlags.watch, "watch", true, "reload the config file on change")
}

// proxyApp is the wired proxy: the transport slot the reverse proxy
// dispatches through and the interceptor that manages it.
type proxyApp struct {
	slot        *interceptor.Slot
	interceptor *interceptor.Interceptor
	handler     http.Handler
}

func newProxyApp(cfg *config.Config) (*proxyApp, error) {
	slot := interceptor.NewSlot(nil)
	icpt := slot.Interceptor(interceptor.WithPaths(cfg.Interceptor.Paths...))

	proxy, err := transport.NewProxy(cfg.Interceptor.Upstream, slot)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","interceptor_active":%t}`, icpt.IsConfigured())
	})
	if cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
	}
	mux.Handle("/", observability.MetricsMiddleware(proxy))

	icpt.UpdateConfig(cfg.InterceptorConfig())

	return &proxyApp{slot: slot, interceptor: icpt, handler: mux}, nil
}

// apply hands a reloaded configuration to the interceptor and the logger.
// Listener settings (port, upstream, paths) need a restart.
func (a *proxyApp) apply(cfg *config.Config) {
	debug.Init(cfg.Log.Debug, cfg.Log.Level, cfg.Log.Format)
	a.interceptor.UpdateConfig(cfg.InterceptorConfig())
}

func (a *proxyApp) Close() error {
	err := a.interceptor.Close()
	a.slot.CloseIdleConnections()
	return err
}

func runProxy(ctx context.Context, cfg *config.Config, watchPath string, watch bool) error {
	app, err := newProxyApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if watch && watchPath != "" {
		go func() {
			if err := config.Watch(ctx, watchPath, app.apply); err != nil {
				slog.Error("config watcher stopped", "error", err)
			}
		}()
	}

	slog.Info("proxy configured",
		"upstream", cfg.Interceptor.Upstream,
		"interceptor_enabled", cfg.Interceptor.Enabled,
		"interceptor_active", app.interceptor.IsConfigured(),
		"paths", cfg.Interceptor.Paths,
	)

	srv := transport.NewServer(app.handler,
		transport.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transport.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
	)
	return srv.ListenAndServe(ctx)
}
