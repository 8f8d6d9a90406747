package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/httpserver/handler"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the command line flags.
type options struct {
	configFile  string
	envFile     string
	showVersion bool
}

func parseFlags(args []string, out io.Writer) (*options, error) {
	fs := flag.NewFlagSet("respkv-server", flag.ContinueOnError)
	fs.SetOutput(out)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&opts.envFile, "env-file", ".env", "Path to a .env file; a missing file is ignored")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "respkv-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(opts.configFile, opts.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg, stdout)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	info := buildinfo.Get()
	log.Info("starting respkv-server",
		append([]any{"version", info.Version, "commit", info.Commit, "config", opts.configFile},
			config.Summary(cfg)...)...)

	store := memory.New()
	metrics := metric.NewRegistry()
	metrics.RegisterStore(store)

	interp := command.New(store,
		command.WithObserver(metrics),
		command.WithLaxExpiry(cfg.Server.Redis.LaxExpiry),
	)

	sh := shutdown.NewHandler(cfg.Server.ShutdownTimeout)

	// Hooks run in reverse order: watcher, admin, resp, store.
	sh.OnShutdown("store", func(context.Context) error {
		log.Info("closing store", "keys", store.Len())
		return store.Close()
	})

	respSrv := redisserver.New(redisConfig(cfg), interp,
		redisserver.WithLogger(log),
		redisserver.WithMetrics(metrics),
	)
	ctx := logger.WithLogger(context.Background(), log)
	if err := respSrv.Start(ctx); err != nil {
		_ = store.Close()
		return fmt.Errorf("start resp server: %w", err)
	}
	sh.OnShutdown("resp", func(ctx context.Context) error {
		log.Info("shutting down resp server", "connections", respSrv.ActiveConns())
		return respSrv.Shutdown(ctx)
	})

	if addr := cfg.Server.Admin.Addr; addr != "" {
		adminSrv, ln, err := newAdminServer(addr, log, store, metrics, respSrv)
		if err != nil {
			_ = respSrv.Shutdown(context.Background())
			_ = store.Close()
			return fmt.Errorf("start admin server: %w", err)
		}
		go func() {
			log.Info("admin server listening", "address", ln.Addr().String())
			if err := adminSrv.Serve(ln); err != nil {
				log.Error("admin server error", "error", err)
				sh.Trigger("admin server failed")
			}
		}()
		sh.OnShutdown("admin", func(ctx context.Context) error {
			log.Info("shutting down admin server")
			return adminSrv.Shutdown(ctx)
		})
	}

	if opts.configFile != "" {
		watcher, err := watchConfig(opts, cfg, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			sh.OnShutdown("watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	err = sh.Wait(context.Background())
	if err != nil {
		log.Error("shutdown error", "reason", sh.Reason(), "error", err)
		return err
	}

	log.Info("server stopped gracefully", "reason", sh.Reason())
	return nil
}

// loadConfig loads configuration from defaults, file, .env and environment.
func loadConfig(configFile, envFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(configFile),
		confloader.WithDotEnv(envFile),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func initLogger(cfg *config.ServerConfig, out io.Writer) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     out,
		ShowValues: cfg.Log.ShowValues,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Addr:            r.Addr,
		ReadChunkSize:   r.ReadChunkSize,
		MaxPendingBytes: r.MaxPendingBytes,
		IdleTimeout:     r.IdleTimeout,
		WriteTimeout:    r.WriteTimeout,
		RateLimit:       r.RateLimit,
		ErrorReplies:    r.ErrorReplies,
	}
}

func newAdminServer(addr string, log logger.Logger, store *memory.Store, metrics *metric.Registry, respSrv *redisserver.Server) (*httpserver.Server, net.Listener, error) {
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Handler: handler.Config{
			Version: buildinfo.Get().Version,
			Keys:    store,
			Ready: func() error {
				if respSrv.Addr() == nil {
					return errors.New("resp listener not bound")
				}
				return nil
			},
			Metrics: metrics.Handler(),
		},
		Logger: log.Slog(),
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	return httpserver.New(addr, router), ln, nil
}

// watchConfig reapplies log.level when the config file changes. Other
// settings are reported and take effect on restart.
func watchConfig(opts *options, current *config.ServerConfig, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.Slog()))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(opts.configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		reloadConfig(path, opts.envFile, current, log)
	})
	watcher.StartAsync()
	return watcher, nil
}

func reloadConfig(path, envFile string, current *config.ServerConfig, log logger.Logger) {
	next, err := loadConfig(path, envFile)
	if err != nil {
		log.Warn("config reload rejected", "path", path, "error", err)
		return
	}

	if !strings.EqualFold(next.Log.Level, logger.GetLevel()) {
		logger.SetLevel(next.Log.Level)
		log.Info("log level changed", "level", next.Log.Level)
	}
	if next.Server != current.Server || next.Log.Format != current.Log.Format || next.Log.ShowValues != current.Log.ShowValues {
		log.Warn("config changed, restart to apply", "path", path)
	}
}
