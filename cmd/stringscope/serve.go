package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/its-jojoo/stringscope/internal/adapter/httpapi"
	"github.com/its-jojoo/stringscope/internal/logger"
	"github.com/its-jojoo/stringscope/internal/metric"
	"github.com/its-jojoo/stringscope/internal/usecase/catalog"
	"github.com/its-jojoo/stringscope/internal/usecase/search"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Logger.Warnw("Close store failed", "error", err)
			}
		}()

		opts := httpapi.Options{}
		if cfg.RateLimit.Enabled {
			opts.RateLimiter = httpapi.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
		}
		if cfg.Metrics.Enabled {
			opts.MetricsPath = cfg.Metrics.Path
		}

		handler := httpapi.NewRouter(httpapi.Deps{
			Catalog: catalog.New(st, catalog.Config{MaxValueLen: cfg.Limits.MaxValueLength}),
			Search:  search.New(st),
			Counter: st,
			Metrics: metric.NewRegistry(),
		}, opts)

		logger.Logger.Infow("Starting stringscope",
			"port", cfg.Server.Port,
			"storage", cfg.Storage.Driver,
			"rate_limit", cfg.RateLimit.Enabled,
		)
		srv := httpapi.NewServer(fmt.Sprintf(":%d", cfg.Server.Port), handler,
			cfg.Server.ReadTimeout, cfg.Server.ShutdownTimeout)
		return srv.Run(ctx)
	},
}
