package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/storepulse/storepulse/internal/config"
	"github.com/storepulse/storepulse/internal/infrastructure/cache"
	"github.com/storepulse/storepulse/internal/infrastructure/db"
	"github.com/storepulse/storepulse/internal/insights"
	httpserver "github.com/storepulse/storepulse/internal/interfaces/http"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		listen     string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the insights HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				if err := cfg.Server.SetListen(listen); err != nil {
					return err
				}
			}

			manager, err := db.NewManager(cfg.Database)
			if err != nil {
				return err
			}
			defer manager.Close()

			var reportCache httpserver.ReportCache
			if cfg.Redis.Addr != "" {
				rc, err := cache.NewReportCache(cfg.Redis)
				if err != nil {
					// Cache is an optimization; run without it.
					log.Warn().Err(err).Msg("redis unavailable, serving uncached")
				} else {
					defer rc.Close()
					reportCache = rc
				}
			}

			engine := insights.NewEngine(cfg.Engine)
			metrics := httpserver.NewMetrics()
			handlers := httpserver.NewHandlers(engine, manager.Repo(), reportCache, manager, metrics)
			server := httpserver.NewServer(cfg.Server, handlers, metrics)

			log.Info().
				Str("host", cfg.Server.Host).
				Int("port", cfg.Server.Port).
				Msg("storepulse starting")
			return server.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "override listen address (host:port)")
	return cmd
}
