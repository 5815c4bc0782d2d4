package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/asymlab/tamscan/internal/application"
	"github.com/asymlab/tamscan/internal/infrastructure/providers"
	httpiface "github.com/asymlab/tamscan/internal/interfaces/http"
)

func serveCmd() *cobra.Command {
	var (
		universePath    string
		refreshInterval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}

			st, err := connectStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.close()

			agg := buildAggregator(cfg)

			// The service needs the hub as its notifier, so the server is
			// built first and gets the service injected afterwards.
			server := httpiface.NewServer(httpiface.ServerConfig{
				Host:         cfg.Server.Host,
				Port:         cfg.Server.Port,
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
				IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
			}, nil)
			svc := application.NewService(st.companies, st.records, agg, cfg.Screener, server.Hub())
			svc.SetInstrumentation(server.Metrics())
			server.SetService(svc)
			providers.SetCallObserver(server.Metrics().RecordProviderCall)

			if refreshInterval > 0 {
				go runPeriodicRefresh(ctx, svc, universePath, refreshInterval)
			}

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&universePath, "universe", "config/universe.yaml", "curated thesis file for periodic refresh")
	cmd.Flags().DurationVar(&refreshInterval, "refresh-interval", 0, "refresh cadence (0 disables periodic refresh)")
	return cmd
}

func runPeriodicRefresh(ctx context.Context, svc *application.Service, universePath string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh := func() {
		thesis, err := application.LoadThesis(universePath)
		if err != nil {
			log.Error().Err(err).Str("path", universePath).Msg("Thesis load failed, skipping refresh")
			return
		}
		if _, err := svc.Refresh(ctx, thesis); err != nil {
			log.Error().Err(err).Msg("Periodic refresh failed")
		}
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
