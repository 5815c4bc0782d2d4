package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/asymlab/tamscan/internal/application"
	"github.com/asymlab/tamscan/internal/data/cache"
	"github.com/asymlab/tamscan/internal/infrastructure/providers"
	"github.com/asymlab/tamscan/internal/persistence"
	"github.com/asymlab/tamscan/internal/persistence/postgres"
)

var (
	configPath string
	logLevel   string
)

// Execute runs the tamscan CLI.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "tamscan",
		Short: "Screen public companies for asymmetric TAM expansion",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config yaml (defaults apply when empty)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")

	root.AddCommand(screenCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(watchlistCmd())
	return root.ExecuteContext(ctx)
}

func loadAppConfig() (*application.Config, error) {
	if configPath == "" {
		cfg := application.DefaultConfig()
		return &cfg, nil
	}
	return application.LoadConfig(configPath)
}

// stores bundles the connected persistence collaborators and their cleanup.
type stores struct {
	companies persistence.CompanyRepo
	watchlist persistence.WatchlistRepo
	records   *cache.RecordCache
	close     func()
}

func connectStores(ctx context.Context, cfg *application.Config) (*stores, error) {
	db, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxOpenConns, cfg.Postgres.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	var records *cache.RecordCache
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, running without record cache")
		rdb.Close()
		rdb = nil
	} else {
		records = cache.NewRecordCache(rdb, cfg.Redis.DefaultTTL())
	}

	return &stores{
		companies: postgres.NewCompanyRepo(db, cfg.Postgres.Timeout()),
		watchlist: postgres.NewWatchlistRepo(db, cfg.Postgres.Timeout()),
		records:   records,
		close: func() {
			if rdb != nil {
				rdb.Close()
			}
			db.Close()
		},
	}, nil
}

// buildAggregator wires the provider clients behind the identifier cache.
// Returns nil when no provider base URLs are configured, which keeps the
// refresh flow curated-data-only.
func buildAggregator(cfg *application.Config) *providers.Aggregator {
	if cfg.Providers.MarketData.BaseURL == "" && cfg.Providers.Filings.BaseURL == "" {
		return nil
	}

	quotes := providers.NewMarketDataClient(providers.MarketDataConfig{
		BaseURL:   cfg.Providers.MarketData.BaseURL,
		APIKeyEnv: cfg.Providers.MarketData.APIKeyEnv,
		RPS:       cfg.Providers.MarketData.RPS,
		Burst:     cfg.Providers.MarketData.Burst,
		Timeout:   cfg.Providers.MarketData.Timeout(),
	})
	filings := providers.NewFilingsClient(providers.FilingsConfig{
		BaseURL: cfg.Providers.Filings.BaseURL,
		RPS:     cfg.Providers.Filings.RPS,
		Burst:   cfg.Providers.Filings.Burst,
		Timeout: cfg.Providers.Filings.Timeout(),
	})
	ids := cache.NewIdentifierCache(filings.LookupCIK)

	return providers.NewAggregator(quotes, filings, ids)
}
