package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asymlab/tamscan/internal/application"
)

func refreshCmd() *cobra.Command {
	var universePath string
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch provider data, re-score the universe, and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}

			thesis, err := application.LoadThesis(universePath)
			if err != nil {
				return err
			}

			st, err := connectStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.close()

			svc := application.NewService(st.companies, st.records, buildAggregator(cfg), cfg.Screener, nil)
			scored, err := svc.Refresh(ctx, thesis)
			if err != nil {
				return err
			}

			fmt.Printf("Refreshed %d companies\n", len(scored))
			return nil
		},
	}
	cmd.Flags().StringVar(&universePath, "universe", "config/universe.yaml", "curated thesis file")
	return cmd
}
