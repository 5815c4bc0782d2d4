package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/asymlab/tamscan/internal/application"
	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/domain/screen"
)

func screenCmd() *cobra.Command {
	var (
		universePath string
		maxCap       float64
		minOwnership float64
		minMultiple  float64
		minScore     float64
		categories   string
		asJSON       bool
		limit        int
	)
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Score and rank the curated universe from a thesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}

			records, err := application.LoadThesis(universePath)
			if err != nil {
				return err
			}
			for i := range records {
				records[i].DataQuality = records[i].ComputeDataQuality()
			}

			criteria := cfg.Screener.Criteria
			if cmd.Flags().Changed("max-market-cap") {
				criteria.MaxMarketCap = maxCap
			}
			if cmd.Flags().Changed("min-insider-ownership") {
				criteria.MinInsiderOwnership = minOwnership
			}
			if cmd.Flags().Changed("min-tam-multiple") {
				criteria.MinTAMMultiple = minMultiple
			}
			if cmd.Flags().Changed("min-score") {
				criteria.MinAsymmetryScore = minScore
			}
			if categories != "" {
				parsed, err := parseCategories(categories)
				if err != nil {
					return err
				}
				criteria.Categories = parsed
			}

			screener := screen.NewScreener(cfg.Screener.Weights)
			ranked, err := screener.Screen(records, criteria)
			if err != nil {
				return err
			}
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}

			if asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(ranked)
			}
			printTable(ranked, criteria)
			return nil
		},
	}
	cmd.Flags().StringVar(&universePath, "universe", "config/universe.yaml", "curated thesis file")
	cmd.Flags().Float64Var(&maxCap, "max-market-cap", 0, "market cap upper bound in dollars")
	cmd.Flags().Float64Var(&minOwnership, "min-insider-ownership", 0, "minimum insider ownership percent")
	cmd.Flags().Float64Var(&minMultiple, "min-tam-multiple", 0, "minimum TAM expansion multiple")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum composite score")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated category allow-list (all = no filter)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	cmd.Flags().IntVar(&limit, "limit", 0, "max rows (0 = unlimited)")
	return cmd
}

func parseCategories(raw string) ([]domain.FutureCategory, error) {
	if strings.EqualFold(raw, "all") {
		return nil, nil
	}
	var cats []domain.FutureCategory
	for _, part := range strings.Split(raw, ",") {
		cat, err := domain.ParseFutureCategory(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func printTable(ranked []domain.CompanyRecord, criteria domain.ScreeningCriteria) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTICKER\tNAME\tCATEGORY\tMCAP\tTAMx\tTOTAL\tFND\tDIS\tWS\tASM\tQUAL")
	for i, r := range ranked {
		marker := " "
		if r.MarketCap != nil && *r.MarketCap <= criteria.PreferredMarketCap {
			marker = "*"
		}
		fmt.Fprintf(w, "%d%s\t%s\t%s\t%s\t%s\t%.1fx\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.0f%%\n",
			i+1, marker,
			r.Ticker,
			truncate(r.Name, 24),
			r.FutureCategory,
			formatCap(r.MarketCap),
			r.EffectiveTAMMultiple(),
			r.Scores.Total,
			r.Scores.FounderConviction,
			r.Scores.AIDisruption,
			r.Scores.WhiteSpace,
			r.Scores.Asymmetry,
			r.DataQuality,
		)
	}
	w.Flush()
	fmt.Printf("\n%d candidates (* market cap under preferred %s)\n", len(ranked), formatCap(&criteria.PreferredMarketCap))
}

func formatCap(v *float64) string {
	if v == nil {
		return "-"
	}
	switch {
	case *v >= 1e12:
		return fmt.Sprintf("$%.1fT", *v/1e12)
	case *v >= 1e9:
		return fmt.Sprintf("$%.1fB", *v/1e9)
	case *v >= 1e6:
		return fmt.Sprintf("$%.0fM", *v/1e6)
	default:
		return fmt.Sprintf("$%.0f", *v)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
