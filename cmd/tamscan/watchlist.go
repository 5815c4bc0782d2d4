package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func watchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage named watchlists",
	}
	cmd.AddCommand(watchlistAddCmd(), watchlistRemoveCmd(), watchlistShowCmd(), watchlistNamesCmd())
	return cmd
}

func watchlistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <ticker>",
		Short: "Add a ticker to a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			st, err := connectStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.close()

			if err := st.watchlist.Add(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Added %s to %s\n", strings.ToUpper(args[1]), args[0])
			return nil
		},
	}
}

func watchlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <ticker>",
		Short: "Remove a ticker from a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			st, err := connectStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.close()

			if err := st.watchlist.Remove(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Removed %s from %s\n", strings.ToUpper(args[1]), args[0])
			return nil
		},
	}
}

func watchlistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a watchlist's tickers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			st, err := connectStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.close()

			wl, err := st.watchlist.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%d tickers, updated %s)\n", wl.Name, len(wl.Tickers), wl.UpdatedAt.Format("2006-01-02"))
			for _, t := range wl.Tickers {
				fmt.Println("  " + t)
			}
			return nil
		},
	}
}

func watchlistNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List watchlist names",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			st, err := connectStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.close()

			names, err := st.watchlist.Names(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}
