package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/catalog"
	"github.com/matheuskafuri/cardex/internal/config"
	"github.com/matheuskafuri/cardex/internal/snapshot"
	"github.com/matheuskafuri/cardex/internal/source"
	"github.com/spf13/cobra"
)

var flagRefreshAll bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the latest cards into the local snapshot",
	Long: `Walk the configured sources for a variant in order, take the first one
that yields cards, and replace that variant's snapshot wholesale.

Refreshes the --variant dataset by default; --all refreshes every variant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := snapshot.Open(config.SnapshotPath())
		if err != nil {
			return fmt.Errorf("opening snapshot: %w", err)
		}
		defer store.Close()

		cat := catalog.New(store, source.NewClient(cfg.TimeoutDuration()), cfg.Registry())

		variants := card.Variants()
		if !flagRefreshAll {
			v, err := resolveVariant()
			if err != nil {
				return err
			}
			variants = []card.Variant{v}
		}

		var failed bool
		for _, v := range variants {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			res, err := cat.ListCards(ctx, v, catalog.ListOpts{ForceRefresh: true, RemoteAllowed: !flagOffline})
			cancel()

			for _, e := range res.Errors {
				fmt.Printf("  [warn] %s\n", e)
			}
			switch {
			case errors.Is(err, catalog.ErrUnavailable):
				fmt.Printf("%s: no source reachable and no snapshot to fall back on\n", v)
				failed = true
			case err != nil:
				return err
			case res.Freshness == catalog.FreshnessStale:
				fmt.Printf("%s: refresh failed, serving %d snapshot card(s)\n", v, len(res.Cards))
				failed = true
			default:
				fmt.Printf("%s: %d card(s)\n", v, len(res.Cards))
			}
		}

		if failed {
			return errors.New("refresh incomplete")
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&flagRefreshAll, "all", false, "refresh every variant")
}
