package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matheuskafuri/cardex/internal/catalog"
	"github.com/matheuskafuri/cardex/internal/config"
	"github.com/matheuskafuri/cardex/internal/session"
	"github.com/matheuskafuri/cardex/internal/snapshot"
	"github.com/matheuskafuri/cardex/internal/source"
	"github.com/matheuskafuri/cardex/internal/tui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	v, err := resolveVariant()
	if err != nil {
		return err
	}

	store, err := snapshot.Open(config.SnapshotPath())
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer store.Close()

	sess, err := session.Open(config.SessionPath())
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sess.Close()

	cat := catalog.New(store, source.NewClient(cfg.TimeoutDuration()), cfg.Registry())

	// Refresh if needed
	entry := store.Read(v)
	if !flagOffline && (flagRefresh || time.Since(entry.UpdatedAt) > cfg.RefreshDuration()) {
		fmt.Println("Fetching catalog...")
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		res, err := cat.ListCards(ctx, v, catalog.ListOpts{ForceRefresh: true, RemoteAllowed: true})
		cancel()

		for _, e := range res.Errors {
			fmt.Printf("  [warn] %s\n", e)
		}
		if err != nil && !errors.Is(err, catalog.ErrUnavailable) {
			return err
		}
	}

	return tui.Run(tui.RunOpts{Catalog: cat, Session: sess, Variant: v})
}
