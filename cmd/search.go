package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/cardex/internal/catalog"
	"github.com/matheuskafuri/cardex/internal/config"
	"github.com/matheuskafuri/cardex/internal/session"
	"github.com/matheuskafuri/cardex/internal/snapshot"
	"github.com/matheuskafuri/cardex/internal/source"
	"github.com/spf13/cobra"
)

var (
	flagSearchPage int
	flagSearchSize int
	flagSearchRaw  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the card snapshot from the command line",
	Long: `Rank the snapshot's cards against the query and print a page of matches.
An empty query lists cards in ingestion order.

Use --raw for a plain substring filter instead of ranked scoring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		cat := catalog.New(store, source.NewClient(cfg.TimeoutDuration()), cfg.Registry())

		query := strings.Join(args, " ")
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		res, err := cat.SearchCards(ctx, v, query, catalog.SearchOpts{
			Page:     flagSearchPage,
			PageSize: flagSearchSize,
			Ranked:   !flagSearchRaw,
		})
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}

		if res.Total == 0 {
			fmt.Println("No cards found.")
			return nil
		}

		for _, c := range res.Cards {
			line := c.Name
			if c.SetNumber != "" {
				line += "  #" + c.SetNumber
			}
			if c.ImageURL != "" {
				line += "  " + c.ImageURL
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d of %d match(es), snapshot from %s\n", len(res.Cards), res.Total, res.UpdatedAt.Format(time.RFC3339))
		return nil
	},
}

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Show the card currently published to the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer sess.Close()

		rec, ok, err := sess.Current()
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}
		if !ok {
			fmt.Println("No card published.")
			return nil
		}

		state := "hidden"
		if rec.Revealed {
			state = "revealed"
		}
		fmt.Printf("Card: %s\n", rec.Name)
		fmt.Printf("Image: %s\n", rec.ImageURL)
		fmt.Printf("State: %s (since %s)\n", state, rec.UpdatedAt.Format(time.RFC3339))
		return nil
	},
}

var revealClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the published card from the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer sess.Close()

		if err := sess.Clear(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Session cleared.")
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchPage, "page", 1, "result page to print")
	searchCmd.Flags().IntVar(&flagSearchSize, "page-size", 20, "results per page")
	searchCmd.Flags().BoolVar(&flagSearchRaw, "raw", false, "substring filter instead of ranked scoring")

	revealCmd.AddCommand(revealClearCmd)
}
