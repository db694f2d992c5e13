package cmd

import (
	"fmt"

	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/config"
	"github.com/matheuskafuri/cardex/internal/snapshot"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.SnapshotPath()
		store, err := snapshot.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening snapshot: %w", err)
		}
		defer store.Close()

		counts, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Snapshot: %s\n", dbPath)
		for _, v := range card.Variants() {
			entry := store.Read(v)
			updated := "never"
			if !entry.UpdatedAt.IsZero() {
				updated = entry.UpdatedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("  %s: %d card(s), updated %s\n", v, counts[v], updated)
		}
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
