package cmd

import (
	"fmt"
	"os"

	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/update"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagVariant string
	flagRefresh bool
	flagOffline bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "cardex",
	Short: "TUI trading card catalog browser",
	Long:  "cardex pulls card catalogs from their upstream sources into a local snapshot and browses them in a clean two-pane dashboard.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "base", "dataset variant (base or all)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "never hit the network; serve the snapshot as-is")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "force refresh the catalog before launching")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(revealCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cardex %s (commit: %s, built: %s)\n", version, commit, date)
		if r := update.Check(cmd.Context(), version); r != nil {
			fmt.Printf("A newer version is available: %s\n", r.LatestVersion)
		}
	},
}

func resolveVariant() (card.Variant, error) {
	v, err := card.ParseVariant(flagVariant)
	if err != nil {
		return "", fmt.Errorf("invalid --variant value: %w", err)
	}
	return v, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
