package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pranav/snapquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "snapquest",
	Short: "Scavenger-hunt challenge runs in your terminal",
	Long:  "SnapQuest — terminal challenge runs: quick visual judgments and media collection hunts, ten challenges at a time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SNAPQUEST_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to an extra challenge pack (YAML)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then SNAPQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
