package cmd

import (
	"github.com/abhisek/parley/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Practice grammar, speaking, typing and vocabulary",
	Long:  "Parley — terminal app for practising English grammar, pronunciation, typing and vocabulary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(); err != nil {
			return err
		}
		setupConsoleLogging()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PARLEY_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Directory of catalog YAML files (default: built-in catalog)")
	rootCmd.Flags().Bool("demo", false, "Use the demo speech recognizer, which echoes the prompt")
	rootCmd.Flags().Uint64("seed", 0, "Seed for the memory game shuffle (0 shuffles randomly)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PARLEY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the history store at the resolved path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
