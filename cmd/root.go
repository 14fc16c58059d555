package cmd

import (
	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studydeck",
	Short: "Adaptive flashcard study sessions in the terminal",
	Long:  "Studydeck — terminal flashcards with Browse, Speed Run, and Smart Practice modes, plus AI deck generation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYDECK_DB env var)")
	rootCmd.PersistentFlags().String("decks", "", "Path to deck directory (overrides STUDYDECK_DECKS env var)")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDeckDir returns the deck directory using --decks flag (highest
// priority), then STUDYDECK_DECKS env var, then the default XDG path.
func resolveDeckDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("decks"); p != "" {
		return p, nil
	}
	return deck.DefaultDir()
}
