package cmd

import (
	"fmt"

	"github.com/ananya/studydeck/internal/app"
	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads decks, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	deckDir, err := resolveDeckDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve deck dir: %w", err)
	}
	decks, err := deck.LoadDir(deckDir)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	return app.Run(app.Options{
		Decks:   decks,
		Results: st.Results(),
	})
}
