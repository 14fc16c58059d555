package deck

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir resolves the deck directory in priority order:
// 1. STUDYDECK_DECKS environment variable
// 2. $XDG_DATA_HOME/studydeck/decks
// 3. ~/.local/share/studydeck/decks
func DefaultDir() (string, error) {
	if p := os.Getenv("STUDYDECK_DECKS"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "studydeck", "decks"), nil
}
