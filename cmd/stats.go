package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ananya/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent study session results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		results, err := s.Results().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-24s  %-14s  %s\n", "When", "Deck", "Mode", "Result")
		fmt.Println(strings.Repeat("─", 80))

		for _, r := range results {
			deckTitle := r.DeckTitle
			if len(deckTitle) > 24 {
				deckTitle = deckTitle[:24]
			}
			fmt.Printf("%-19s  %-24s  %-14s  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				deckTitle,
				statModeLabel(r.Mode),
				statResultLabel(r),
			)
		}

		printBestScores(s.Results(), results)
		return nil
	},
}

// printBestScores lists the Speed Run high score for each deck seen in the
// recent results.
func printBestScores(repo store.ResultRepo, results []store.StudyResult) {
	seen := map[string]bool{}
	var titles []string
	for _, r := range results {
		if !seen[r.DeckTitle] {
			seen[r.DeckTitle] = true
			titles = append(titles, r.DeckTitle)
		}
	}

	var lines []string
	for _, title := range titles {
		best, err := repo.BestScore(context.Background(), title)
		if err != nil || best == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-24s  %d", title, best))
	}
	if len(lines) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Speed Run high scores")
	fmt.Println(strings.Repeat("─", 40))
	for _, l := range lines {
		fmt.Println(l)
	}
}

func statModeLabel(mode string) string {
	switch mode {
	case "speed_run":
		return "Speed Run"
	case "smart_practice":
		return "Smart Practice"
	default:
		return "Browse"
	}
}

func statResultLabel(r store.StudyResult) string {
	switch r.Mode {
	case "speed_run":
		return fmt.Sprintf("score %d, best streak %d", r.Score, r.BestStreak)
	case "smart_practice":
		d := (time.Duration(r.DurationMs) * time.Millisecond).Round(time.Second)
		return fmt.Sprintf("%d/%d mastered in %s", r.Mastered, r.CardsTotal, d)
	default:
		return fmt.Sprintf("%d cards", r.CardsTotal)
	}
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
