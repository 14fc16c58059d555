package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ananya/studydeck/internal/cardgen"
	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/llm"
	"github.com/ananya/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen <topic>",
	Short: "Generate a flashcard deck with an LLM",
	Long: `Generate a flashcard deck for a topic and save it to the deck directory.

With --notes, cards are drawn from the given file instead of the model's
general knowledge. Configure a provider via STUDYDECK_LLM_PROVIDER and the
matching STUDYDECK_*_API_KEY, or just set one of GEMINI_API_KEY,
OPENAI_API_KEY, ANTHROPIC_API_KEY, or OPENROUTER_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.TrimSpace(args[0])
		if topic == "" {
			return errors.New("topic must not be blank")
		}

		count, _ := cmd.Flags().GetInt("count")
		notesPath, _ := cmd.Flags().GetString("notes")
		kindsFlag, _ := cmd.Flags().GetString("kinds")
		output, _ := cmd.Flags().GetString("output")

		kinds, err := parseKinds(kindsFlag)
		if err != nil {
			return err
		}

		var notes string
		if notesPath != "" {
			data, err := os.ReadFile(notesPath)
			if err != nil {
				return fmt.Errorf("read notes file: %w", err)
			}
			notes = string(data)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
		defer cancel()

		provider, err := buildProvider(ctx, st)
		if err != nil {
			return err
		}

		fmt.Printf("Generating %d cards on %q with %s...\n", count, topic, provider.ModelID())

		gen := cardgen.New(provider, cardgen.DefaultConfig())
		d, err := gen.Generate(ctx, cardgen.Input{
			Topic: topic,
			Notes: notes,
			Count: count,
			Kinds: kinds,
		})
		if err != nil {
			return fmt.Errorf("generate deck: %w", err)
		}

		path := output
		if path == "" {
			deckDir, err := resolveDeckDir(cmd)
			if err != nil {
				return fmt.Errorf("resolve deck dir: %w", err)
			}
			path = filepath.Join(deckDir, slugify(d.Title)+".json")
		}

		if err := d.Save(path); err != nil {
			return err
		}

		fmt.Printf("Saved %q (%d cards) to %s\n", d.Title, len(d.Cards), path)
		return nil
	},
}

// buildProvider builds an LLM provider from STUDYDECK_* env config, falling
// back to probing the standard provider API key env vars.
func buildProvider(ctx context.Context, st *store.Store) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}
	return llm.NewProvider(ctx, cfg, st.LLMRequests())
}

func parseKinds(flag string) ([]deck.Kind, error) {
	if flag == "" {
		return nil, nil
	}
	var kinds []deck.Kind
	for _, part := range strings.Split(flag, ",") {
		k := deck.Kind(strings.TrimSpace(part))
		if !k.Valid() {
			return nil, fmt.Errorf("unknown card kind %q (valid: %s)", k, kindNames())
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func kindNames() string {
	var names []string
	for _, k := range deck.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// slugify turns a deck title into a safe file name.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		s = "deck"
	}
	return s
}

func init() {
	genCmd.Flags().IntP("count", "n", 10, "Number of cards to generate")
	genCmd.Flags().String("notes", "", "Path to a source notes file to draw cards from")
	genCmd.Flags().String("kinds", "", "Comma-separated card kinds to generate (e.g. qa,definition)")
	genCmd.Flags().StringP("output", "o", "", "Output file path (default: <deck dir>/<title>.json)")
}
