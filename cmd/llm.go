package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ananya/studydeck/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		operation, _ := cmd.Flags().GetString("operation")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		records, err := s.LLMRequests().Recent(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No LLM requests logged yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-16s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Operation", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, r := range records {
			if operation != "" && r.Operation != operation {
				continue
			}
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			model := r.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-16s  %-28s  %-6d  %-6d  %-7d  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Operation,
				model,
				r.InputTokens,
				r.OutputTokens,
				r.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("operation", "p", "", "Filter by operation (e.g. deck_generation)")

	llmCmd.AddCommand(llmListCmd)
}
