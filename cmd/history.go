package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranavj/mentis/internal/history"
	"github.com/pranavj/mentis/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List studied topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		h := history.New(s.Guides())
		entries, err := h.List(context.Background(), 0)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("Nothing studied yet.")
			return nil
		}

		fmt.Printf("%-19s  %-40s  %s\n", "Studied", "Topic", "Sources")
		fmt.Println(strings.Repeat("─", 72))
		for _, e := range entries {
			fmt.Printf("%-19s  %-40s  %d\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Guide.Topic, 40),
				len(e.Guide.Sources),
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <topic>",
	Short: "Print a stored study guide",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		h := history.New(s.Guides())
		g, err := h.Select(context.Background(), topic)
		if err != nil {
			return fmt.Errorf("load guide: %w", err)
		}
		if g == nil {
			return fmt.Errorf("no guide stored for %q", topic)
		}

		fmt.Println(g.Content)

		if len(g.Sources) > 0 {
			fmt.Println()
			fmt.Println("Sources:")
			for _, src := range g.Sources {
				fmt.Printf("  %s\n    %s\n", src.Title, src.URI)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
}
