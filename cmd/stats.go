package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranavj/mentis/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz results per topic",
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

		stats, err := s.QuizResults().StatsByTopic(context.Background())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Printf("%-40s  %8s  %6s  %6s\n", "Topic", "Attempts", "Best", "Avg")
		fmt.Println(strings.Repeat("─", 68))
		for _, st := range stats {
			fmt.Printf("%-40s  %8d  %3d/%d  %6.1f\n",
				truncate(st.Topic, 40),
				st.Attempts,
				st.BestScore, st.Total,
				st.AvgScore,
			)
		}
		return nil
	},
}
