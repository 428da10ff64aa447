package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranav/snapquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print lifetime stats and recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		events := st.EventRepo()

		lt, err := events.Lifetime(ctx)
		if err != nil {
			return fmt.Errorf("load lifetime stats: %w", err)
		}
		if lt.SessionsCompleted == 0 {
			fmt.Println("No completed runs yet.")
			return nil
		}

		fmt.Printf("Runs:       %d\n", lt.SessionsCompleted)
		fmt.Printf("Points:     %d\n", lt.TotalScore)
		fmt.Printf("Correct:    %d/%d (%.0f%%)\n", lt.TotalCorrect, lt.TotalSteps, lt.Accuracy()*100)
		if lt.DuplicateRejects > 0 {
			fmt.Printf("Duplicates: %d rejected\n", lt.DuplicateRejects)
		}

		sessions, err := events.RecentSessions(ctx, 10)
		if err != nil {
			return fmt.Errorf("load recent runs: %w", err)
		}
		if len(sessions) == 0 {
			return nil
		}

		fmt.Println("\nRecent runs:")
		for _, s := range sessions {
			mode := s.Kind
			if s.Category != "" {
				mode = s.Category
			}
			fmt.Printf("  %s  %-10s %-7s %3d pts  %d/%d\n",
				s.EndedAt.Format("2006-01-02"), mode, s.Difficulty, s.Score, s.Correct, s.Total)
		}
		return nil
	},
}
