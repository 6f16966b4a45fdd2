package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studynav/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		attempts, err := s.EventRepo().QueryQuizAttempts(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts yet.")
			return nil
		}

		fmt.Printf("%-19s  %-28s  %5s  %7s  %6s  %s\n", "Timestamp", "Quiz", "Score", "Correct", "Time", "Result")
		fmt.Println(strings.Repeat("─", 84))
		for _, a := range attempts {
			result := "passed"
			if !a.Passed {
				result = "needs review"
			}
			secs := int(a.Duration.Seconds())
			fmt.Printf("%-19s  %-28s  %4d%%  %3d/%-3d  %2d:%02d  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(a.QuizTitle, 28),
				a.Score, a.Correct, a.Total,
				secs/60, secs%60,
				result,
			)
		}

		sum, err := s.EventRepo().QuizSummary(ctx)
		if err != nil {
			return fmt.Errorf("summarize attempts: %w", err)
		}
		fmt.Println(strings.Repeat("─", 84))
		fmt.Printf("%d attempts, %d%% pass rate, average %d%%, best %d%%\n",
			sum.Attempts, sum.PassRate(), sum.AvgScore, sum.BestScore)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
