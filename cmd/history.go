package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alta-drill/alta/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished quiz passes and accuracy per chapter",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		passes, err := repo.QueryPassEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query passes: %w", err)
		}
		if len(passes) == 0 {
			fmt.Println("No finished quizzes yet.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %-4s  %-8s  %7s  %6s  %s\n",
			"Finished", "Sampling", "Pass", "Score", "Percent", "Time", "Surface")
		fmt.Println(strings.Repeat("─", 72))
		for _, p := range passes {
			fmt.Printf("%-19s  %-8s  %-4d  %-8s  %6.1f%%  %6s  %s\n",
				p.Timestamp.Local().Format("2006-01-02 15:04:05"),
				p.Sampling,
				p.Pass,
				fmt.Sprintf("%d/%d", p.Score, p.Total),
				p.Percent(),
				formatSeconds(p.DurationSecs),
				p.Surface,
			)
		}

		acc, err := repo.ChapterAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(acc) > 0 {
			fmt.Println()
			fmt.Printf("%-10s  %8s  %8s  %7s\n", "Chapter", "Answers", "Correct", "Percent")
			fmt.Println(strings.Repeat("─", 40))
			for _, a := range acc {
				fmt.Printf("%-10s  %8d  %8d  %6.1f%%\n",
					a.Chapter, a.Answers, a.Correct, float64(a.Correct*100)/float64(max(a.Answers, 1)))
			}
		}
		return nil
	},
}

func formatSeconds(secs int) string {
	d := time.Duration(secs) * time.Second
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), secs%60)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of passes to show")
}
