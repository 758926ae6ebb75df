package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ailearn/internal/dashboard"
	"github.com/abhisek/ailearn/internal/history"
	"github.com/abhisek/ailearn/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := history.NewRepo(st.KVRepo()).Load(context.Background())
		if err != nil {
			return fmt.Errorf("load quiz history: %w", err)
		}

		sum := dashboard.Summarize(records)
		fmt.Println("Learning Statistics")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-20s %s%%\n", "Average Score", dashboard.FormatAverage(sum.AverageScore))
		fmt.Printf("%-20s %d mins\n", "Total Time", sum.TotalTime)
		fmt.Printf("%-20s %d\n", "Quizzes Completed", sum.Completed)
		fmt.Println()
		fmt.Println("Built-in subjects:", strings.Join(quiz.Subjects(), ", "))
		return nil
	},
}
