package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ailearn/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := history.NewRepo(st.KVRepo()).Load(context.Background())
		if err != nil {
			return fmt.Errorf("load quiz history: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if len(records) == 0 {
			fmt.Println("No quizzes completed yet.")
			return nil
		}

		fmt.Printf("%-4s  %-28s  %6s  %-10s  %s\n", "#", "Subject", "Score", "Date", "Duration")
		fmt.Println(strings.Repeat("─", 72))
		for i, r := range records {
			fmt.Printf("%-4d  %-28s  %5d%%  %-10s  %s\n",
				i+1, truncate(r.Subject, 28), r.Score, r.Date, r.Duration)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("json", false, "Print the stored history as JSON")
}
