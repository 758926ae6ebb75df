package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ailearn/internal/history"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "This deletes every quiz record. Type 'yes' to continue: ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := history.NewRepo(st.KVRepo()).Clear(context.Background()); err != nil {
			return fmt.Errorf("clear quiz history: %w", err)
		}
		slog.Info("quiz history cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Quiz history cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
