package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/ailearn/internal/llm"
	"github.com/abhisek/ailearn/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat backend used by the study assistant",
	Long: "Serve POST /api/chat and GET /api/ping, answering study questions with the\n" +
		"configured LLM provider. Without a provider key /api/chat answers 500.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			cfg.Addr = a
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		opts := server.Options{
			Version: displayVersion(),
			Timeout: cfg.LLM.Timeout,
			Logger:  slog.Default(),
		}

		provider, llmCfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			slog.Warn("LLM provider not configured; /api/chat will answer 500", "error", err)
		} else {
			opts.Provider = provider
			opts.Model = llmCfg.ModelName()
			if llmCfg.Timeout > 0 {
				opts.Timeout = llmCfg.Timeout
			}
			slog.Info("LLM provider ready", "provider", llmCfg.Provider, "model", opts.Model)
		}

		if err := server.New(opts).Run(ctx, cfg.Addr); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides AILEARN_ADDR and PORT, default :5000)")
}
