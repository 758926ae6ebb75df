package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/ailearn/internal/config"
	"github.com/abhisek/ailearn/internal/logging"
	"github.com/abhisek/ailearn/internal/store"
)

// cfg is loaded once before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "ailearn",
	Short: "AI-powered study assistant and quiz dashboard",
	Long: "AI Learn: a terminal learning companion: ask the AI study assistant questions,\n" +
		"take quick quizzes and track your progress over time.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (loadConfig refers to rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	}

	rootCmd.PersistentFlags().String("db", "", "Database path or postgres:// DSN (overrides AILEARN_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this .env file instead of ./.env")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides AILEARN_LOG_LEVEL)")
	rootCmd.Flags().String("chat-url", "", "Chat endpoint the study assistant posts to (overrides AILEARN_CHAT_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies flag overrides.
// Non-TUI commands log to stderr.
func loadConfig(cmd *cobra.Command) error {
	var files []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		files = append(files, f)
	}

	c, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		level, err := logging.ParseLevel(l)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	cfg = c

	if cmd != rootCmd {
		logging.Setup(os.Stderr, cfg.LogLevel, false)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag or AILEARN_DB
// (already folded into cfg), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
