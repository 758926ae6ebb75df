package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ailearn/internal/app"
	"github.com/abhisek/ailearn/internal/chat"
	"github.com/abhisek/ailearn/internal/history"
	"github.com/abhisek/ailearn/internal/logging"
	"github.com/abhisek/ailearn/internal/store"
)

// logFileName is written next to the database while the TUI owns the terminal.
const logFileName = "ailearn.log"

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if u, _ := cmd.Flags().GetString("chat-url"); u != "" {
		cfg.ChatURL = u
	}

	dbPath, err := resolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	logPath, err := tuiLogPath(dbPath)
	if err != nil {
		return err
	}
	_, closeLog, err := logging.SetupFile(logPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	slog.Info("starting ailearn", "version", displayVersion(), "db", st.Dialect(), "chat_url", cfg.ChatURL)

	return app.Run(app.Options{
		History: history.NewRepo(st.KVRepo()),
		Asker:   chat.NewClient(cfg.ChatURL),
		ChatURL: cfg.ChatURL,
		Version: displayVersion(),
	})
}

// tuiLogPath places the log file beside a SQLite database file, or in the
// data directory when the database is a DSN or URI.
func tuiLogPath(dbPath string) (string, error) {
	if strings.Contains(dbPath, "://") || strings.HasPrefix(dbPath, "file:") {
		dir, err := store.DataDir()
		if err != nil {
			return "", fmt.Errorf("resolve log path: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create log dir: %w", err)
		}
		return filepath.Join(dir, logFileName), nil
	}
	return filepath.Join(filepath.Dir(dbPath), logFileName), nil
}
