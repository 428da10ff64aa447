package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pranav/snapquest/internal/app"
	"github.com/pranav/snapquest/internal/catalog"
	"github.com/pranav/snapquest/internal/logging"
	"github.com/pranav/snapquest/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	logger := buildLogger(cmd)
	defer logger.Sync()

	cat := catalog.Builtin()
	if packPath, _ := cmd.Flags().GetString("catalog"); packPath != "" {
		if err := cat.LoadPack(packPath); err != nil {
			return fmt.Errorf("load catalog pack: %w", err)
		}
	}

	return app.Run(app.Options{
		Catalog: cat,
		Ledger:  st.Ledger(),
		Events:  st.EventRepo(),
		Logger:  logger,
	})
}

// buildLogger sets up the file logger. A logging failure never blocks
// playing; it degrades to a no-op logger with a note on stderr.
func buildLogger(cmd *cobra.Command) *zap.Logger {
	debug, _ := cmd.Flags().GetBool("debug")

	logPath, err := logging.DefaultLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging unavailable:", err)
		return zap.NewNop()
	}
	logger, err := logging.New(logPath, debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging unavailable:", err)
		return zap.NewNop()
	}
	return logger
}
