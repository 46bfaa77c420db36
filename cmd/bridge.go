package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arin/career-copilot/internal/bridge"
	"github.com/arin/career-copilot/internal/config"
	"github.com/arin/career-copilot/internal/gemini"
)

var bridgeSocket string

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Run the local model bridge on a Unix socket",
	Long: `Hold the API key in one long-running process and answer model calls
from other copilot commands over a Unix socket. While the bridge is running,
commands on this machine use it instead of calling Gemini themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("the bridge needs an API key: copilot config set-key <key>")
		}
		path := bridgeSocket
		if path == "" {
			path = cfg.BridgeSocket
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gen, err := gemini.New(ctx, cfg.APIKey)
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		return bridge.NewServer(gen, logger).ListenAndServe(ctx, path)
	},
}

func init() {
	bridgeCmd.Flags().StringVar(&bridgeSocket, "socket", "", "Socket path (default ~/.career-copilot/bridge.sock)")
}
