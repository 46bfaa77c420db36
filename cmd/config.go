package cmd

import (
	"fmt"

	"github.com/arin/career-copilot/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage career-copilot configuration",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Set your Gemini API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetAPIKey(args[0]); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
		fmt.Println("API key saved successfully.")
		return nil
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model <model-name>",
	Short: "Set the Gemini model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetModel(args[0]); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Printf("Model set to %s.\n", args[0])
		return nil
	},
}

var setRelayCmd = &cobra.Command{
	Use:   "set-relay <url>",
	Short: "Send model calls through a relay (empty string to clear)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "" {
			if _, err := relayEndpoint(args[0]); err != nil {
				return err
			}
		}
		if err := config.SetRelayURL(args[0]); err != nil {
			return fmt.Errorf("failed to save relay URL: %w", err)
		}
		if args[0] == "" {
			fmt.Println("Relay cleared.")
			return nil
		}
		fmt.Printf("Relay set to %s.\n", args[0])
		return nil
	},
}

var setSocketCmd = &cobra.Command{
	Use:   "set-socket <path>",
	Short: "Set the bridge socket path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetBridgeSocket(args[0]); err != nil {
			return fmt.Errorf("failed to save socket path: %w", err)
		}
		fmt.Printf("Bridge socket set to %s.\n", args[0])
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Model:       %s\n", cfg.Model)
		fmt.Printf("API Key:     %s\n", maskKey(cfg.APIKey))
		fmt.Printf("Relay:       %s\n", orNone(cfg.RelayURL))
		fmt.Printf("Bridge:      %s\n", cfg.BridgeSocket)
		fmt.Printf("Listen Addr: %s\n", cfg.ListenAddr)
		fmt.Printf("Config Dir:  %s\n", config.Dir())
		return nil
	},
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	default:
		return key[:4] + "..." + key[len(key)-4:]
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(setRelayCmd)
	configCmd.AddCommand(setSocketCmd)
	configCmd.AddCommand(showCmd)
}
