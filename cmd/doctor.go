package cmd

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/arin/career-copilot/internal/bridge"
	"github.com/arin/career-copilot/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system health and configuration",
	Long: `Run a health check on your copilot setup.
Verifies the API key, relay reachability, the bridge socket and which
channel model calls will go through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		dim := color.New(color.FgHiBlack)
		cyan := color.New(color.FgCyan, color.Bold)

		cyan.Fprintf(os.Stderr, "\n  🩺 copilot doctor\n\n")

		pass, fail, warn := 0, 0, 0

		check := func(name string, fn func() (string, error)) {
			detail, err := fn()
			if err != nil {
				if strings.HasPrefix(err.Error(), "warn:") {
					yellow.Fprintf(os.Stderr, "  ⚠ %s\n", name)
					dim.Fprintf(os.Stderr, "    %s\n", strings.TrimPrefix(err.Error(), "warn:"))
					warn++
				} else {
					red.Fprintf(os.Stderr, "  ✗ %s\n", name)
					dim.Fprintf(os.Stderr, "    %s\n", err.Error())
					fail++
				}
			} else {
				green.Fprintf(os.Stderr, "  ✓ %s", name)
				if detail != "" {
					dim.Fprintf(os.Stderr, " (%s)", detail)
				}
				fmt.Fprintln(os.Stderr)
				pass++
			}
		}

		cfg, _ := config.Load()

		check("copilot binary installed", func() (string, error) {
			path, err := os.Executable()
			if err != nil {
				return "", fmt.Errorf("could not find copilot binary")
			}
			return path, nil
		})

		check("Config directory", func() (string, error) {
			dir := config.Dir()
			info, err := os.Stat(dir)
			if err != nil {
				return "", fmt.Errorf("warn:%s not found, it will be created on first use", dir)
			}
			if !info.IsDir() {
				return "", fmt.Errorf("%s exists but is not a directory", dir)
			}
			return dir, nil
		})

		check("API key", func() (string, error) {
			if cfg.APIKey != "" {
				return maskKey(cfg.APIKey), nil
			}
			if cfg.RelayURL != "" {
				return "", fmt.Errorf("warn:not set, calls depend on the relay")
			}
			return "", fmt.Errorf("not set: copilot config set-key <key> or export GEMINI_API_KEY")
		})

		if cfg.RelayURL != "" {
			check("Relay reachable", func() (string, error) {
				endpoint, err := relayEndpoint(cfg.RelayURL)
				if err != nil {
					return "", err
				}
				client := &http.Client{Timeout: 3 * time.Second}
				resp, err := client.Get(endpoint)
				if err != nil {
					return "", fmt.Errorf("could not connect to %s", endpoint)
				}
				defer resp.Body.Close()
				// The endpoint only accepts POST, so 405 means it is up.
				if resp.StatusCode != http.StatusMethodNotAllowed && resp.StatusCode != http.StatusOK {
					return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
				}
				return endpoint, nil
			})
		}

		check("Bridge socket", func() (string, error) {
			if bridge.NewClient(cfg.BridgeSocket).Available() {
				return cfg.BridgeSocket, nil
			}
			return "", fmt.Errorf("warn:no bridge running at %s (start one with: copilot bridge)", cfg.BridgeSocket)
		})

		check("Model channel", func() (string, error) {
			ch, err := selectChannel(cmd.Context(), cfg)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, model %s", ch.name, cfg.Model), nil
		})

		check("System info", func() (string, error) {
			return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), nil
		})

		fmt.Fprintln(os.Stderr)
		total := pass + fail + warn
		if fail == 0 && warn == 0 {
			green.Fprintf(os.Stderr, "  All %d checks passed. You're good to go.\n\n", total)
		} else if fail == 0 {
			yellow.Fprintf(os.Stderr, "  %d passed, %d warnings. Everything works, but some things could be better.\n\n", pass, warn)
		} else {
			red.Fprintf(os.Stderr, "  %d passed, %d failed, %d warnings. Fix the failures above.\n\n", pass, fail, warn)
		}

		return nil
	},
}
