// Package config handles loading and persisting user configuration
// for career-copilot. Configuration is stored in ~/.career-copilot/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/arin/career-copilot/internal/ai"
)

const (
	dirName    = ".career-copilot"
	fileName   = "config.json"
	socketName = "bridge.sock"

	// DefaultListenAddr is where the relay listens when nothing is configured.
	DefaultListenAddr = "127.0.0.1:8787"

	envKeyModel        = "COPILOT_MODEL"
	envKeyAPIKey       = "GEMINI_API_KEY"
	envKeyAPIKeyLegacy = "API_KEY"
	envKeyRelayURL     = "COPILOT_RELAY_URL"
	envKeyBridgeSocket = "COPILOT_BRIDGE_SOCKET"
	envKeyListenAddr   = "COPILOT_LISTEN_ADDR"
)

// Config holds the user's configuration.
type Config struct {
	APIKey       string  `json:"api_key,omitempty"`
	Model        string  `json:"model"`
	RelayURL     string  `json:"relay_url,omitempty"`
	BridgeSocket string  `json:"bridge_socket,omitempty"`
	ListenAddr   string  `json:"listen_addr,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
}

// Dir returns the configuration directory path.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

// DefaultBridgeSocket is the socket path used when none is configured.
func DefaultBridgeSocket() string {
	return filepath.Join(Dir(), socketName)
}

func configPath() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the configuration from .env, disk and environment variables,
// in that order of increasing precedence. A missing or unreadable file is
// not an error.
func Load() (*Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	cfg := read()

	if model := os.Getenv(envKeyModel); model != "" {
		cfg.Model = model
	}
	if key := os.Getenv(envKeyAPIKey); key != "" {
		cfg.APIKey = key
	} else if key := os.Getenv(envKeyAPIKeyLegacy); key != "" {
		cfg.APIKey = key
	}
	if u := os.Getenv(envKeyRelayURL); u != "" {
		cfg.RelayURL = u
	}
	if s := os.Getenv(envKeyBridgeSocket); s != "" {
		cfg.BridgeSocket = s
	}
	if a := os.Getenv(envKeyListenAddr); a != "" {
		cfg.ListenAddr = a
	}

	if cfg.Model == "" {
		cfg.Model = ai.DefaultModel
	}
	if cfg.BridgeSocket == "" {
		cfg.BridgeSocket = DefaultBridgeSocket()
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}

	return cfg, nil
}

// read returns the file contents only, without defaults or overrides, so the
// setters never persist values that came from the environment.
func read() *Config {
	cfg := &Config{}
	data, err := os.ReadFile(configPath())
	if err == nil {
		_ = json.Unmarshal(data, cfg)
	}
	return cfg
}

// save persists the config to disk.
func save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0o600)
}

func update(fn func(*Config)) error {
	cfg := read()
	fn(cfg)
	return save(cfg)
}

// SetAPIKey saves the Gemini API key to the config file.
func SetAPIKey(key string) error {
	return update(func(c *Config) { c.APIKey = key })
}

// SetModel saves the model preference to the config file.
func SetModel(model string) error {
	return update(func(c *Config) { c.Model = model })
}

// SetRelayURL saves the relay endpoint. An empty url clears it.
func SetRelayURL(url string) error {
	return update(func(c *Config) { c.RelayURL = url })
}

// SetBridgeSocket saves the bridge socket path.
func SetBridgeSocket(path string) error {
	return update(func(c *Config) { c.BridgeSocket = path })
}
