package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/assist"
	"github.com/arin/career-copilot/internal/bridge"
	"github.com/arin/career-copilot/internal/config"
	"github.com/arin/career-copilot/internal/gemini"
	"github.com/arin/career-copilot/internal/prompt"
	"github.com/arin/career-copilot/internal/resume"
)

var errNoChannel = errors.New(`no way to reach the model: set a relay (copilot config set-relay <url>), ` +
	`start a bridge (copilot bridge), or set an API key (copilot config set-key <key>)`)

// channel is the transport picked for this run and a label for the user.
type channel struct {
	transport ai.Transport
	name      string
}

// selectChannel picks the transport once per run: the relay if configured,
// else a live bridge socket, else the provider called in-process.
func selectChannel(ctx context.Context, cfg *config.Config) (channel, error) {
	if cfg.RelayURL != "" {
		endpoint, err := relayEndpoint(cfg.RelayURL)
		if err != nil {
			return channel{}, err
		}
		return channel{transport: ai.NewRelayTransport(endpoint), name: "relay " + endpoint}, nil
	}

	if cfg.BridgeSocket != "" {
		if c := bridge.NewClient(cfg.BridgeSocket); c.Available() {
			return channel{transport: ai.NewLocalTransport(c), name: "bridge " + cfg.BridgeSocket}, nil
		}
	}

	if cfg.APIKey != "" {
		gen, err := gemini.New(ctx, cfg.APIKey)
		if err != nil {
			return channel{}, err
		}
		return channel{transport: ai.NewLocalTransport(gen), name: "gemini (direct)"}, nil
	}

	return channel{}, errNoChannel
}

// relayEndpoint accepts either a full endpoint or a bare origin, to which
// the default relay path is appended.
func relayEndpoint(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid relay URL %q", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = ai.DefaultRelayPath
	}
	return u.String(), nil
}

// newAssistClient loads the config and wires the one-shot career tools.
func newAssistClient(ctx context.Context) (*assist.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	ch, err := selectChannel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return assist.NewClient(ch.transport, prompt.NewBuilder(cfg.Model, cfg.Temperature)), nil
}

// loadResume reads the resume at path. An empty path is an empty resume.
func loadResume(path string) (resume.Data, error) {
	if path == "" {
		return resume.Data{}, nil
	}
	r, err := resume.Load(path)
	if err != nil {
		return resume.Data{}, fmt.Errorf("failed to load resume: %w", err)
	}
	return r, nil
}

// readText returns the contents of path, or stdin when path is "-".
func readText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
