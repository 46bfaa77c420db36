package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultRelayPath is where the relay server mounts its endpoint.
	DefaultRelayPath      = "/api/gemini"
	responseHeaderTimeout = 60 * time.Second
)

// RelayTransport implements Transport over the HTTP relay endpoint.
type RelayTransport struct {
	url        string
	httpClient *http.Client
}

// NewRelayTransport creates a transport that posts to url. The client has no
// overall timeout because a stream may legitimately run for minutes; only the
// wait for response headers is bounded.
func NewRelayTransport(url string) *RelayTransport {
	return &RelayTransport{
		url: url,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: responseHeaderTimeout,
			},
		},
	}
}

// Stream posts req with isStream set and decodes the response body line by
// line. Cancelling ctx aborts the request and closes the body.
func (r *RelayTransport) Stream(ctx context.Context, req Request) (<-chan StreamDelta, error) {
	resp, err := r.post(ctx, Payload{IsStream: true, Args: req})
	if err != nil {
		return nil, err
	}
	return pump(ctx, NewDecoder(resp.Body), resp.Body), nil
}

// Generate posts req without streaming and decodes the single JSON reply.
func (r *RelayTransport) Generate(ctx context.Context, req Request) (Chunk, error) {
	resp, err := r.post(ctx, Payload{IsStream: false, Args: req})
	if err != nil {
		return Chunk{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Chunk{}, &TransportError{Op: "read", Err: err}
	}
	return decodeChunk(bytes.TrimSpace(body))
}

func (r *RelayTransport) post(ctx context.Context, payload Payload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "connect", Err: fmt.Errorf("could not reach relay at %s: %w", r.url, err)}
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		return nil, &TransportError{Op: "relay", Err: statusError(resp)}
	}
	return resp, nil
}

// statusError turns a non-2xx reply into an error, preferring the relay's
// {"error": ...} message over the raw body.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var re relayError
	if err := json.Unmarshal(raw, &re); err == nil && re.message() != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, re.message())
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
}
