// Package ai carries requests to the hosted model and turns its replies back
// into text chunks. Two channels reach the same provider: an HTTP relay that
// streams newline-delimited JSON, and a local bridge process that answers once.
package ai

import "context"

// DefaultModel is the provider model used when the caller does not pick one.
const DefaultModel = "gemini-2.5-flash"

// GenerationConfig controls sampling. Zero values are omitted on the wire so
// the provider falls back to its own defaults.
type GenerationConfig struct {
	Temperature      float32 `json:"temperature,omitempty"`
	MaxOutputTokens  int32   `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// Request is one provider call: a model, a single text prompt and its
// generation parameters.
type Request struct {
	Model    string           `json:"model"`
	Contents string           `json:"contents"`
	Config   GenerationConfig `json:"config"`
}

// Payload is the envelope both the relay and the bridge accept.
type Payload struct {
	IsStream bool    `json:"isStream"`
	Args     Request `json:"args"`
}

// Transport is the interface any delivery channel must implement.
// Callers never learn which physical channel answered.
type Transport interface {
	// Stream sends req and returns a channel of deltas in arrival order.
	// The channel is closed when the response is complete. A failure after
	// the handshake arrives as a final delta with Err set.
	Stream(ctx context.Context, req Request) (<-chan StreamDelta, error)
	// Generate sends req without streaming and returns the whole reply.
	Generate(ctx context.Context, req Request) (Chunk, error)
}

// Invoker is a single request/response call to a trusted local process.
// The reply is the JSON-encoded provider response.
type Invoker interface {
	Invoke(ctx context.Context, payload Payload) (string, error)
}
