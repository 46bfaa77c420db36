// Package gemini calls the Gemini API through google.golang.org/genai. It is
// the only place the API key is used.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/arin/career-copilot/internal/ai"
)

// ErrNoAPIKey is returned by New when no key is configured.
var ErrNoAPIKey = errors.New("gemini: API key is not configured")

// Generator sends requests to the Gemini API.
type Generator struct {
	client *genai.Client
}

// New returns a Generator for the Gemini API backend.
func New(ctx context.Context, apiKey string) (*Generator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return newWithConfig(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newWithConfig(ctx context.Context, cc *genai.ClientConfig) (*Generator, error) {
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Generator{client: client}, nil
}

// Generate makes one non-streaming call.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (*genai.GenerateContentResponse, error) {
	model, err := modelOf(req)
	if err != nil {
		return nil, err
	}
	return g.client.Models.GenerateContent(ctx, model, genai.Text(req.Contents), contentConfig(req.Config))
}

// GenerateStream yields the provider's chunks as they arrive. Iteration stops
// after the first error.
func (g *Generator) GenerateStream(ctx context.Context, req ai.Request) iter.Seq2[*genai.GenerateContentResponse, error] {
	model, err := modelOf(req)
	if err != nil {
		return func(yield func(*genai.GenerateContentResponse, error) bool) { yield(nil, err) }
	}
	return g.client.Models.GenerateContentStream(ctx, model, genai.Text(req.Contents), contentConfig(req.Config))
}

// Invoke serves the single request/response channel: the call is always
// non-streaming, whatever p.IsStream says, and the reply is the response
// serialized as JSON.
func (g *Generator) Invoke(ctx context.Context, p ai.Payload) (string, error) {
	resp, err := g.Generate(ctx, p.Args)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(data), nil
}

func modelOf(req ai.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("gemini: request has no model")
	}
	return req.Model, nil
}

// contentConfig maps the wire generation config onto the SDK's. Zero values
// are left unset so the API applies its own defaults.
func contentConfig(c ai.GenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		MaxOutputTokens:  c.MaxOutputTokens,
		ResponseMIMEType: c.ResponseMIMEType,
	}
	if c.Temperature != 0 {
		out.Temperature = genai.Ptr(c.Temperature)
	}
	return out
}
