package ai

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Chunk is one decoded unit of model output.
type Chunk struct {
	Text string
}

// StreamDelta represents a single chunk from a streaming AI response.
type StreamDelta struct {
	// Text is the incremental fragment. Empty string is valid.
	Text string
	// Err is non-nil if the stream failed. It is always the last delta.
	Err error
}

// chunkReader is the pull side of a stream: the NDJSON decoder for the relay,
// a single cached reply for the bridge.
type chunkReader interface {
	Next() (Chunk, error)
}

// pump drains r into a channel until EOF, error or cancellation. closer, if
// set, is closed once pumping stops so an abandoned connection is released.
func pump(ctx context.Context, r chunkReader, closer io.Closer) <-chan StreamDelta {
	ch := make(chan StreamDelta)
	go func() {
		defer close(ch)
		if closer != nil {
			defer closer.Close()
		}
		for {
			chunk, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			delta := StreamDelta{Text: chunk.Text, Err: err}
			if err != nil && ctx.Err() != nil {
				delta.Err = &TransportError{Op: "stream", Err: ctx.Err()}
			}
			select {
			case ch <- delta:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// CollectStream reads every delta and returns the concatenated text.
// It stops at the first error and returns the text gathered so far.
func CollectStream(ch <-chan StreamDelta) (string, error) {
	var b strings.Builder
	for delta := range ch {
		if delta.Err != nil {
			return b.String(), delta.Err
		}
		b.WriteString(delta.Text)
	}
	return b.String(), nil
}
