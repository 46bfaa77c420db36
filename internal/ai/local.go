package ai

import (
	"context"
	"io"
	"strings"
)

// LocalTransport implements Transport over a single-shot local call.
// The local process blocks on the full provider reply, so a stream from this
// transport always has exactly one delta and cannot be cancelled mid-way.
type LocalTransport struct {
	inv Invoker
}

// NewLocalTransport wraps inv.
func NewLocalTransport(inv Invoker) *LocalTransport {
	return &LocalTransport{inv: inv}
}

// Stream invokes the local process and replays its reply as a one-element
// stream. The streaming flag is never forwarded.
func (l *LocalTransport) Stream(ctx context.Context, req Request) (<-chan StreamDelta, error) {
	raw, err := l.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	chunk, err := decodeChunk([]byte(strings.TrimSpace(raw)))
	return pump(ctx, &onceReader{chunk: chunk, err: err}, nil), nil
}

// Generate invokes the local process and decodes its reply.
func (l *LocalTransport) Generate(ctx context.Context, req Request) (Chunk, error) {
	raw, err := l.invoke(ctx, req)
	if err != nil {
		return Chunk{}, err
	}
	return decodeChunk([]byte(strings.TrimSpace(raw)))
}

func (l *LocalTransport) invoke(ctx context.Context, req Request) (string, error) {
	raw, err := l.inv.Invoke(ctx, Payload{IsStream: false, Args: req})
	if err != nil {
		return "", &TransportError{Op: "invoke", Err: err}
	}
	return raw, nil
}

// onceReader yields one chunk or one error, then io.EOF.
type onceReader struct {
	chunk Chunk
	err   error
	done  bool
}

func (o *onceReader) Next() (Chunk, error) {
	if o.done {
		return Chunk{}, io.EOF
	}
	o.done = true
	return o.chunk, o.err
}
