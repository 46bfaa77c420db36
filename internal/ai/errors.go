package ai

import "fmt"

// TransportError reports a failure reaching the relay, the bridge or the
// provider behind them. It terminates the stream it occurs in.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a chunk that is not valid JSON. Chunks already
// delivered before it stay delivered.
type DecodeError struct {
	Data string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode chunk %q: %v", truncate(e.Data, 80), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
