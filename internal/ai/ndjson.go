package ai

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"google.golang.org/genai"
)

// Decoder reassembles a newline-delimited JSON byte stream into chunks.
// A trailing line without a newline is still decoded once the source ends.
type Decoder struct {
	r   *bufio.Reader
	err error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next chunk in arrival order. It returns io.EOF once the
// source is exhausted, and keeps returning the first error after a failure.
func (d *Decoder) Next() (Chunk, error) {
	for d.err == nil {
		line, err := d.r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			d.err = &TransportError{Op: "read", Err: err}
			break
		}
		if errors.Is(err, io.EOF) {
			d.err = io.EOF
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		chunk, derr := decodeChunk(line)
		if derr != nil {
			d.err = derr
			return Chunk{}, derr
		}
		return chunk, nil
	}
	return Chunk{}, d.err
}

// relayError is a line carrying an error instead of a response: the relay's
// {"error":"..."} or the provider's {"error":{"code":..,"message":..}}.
type relayError struct {
	Error json.RawMessage `json:"error"`
}

// message renders the error value as text.
func (e relayError) message() string {
	var text string
	if json.Unmarshal(e.Error, &text) == nil {
		return text
	}
	var status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Error, &status) == nil && status.Message != "" {
		if status.Code != 0 {
			return fmt.Sprintf("%d %s", status.Code, status.Message)
		}
		return status.Message
	}
	return string(e.Error)
}

// decodeChunk parses one provider response and extracts its text.
func decodeChunk(data []byte) (Chunk, error) {
	var re relayError
	if err := json.Unmarshal(data, &re); err != nil {
		return Chunk{}, &DecodeError{Data: string(data), Err: err}
	}
	if len(re.Error) > 0 && !bytes.Equal(re.Error, []byte("null")) {
		return Chunk{}, &TransportError{Op: "relay", Err: errors.New(re.message())}
	}

	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Chunk{}, &DecodeError{Data: string(data), Err: err}
	}
	return Chunk{Text: resp.Text()}, nil
}
