package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Relay (channel A) ---

func TestRelayTransport_Stream(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/jsonl")
		for _, s := range []string{"<ANSWER>Hel", "lo</ANSWER>"} {
			_, _ = w.Write([]byte(textLine(s) + "\n"))
			w.(http.Flusher).Flush()
		}
	}))
	defer srv.Close()

	tr := NewRelayTransport(srv.URL)
	ch, err := tr.Stream(context.Background(), Request{Model: DefaultModel, Contents: "q"})
	require.NoError(t, err)

	text, err := CollectStream(ch)
	require.NoError(t, err)
	assert.Equal(t, "<ANSWER>Hello</ANSWER>", text)
	assert.True(t, got.IsStream)
	assert.Equal(t, "q", got.Args.Contents)
}

func TestRelayTransport_Generate(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(textLine("full reply")))
	}))
	defer srv.Close()

	chunk, err := NewRelayTransport(srv.URL).Generate(context.Background(), Request{Contents: "q"})
	require.NoError(t, err)
	assert.Equal(t, "full reply", chunk.Text)
	assert.False(t, got.IsStream)
}

func TestRelayTransport_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"API key is not configured on the server."}`))
	}))
	defer srv.Close()

	_, err := NewRelayTransport(srv.URL).Stream(context.Background(), Request{})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "API key is not configured")
	assert.Contains(t, err.Error(), "500")
}

func TestRelayTransport_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRelayTransport(url).Generate(context.Background(), Request{})
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestRelayTransport_MidStreamDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(textLine("good") + "\nnot json\n"))
	}))
	defer srv.Close()

	ch, err := NewRelayTransport(srv.URL).Stream(context.Background(), Request{})
	require.NoError(t, err)

	text, err := CollectStream(ch)
	assert.Equal(t, "good", text)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestRelayTransport_CancelClosesStream(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(textLine("first") + "\n"))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := NewRelayTransport(srv.URL).Stream(ctx, Request{})
	require.NoError(t, err)

	first := <-ch
	assert.Equal(t, "first", first.Text)
	cancel()

	select {
	case _, ok := <-ch:
		// Either a terminal error delta or an immediate close.
		if ok {
			_, ok = <-ch
			assert.False(t, ok)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream was not released after cancel")
	}
}

// --- Local (channel B) ---

type mockInvoker struct {
	reply    string
	err      error
	calls    int
	lastLoad Payload
}

func (m *mockInvoker) Invoke(_ context.Context, p Payload) (string, error) {
	m.calls++
	m.lastLoad = p
	return m.reply, m.err
}

func TestLocalTransport_StreamIsSingleChunk(t *testing.T) {
	inv := &mockInvoker{reply: textLine("<ANSWER>all at once</ANSWER>")}
	ch, err := NewLocalTransport(inv).Stream(context.Background(), Request{Contents: "q"})
	require.NoError(t, err)

	var deltas []StreamDelta
	for d := range ch {
		deltas = append(deltas, d)
	}
	require.Len(t, deltas, 1)
	assert.Equal(t, "<ANSWER>all at once</ANSWER>", deltas[0].Text)
	assert.False(t, inv.lastLoad.IsStream, "streaming flag must be normalised away")
}

func TestLocalTransport_InvokeErrorIsTransportError(t *testing.T) {
	inv := &mockInvoker{err: errors.New("AI SDK not initialized.")}
	_, err := NewLocalTransport(inv).Stream(context.Background(), Request{})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "AI SDK not initialized")
}

func TestLocalTransport_MalformedReplyArrivesAsDelta(t *testing.T) {
	inv := &mockInvoker{reply: "{oops"}
	ch, err := NewLocalTransport(inv).Stream(context.Background(), Request{})
	require.NoError(t, err)

	_, err = CollectStream(ch)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestLocalTransport_Generate(t *testing.T) {
	inv := &mockInvoker{reply: textLine("hi")}
	chunk, err := NewLocalTransport(inv).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "hi", chunk.Text)
	assert.Equal(t, 1, inv.calls)
}

// --- collect ---

func TestCollectStream_ErrorMidStream(t *testing.T) {
	ch := make(chan StreamDelta, 3)
	ch <- StreamDelta{Text: "hello"}
	ch <- StreamDelta{Err: errors.New("broken")}
	ch <- StreamDelta{Text: "world"}
	close(ch)

	result, err := CollectStream(ch)
	assert.Error(t, err)
	assert.Equal(t, "hello", result)
}

func TestCollectStream_EmptyChannel(t *testing.T) {
	ch := make(chan StreamDelta)
	close(ch)

	result, err := CollectStream(ch)
	require.NoError(t, err)
	assert.Empty(t, result)
}
