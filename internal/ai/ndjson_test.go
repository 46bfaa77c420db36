package ai

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textLine(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"role":"model","parts":[{"text":%q}]}}]}`, text)
}

func drain(t *testing.T, d *Decoder) ([]string, error) {
	t.Helper()
	var texts []string
	for {
		chunk, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return texts, nil
			}
			return texts, err
		}
		texts = append(texts, chunk.Text)
	}
}

func TestDecoder_SplitsOnNewlines(t *testing.T) {
	body := textLine("<ANSWER>Hel") + "\n" + textLine("lo</ANSWER>") + "\n"
	texts, err := drain(t, NewDecoder(strings.NewReader(body)))
	require.NoError(t, err)
	assert.Equal(t, []string{"<ANSWER>Hel", "lo</ANSWER>"}, texts)
}

func TestDecoder_LinesSplitAcrossReads(t *testing.T) {
	body := textLine("one") + "\n" + textLine("two") + "\n" + textLine("three")
	// OneByteReader forces every line to be reassembled from single bytes.
	texts, err := drain(t, NewDecoder(iotest.OneByteReader(strings.NewReader(body))))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, texts)
}

func TestDecoder_TrailingRemainderWithoutNewline(t *testing.T) {
	body := textLine("first") + "\n" + textLine("last")
	texts, err := drain(t, NewDecoder(strings.NewReader(body)))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "last"}, texts)
}

func TestDecoder_SkipsBlankLines(t *testing.T) {
	body := "\n\n" + textLine("a") + "\r\n\n" + textLine("b") + "\n\n"
	texts, err := drain(t, NewDecoder(strings.NewReader(body)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts)
}

func TestDecoder_EmptyBody(t *testing.T) {
	texts, err := drain(t, NewDecoder(strings.NewReader("")))
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestDecoder_MalformedLineIsDecodeError(t *testing.T) {
	body := textLine("ok") + "\n" + `{"candidates": [` + "\n" + textLine("never")
	d := NewDecoder(strings.NewReader(body))

	texts, err := drain(t, d)
	assert.Equal(t, []string{"ok"}, texts)

	var de *DecodeError
	require.ErrorAs(t, err, &de)

	// The decoder stays failed.
	_, err = d.Next()
	assert.ErrorAs(t, err, &de)
}

func TestDecoder_UnparseableRemainderIsDecodeError(t *testing.T) {
	body := textLine("ok") + "\n" + `{"candid`
	texts, err := drain(t, NewDecoder(strings.NewReader(body)))
	assert.Equal(t, []string{"ok"}, texts)

	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestDecoder_RelayErrorLineIsTransportError(t *testing.T) {
	body := textLine("partial") + "\n" + `{"error":"provider hung up"}` + "\n"
	texts, err := drain(t, NewDecoder(strings.NewReader(body)))
	assert.Equal(t, []string{"partial"}, texts)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "provider hung up")
}

func TestDecoder_ProviderErrorObjectIsTransportError(t *testing.T) {
	body := textLine("partial") + "\n" +
		`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}` + "\n"
	texts, err := drain(t, NewDecoder(strings.NewReader(body)))
	assert.Equal(t, []string{"partial"}, texts)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "429 Resource has been exhausted")

	var de *DecodeError
	assert.False(t, errors.As(err, &de))
}

func TestDecodeChunk_NullErrorIsIgnored(t *testing.T) {
	chunk, err := decodeChunk([]byte(`{"error":null,` + textLine("ok")[1:]))
	require.NoError(t, err)
	assert.Equal(t, "ok", chunk.Text)
}

func TestDecoder_ReadFailureIsTransportError(t *testing.T) {
	r := io.MultiReader(strings.NewReader(textLine("ok")+"\n"), iotest.ErrReader(errors.New("connection reset")))
	texts, err := drain(t, NewDecoder(r))
	assert.Equal(t, []string{"ok"}, texts)

	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestDecodeChunk_NoCandidates(t *testing.T) {
	chunk, err := decodeChunk([]byte(`{"candidates":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "", chunk.Text)
}

func TestDecodeChunk_NotAnObject(t *testing.T) {
	_, err := decodeChunk([]byte(`"just a string"`))
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}
