package openaicompat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/rhuss/hfbridge/pkg/api"
)

const (
	initialScanBuffer = 64 * 1024
	maxScanBuffer     = 1024 * 1024
)

// ChunkReader pulls Chat Completions chunks from an SSE body one at a time.
// Nothing is read from the body until Next is called, so the consumer sets
// the pace.
//
// SSE format expected:
//
//	data: {"id":"...","choices":[...]}\n
//	\n
//	data: [DONE]\n
//	\n
type ChunkReader struct {
	scanner *bufio.Scanner
	done    bool
}

// NewChunkReader creates a ChunkReader over body.
func NewChunkReader(body io.Reader) *ChunkReader {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, initialScanBuffer), maxScanBuffer)
	return &ChunkReader{scanner: scanner}
}

// Next returns the next chunk. It returns io.EOF once the body ends or the
// [DONE] sentinel arrives. Malformed chunks, error chunks and read failures
// are returned as transport APIErrors.
func (r *ChunkReader) Next() (*ChatCompletionChunk, error) {
	if r.done {
		return nil, io.EOF
	}

	for r.scanner.Scan() {
		line := r.scanner.Bytes()

		// Only "data:" lines carry payloads; blank lines, comments (":")
		// and "event:" lines are skipped.
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		payload := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("data:")))
		if len(payload) == 0 {
			continue
		}

		if bytes.Equal(payload, []byte("[DONE]")) {
			r.done = true
			return nil, io.EOF
		}

		var chunk ChatCompletionChunk
		if err := json.Unmarshal(payload, &chunk); err != nil {
			r.done = true
			return nil, MapDecodeError("stream chunk", err)
		}
		if len(chunk.Error) > 0 && string(chunk.Error) != "null" {
			r.done = true
			return nil, chunkError(chunk.Error)
		}

		return &chunk, nil
	}

	r.done = true
	if err := r.scanner.Err(); err != nil {
		return nil, api.NewTransportError("stream read error: "+err.Error(), err)
	}
	return nil, io.EOF
}
