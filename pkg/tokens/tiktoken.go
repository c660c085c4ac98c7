package tokens

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base"
	EncodingO200kBase  = "o200k_base"
)

// modelEncoding pairs a model prefix with its encoding.
type modelEncoding struct {
	prefix   string
	encoding string
}

// modelEncodings is ordered longest prefix first.
var modelEncodings = []modelEncoding{
	{"gpt-4o", EncodingO200kBase},
	{"gpt-3.5", EncodingCL100kBase},
	{"gpt-4", EncodingCL100kBase},
	{"o1", EncodingO200kBase},
	{"o3", EncodingO200kBase},
}

// EncodingForModel returns the tiktoken encoding for a model id. Open
// models served from inference endpoints have their own vocabularies, so
// anything unknown falls back to cl100k_base as an approximation.
func EncodingForModel(model string) string {
	m := strings.ToLower(model)
	if i := strings.LastIndex(m, "/"); i >= 0 {
		m = m[i+1:]
	}
	for _, me := range modelEncodings {
		if strings.HasPrefix(m, me.prefix) {
			return me.encoding
		}
	}
	return EncodingCL100kBase
}

// Tiktoken estimates tokens with a tiktoken BPE encoding. The encoding is
// loaded lazily on first use; if loading fails the estimator degrades to
// Chars and logs once.
type Tiktoken struct {
	encoding string

	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

// NewTiktoken creates a Tiktoken estimator for the named encoding.
func NewTiktoken(encoding string) *Tiktoken {
	if encoding == "" {
		encoding = EncodingCL100kBase
	}
	return &Tiktoken{encoding: encoding}
}

// Encoding returns the configured encoding name.
func (t *Tiktoken) Encoding() string {
	return t.encoding
}

// Estimate implements Estimator.
func (t *Tiktoken) Estimate(text string) int {
	t.once.Do(func() {
		t.enc, t.err = tiktoken.GetEncoding(t.encoding)
		if t.err != nil {
			slog.Warn("tiktoken encoding unavailable, falling back to character estimate",
				"encoding", t.encoding,
				"error", t.err.Error(),
			)
		}
	})
	if t.err != nil {
		return Chars{}.Estimate(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}
