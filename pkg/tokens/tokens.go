// Package tokens estimates token counts when the inference endpoint does
// not report usage.
//
// The default [Chars] estimator approximates one token per four characters,
// rounded up. [Tiktoken] counts BPE tokens with tiktoken-go for callers
// that want closer numbers and can afford loading an encoding.
package tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// Estimator estimates the number of tokens in a piece of text.
type Estimator interface {
	Estimate(text string) int
}

// Estimator names accepted by New.
const (
	NameChars    = "chars"
	NameTiktoken = "tiktoken"
)

// New returns the estimator registered under name. An empty name selects
// the character estimator. encoding is only used by tiktoken; empty picks
// cl100k_base.
func New(name, encoding string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameChars:
		return Chars{}, nil
	case NameTiktoken:
		return NewTiktoken(encoding), nil
	default:
		return nil, fmt.Errorf("unknown token estimator %q", name)
	}
}

// Chars estimates ceil(length/4), where length counts UTF-16 code units
// so that the numbers match what browser-side callers compute.
type Chars struct{}

// Estimate implements Estimator.
func (Chars) Estimate(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return (n + 3) / 4
}

// EstimateJSON serializes v and estimates the tokens of the serialized form.
// HTML characters are left unescaped so that <, > and & count once. Values
// that cannot be serialized are estimated from their fmt representation.
func EstimateJSON(e Estimator, v any) int {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return e.Estimate(fmt.Sprint(v))
	}
	return e.Estimate(strings.TrimSuffix(buf.String(), "\n"))
}
