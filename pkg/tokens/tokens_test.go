package tokens

import (
	"strings"
	"testing"
)

func TestCharsEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"one char", "a", 1},
		{"four chars", "abcd", 1},
		{"five chars", "abcde", 2},
		{"hi", "hi", 1},
		{"hundred", strings.Repeat("x", 100), 25},
		{"multibyte counts once", "ééé", 1},
		{"astral counts twice", "😀😀", 1},
		{"astral rounds up", "😀😀a", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Chars{}).Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateJSON(t *testing.T) {
	v := []map[string]string{{"role": "user", "content": "hi"}}
	// [{"content":"hi","role":"user"}] is 32 characters.
	if got := EstimateJSON(Chars{}, v); got != 8 {
		t.Errorf("EstimateJSON = %d, want 8", got)
	}
}

func TestEstimateJSONKeepsHTMLCharacters(t *testing.T) {
	v := []map[string]string{{"role": "user", "content": "<<<<>>>>&&&&"}}
	// [{"content":"<<<<>>>>&&&&","role":"user"}] is 42 characters.
	if got := EstimateJSON(Chars{}, v); got != 11 {
		t.Errorf("EstimateJSON = %d, want 11", got)
	}
}

func TestEstimateJSONUnserializable(t *testing.T) {
	ch := make(chan int)
	if got := EstimateJSON(Chars{}, ch); got <= 0 {
		t.Errorf("EstimateJSON(chan) = %d, want a positive fallback estimate", got)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
		check   func(Estimator) bool
	}{
		{"", false, func(e Estimator) bool { _, ok := e.(Chars); return ok }},
		{"chars", false, func(e Estimator) bool { _, ok := e.(Chars); return ok }},
		{"TikToken", false, func(e Estimator) bool { _, ok := e.(*Tiktoken); return ok }},
		{"words", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.name, "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(e) {
				t.Errorf("New(%q) returned %T", tt.name, e)
			}
		})
	}
}

func TestEncodingForModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4o-mini", EncodingO200kBase},
		{"gpt-4", EncodingCL100kBase},
		{"openai/gpt-4o", EncodingO200kBase},
		{"meta-llama/Llama-3.1-8B-Instruct", EncodingCL100kBase},
		{"", EncodingCL100kBase},
	}
	for _, tt := range tests {
		if got := EncodingForModel(tt.model); got != tt.want {
			t.Errorf("EncodingForModel(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestNewTiktokenDefaultEncoding(t *testing.T) {
	if got := NewTiktoken("").Encoding(); got != EncodingCL100kBase {
		t.Errorf("Encoding() = %q, want %q", got, EncodingCL100kBase)
	}
}

func TestTiktokenUnknownEncodingFallsBack(t *testing.T) {
	tk := NewTiktoken("no_such_encoding")
	if got := tk.Encoding(); got != "no_such_encoding" {
		t.Errorf("Encoding() = %q, want no_such_encoding", got)
	}

	for _, text := range []string{"", "hi", "hello world, this is a test", "😀😀a"} {
		if got, want := tk.Estimate(text), (Chars{}).Estimate(text); got != want {
			t.Errorf("Estimate(%q) = %d, want the character estimate %d", text, got, want)
		}
	}
}
