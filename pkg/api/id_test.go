package api

import "testing"

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	if !ValidateRequestID(id) {
		t.Errorf("NewRequestID() = %q, does not validate", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestValidateRequestID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"req_123e4567-e89b-12d3-a456-426614174000", true},
		{"123e4567-e89b-12d3-a456-426614174000", false},
		{"req_", false},
		{"resp_123e4567-e89b-12d3-a456-426614174000", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateRequestID(tt.id); got != tt.want {
			t.Errorf("ValidateRequestID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
