package provider

import (
	"testing"

	"github.com/rhuss/hfbridge/pkg/api"
)

func TestRequestValidate(t *testing.T) {
	zero := 0
	hot := 2.5
	tests := []struct {
		name      string
		req       Request
		wantErr   bool
		wantParam string
	}{
		{
			name:      "no messages",
			req:       Request{},
			wantErr:   true,
			wantParam: "messages",
		},
		{
			name: "out of range options are left to the endpoint",
			req: Request{
				Messages: []api.Message{api.TextMessage(api.RoleUser, "hi")},
				Options:  api.GenerationOptions{MaxOutputTokens: &zero, Temperature: &hot},
			},
		},
		{
			name: "valid",
			req: Request{
				Messages: []api.Message{
					api.TextMessage(api.RoleSystem, "be brief"),
					api.TextMessage(api.RoleUser, "hi"),
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Param != tt.wantParam {
					t.Errorf("expected param %q, got %q", tt.wantParam, err.Param)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
