package pipeline

import (
	"errors"
	"testing"

	"github.com/nguyentantai21042004/transcribe-web/internal/config"
)

func TestResolveAPIKey(t *testing.T) {
	creds := config.Credentials{AdminToken: "secret123", BackendAPIKey: "sk-backend"}

	tests := []struct {
		name    string
		input   string
		creds   config.Credentials
		want    string
		wantErr error
	}{
		{"raw key passes through", "sk-user", creds, "sk-user", nil},
		{"raw key trimmed", "  sk-user  ", creds, "sk-user", nil},
		{"matching token uses backend key", "#secret123", creds, "sk-backend", nil},
		{"wrong token rejected", "#wrongtoken", creds, "", ErrInvalidToken},
		{"empty input rejected", "", creds, "", ErrMissingKey},
		{"bare hash rejected", "#", creds, "", ErrInvalidToken},
		{"no admin token configured", "#secret123", config.Credentials{BackendAPIKey: "sk-backend"}, "", ErrInvalidToken},
		{"no backend key configured", "#secret123", config.Credentials{AdminToken: "secret123"}, "", ErrMissingKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveAPIKey(tt.input, tt.creds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}
