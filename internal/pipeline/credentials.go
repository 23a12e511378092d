package pipeline

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcribe-web/internal/config"
)

// resolveAPIKey turns the user's credential input into the API key for
// this run. A "#"-prefixed input is a shared-secret token: it must match
// the configured admin token exactly, in which case the server-held
// backend key is used. Anything else is treated as the key itself.
func resolveAPIKey(input string, creds config.Credentials) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrMissingKey
	}

	if !strings.HasPrefix(input, "#") {
		return input, nil
	}

	token := input[1:]
	// An unset admin token makes admin login impossible; no token matches.
	if creds.AdminToken == "" || token != creds.AdminToken {
		return "", ErrInvalidToken
	}
	if creds.BackendAPIKey == "" {
		return "", fmt.Errorf("backend API key not configured: %w", ErrMissingKey)
	}

	return creds.BackendAPIKey, nil
}
