package transcribe

import "context"

// Transcriber maps an audio file to its spoken text. Implementations
// wrap external speech services; failures are returned as *Error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Factory builds a Transcriber bound to an API key. The key differs per
// request (users may bring their own), so clients are constructed per run.
type Factory func(apiKey string) Transcriber
