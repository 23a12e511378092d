package transcribe

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type openaiTranscriber struct {
	apiKey  string
	model   string
	baseURL string
}

// NewOpenAI creates a Whisper-backed Transcriber. An empty model
// defaults to whisper-1; baseURL overrides the API endpoint for
// compatible proxies.
func NewOpenAI(apiKey, model, baseURL string) Transcriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &openaiTranscriber{apiKey: apiKey, model: model, baseURL: baseURL}
}

func (o *openaiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	cfg := openai.DefaultConfig(o.apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: audioPath,
	})
	if err != nil {
		return "", &Error{Cause: "whisper API call failed", Err: err}
	}

	return resp.Text, nil
}
