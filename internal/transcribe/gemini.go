package transcribe

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const transcribePrompt = "Transcribe this audio recording verbatim. " +
	"Return only the spoken text, without timestamps, speaker labels or commentary."

type geminiTranscriber struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini-backed Transcriber. The audio file is sent
// inline, which keeps the client stateless but caps input size at the
// API's inline limit; segmented uploads stay well below it.
func NewGemini(apiKey, model string) Transcriber {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiTranscriber{apiKey: apiKey, model: model}
}

func (g *geminiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", &Error{Cause: "read audio file", Err: err}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &Error{Cause: "create Gemini client", Err: err}
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, "audio/wav"),
		genai.NewPartFromText(transcribePrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &Error{Cause: "Gemini API call failed", Err: err}
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", &Error{Cause: "empty response from Gemini", Err: fmt.Errorf("no candidates")}
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
