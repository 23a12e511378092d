package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-web/internal/transcript"
)

// Pipeline runs one upload through extraction, optional pre-processing,
// transcription and reassembly.
type Pipeline interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// ProgressFunc receives completed/total counts after each transcription step.
type ProgressFunc func(completed, total int)

// Request describes one upload-processing run.
type Request struct {
	// InputPath is the uploaded media file on disk.
	InputPath string
	// KeyInput is the raw credential field: an API key, or a
	// "#"-prefixed shared-secret token that substitutes the backend key.
	KeyInput string
	// Condense strips silence before transcription.
	Condense bool
	// Segment splits the audio into fixed windows transcribed one by one.
	Segment bool
	// SegmentMinutes is the window length, 1 to 10 minutes.
	SegmentMinutes int
	// Progress, when set, is called after every transcription step.
	Progress ProgressFunc
}

// SegmentError records a per-segment transcription failure. The run
// continues past it; the failed range simply contributes no fragment.
type SegmentError struct {
	StartMs int64
	EndMs   int64
	Err     error
}

// Header renders the failed segment's time range the same way
// transcript fragments are headed.
func (e SegmentError) Header() string {
	return transcript.Fragment{StartMs: e.StartMs, EndMs: e.EndMs}.Header()
}

// Result is the outcome of a run. Text is the display document; in
// segmented mode it carries one timestamp header per fragment.
type Result struct {
	Text          string
	Fragments     []transcript.Fragment
	SegmentErrors []SegmentError
	Segmented     bool
}
