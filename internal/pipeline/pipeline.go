package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcribe-web/internal/audio"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcribe"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcript"
)

// Run processes one upload end to end:
//
//	Uploaded -> (StrippingSilence?) -> (Segmenting?) -> Transcribing[0..n] -> Reassembling -> Done
//
// Credentials are checked before anything touches the audio. All
// per-run artifacts live in one temp directory that is removed on every
// exit path.
func (p *implPipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	apiKey, err := resolveAPIKey(req.KeyInput, p.creds)
	if err != nil {
		return nil, err
	}
	transcriber := p.factory(apiKey)

	runID := uuid.New().String()
	runDir := filepath.Join(p.cfg.Paths.Temp, "run-"+runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	defer p.cleanupRunDir(ctx, runDir)

	p.logger.Info(ctx, "Run %s: processing %s (condense=%v segment=%v)",
		runID, req.InputPath, req.Condense, req.Segment)

	track, err := p.audio.Extract(ctx, req.InputPath, runDir)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}

	if req.Condense {
		stripped, err := p.audio.StripSilence(ctx, track, runDir)
		if err != nil {
			// Keep going with the original audio rather than failing the run.
			p.logger.Warn(ctx, "Run %s: silence stripping failed, using original audio: %v", runID, err)
		}
		track = stripped
	}

	if !req.Segment {
		return p.transcribeWhole(ctx, transcriber, track, req.Progress)
	}

	segmentLenMs := int64(req.SegmentMinutes) * 60_000
	segments, err := p.audio.Split(ctx, track, segmentLenMs, runDir)
	if err != nil {
		return nil, fmt.Errorf("segment audio: %w", err)
	}

	var fragments []transcript.Fragment
	var segmentErrors []SegmentError
	total := len(segments)

	for i, seg := range segments {
		text, err := transcriber.Transcribe(ctx, seg.Path)
		if err != nil {
			// Record and keep going; earlier fragments are never discarded.
			p.logger.Error(ctx, "Run %s: segment %d (%dms-%dms) failed: %v",
				runID, i, seg.StartMs, seg.EndMs, err)
			segmentErrors = append(segmentErrors, SegmentError{StartMs: seg.StartMs, EndMs: seg.EndMs, Err: err})
		} else {
			fragments = append(fragments, transcript.Fragment{StartMs: seg.StartMs, EndMs: seg.EndMs, Text: text})
		}

		p.logger.Info(ctx, "Run %s: transcribed %d/%d segments", runID, i+1, total)
		if req.Progress != nil {
			req.Progress(i+1, total)
		}
	}

	return &Result{
		Text:          transcript.Reassemble(fragments),
		Fragments:     fragments,
		SegmentErrors: segmentErrors,
		Segmented:     true,
	}, nil
}

// transcribeWhole handles the non-segmented path: a single transcription
// over the whole track. Here a transcription failure is fatal since
// there is no partial result to preserve.
func (p *implPipeline) transcribeWhole(ctx context.Context, transcriber transcribe.Transcriber, track audio.Track, progress ProgressFunc) (*Result, error) {
	if track.DurationMs == 0 {
		// Nothing left after stripping; a valid degenerate case.
		return &Result{}, nil
	}

	text, err := transcriber.Transcribe(ctx, track.Path)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		progress(1, 1)
	}

	return &Result{
		Text:      text,
		Fragments: []transcript.Fragment{{StartMs: 0, EndMs: track.DurationMs, Text: text}},
	}, nil
}

func (r Request) validate() error {
	if r.InputPath == "" {
		return fmt.Errorf("no input file")
	}
	if r.Segment && (r.SegmentMinutes < 1 || r.SegmentMinutes > 10) {
		return fmt.Errorf("segment length must be between 1 and 10 minutes, got %d", r.SegmentMinutes)
	}
	return nil
}

// cleanupRunDir removes the run's temp artifacts. Failures are logged
// and never surfaced as a failure of the run itself.
func (p *implPipeline) cleanupRunDir(ctx context.Context, runDir string) {
	if err := os.RemoveAll(runDir); err != nil {
		p.logger.Warn(ctx, "Failed to clean up run directory %s: %v", runDir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up run directory: %s", runDir)
	}
}
