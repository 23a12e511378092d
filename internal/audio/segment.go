package audio

import (
	"context"
	"fmt"
	"path/filepath"
)

// Split cuts the track into fixed-length windows and writes one WAV per
// window into dir. Windows are planned on the original timeline, so the
// StartMs/EndMs of the returned segments can be used directly for
// transcript timestamps.
func (p *implProcessor) Split(ctx context.Context, track Track, segmentLenMs int64, dir string) ([]Segment, error) {
	windows, err := planWindows(track.DurationMs, segmentLenMs)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	p.logger.Info(ctx, "Splitting %s into %d segments of %dms", track.Path, len(windows), segmentLenMs)

	segments := make([]Segment, 0, len(windows))
	for i, w := range windows {
		segPath := filepath.Join(dir, fmt.Sprintf("segment_%03d.wav", i))

		// Re-encode rather than stream-copy so each segment is a valid
		// standalone WAV even when the cut lands mid-frame.
		args := []string{
			"-i", track.Path,
			"-ss", msToSec(w.StartMs),
			"-to", msToSec(w.EndMs),
			"-c:a", "pcm_s16le",
			"-y",
			segPath,
		}
		if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
			return nil, fmt.Errorf("extract segment %d: %w", i, err)
		}

		segments = append(segments, Segment{Path: segPath, StartMs: w.StartMs, EndMs: w.EndMs})
	}

	return segments, nil
}

// planWindows lays out contiguous fixed-size windows over [0, totalMs).
// The final window is truncated to the remaining duration. A zero
// duration yields no windows.
func planWindows(totalMs, segmentLenMs int64) ([]span, error) {
	if segmentLenMs <= 0 {
		return nil, fmt.Errorf("segment length must be positive, got %dms", segmentLenMs)
	}
	if totalMs <= 0 {
		return nil, nil
	}

	var windows []span
	for start := int64(0); start < totalMs; start += segmentLenMs {
		end := start + segmentLenMs
		if end > totalMs {
			end = totalMs
		}
		windows = append(windows, span{StartMs: start, EndMs: end})
	}

	return windows, nil
}
