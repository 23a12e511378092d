package audio

import "context"

// Processor defines the ffmpeg-backed audio operations used by the pipeline.
type Processor interface {
	// Extract pulls the audio track out of a media file as 16kHz mono WAV
	// and probes its duration.
	Extract(ctx context.Context, mediaPath, dir string) (Track, error)

	// StripSilence removes low-energy intervals from the track. A fully
	// silent input yields an empty (zero duration) track. On failure the
	// original track is returned alongside the error so callers can keep
	// going with the unmodified audio.
	StripSilence(ctx context.Context, track Track, dir string) (Track, error)

	// Split partitions the track into fixed-length contiguous segments.
	// The final segment is truncated to the remaining duration. A zero
	// duration track produces no segments.
	Split(ctx context.Context, track Track, segmentLenMs int64, dir string) ([]Segment, error)
}
