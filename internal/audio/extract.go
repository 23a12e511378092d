package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Extract converts the audio stream of a media file to 16kHz mono WAV.
// This format keeps files small and is what speech models expect.
func (p *implProcessor) Extract(ctx context.Context, mediaPath, dir string) (Track, error) {
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	audioPath := filepath.Join(dir, base+"_audio.wav")

	p.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return Track{}, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	durationMs, err := p.probeDurationMs(ctx, audioPath)
	if err != nil {
		return Track{}, fmt.Errorf("probe duration: %w", err)
	}

	p.logger.Info(ctx, "Audio extracted: %s (%dms)", audioPath, durationMs)
	return Track{Path: audioPath, DurationMs: durationMs}, nil
}

// ffprobeOutput defines the structure for ffprobe JSON output.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probeDurationMs returns the duration of an audio file in milliseconds.
func (p *implProcessor) probeDurationMs(ctx context.Context, audioPath string) (int64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		audioPath,
	}

	out, err := p.executor.Execute(ctx, p.cfg.FFmpeg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probeData ffprobeOutput
	if err := json.Unmarshal([]byte(out), &probeData); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if probeData.Format.Duration == "" {
		return 0, fmt.Errorf("duration not found in ffprobe output for %s", audioPath)
	}

	seconds, err := strconv.ParseFloat(probeData.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probeData.Format.Duration, err)
	}

	return int64(seconds * 1000), nil
}
