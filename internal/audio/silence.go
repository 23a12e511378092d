package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// span is a half-open interval [StartMs, EndMs) on the track timeline.
type span struct {
	StartMs int64
	EndMs   int64
}

var (
	reSilenceStart = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	reSilenceEnd   = regexp.MustCompile(`silence_end:\s*([\d.]+)`)
)

// StripSilence removes detected silence from the track and concatenates
// the remaining audio in original order. Each retained chunk keeps
// PaddingMs of surrounding silence so speech is not clipped at the
// edges. A track that is silent end to end becomes an empty track.
// On any detection or re-encode failure the original track is returned
// together with the error; the caller decides whether to keep going.
func (p *implProcessor) StripSilence(ctx context.Context, track Track, dir string) (Track, error) {
	if track.DurationMs == 0 {
		return track, nil
	}

	silences, err := p.detectSilences(ctx, track.Path)
	if err != nil {
		return track, fmt.Errorf("silence detection: %w", err)
	}

	if len(silences) == 0 {
		p.logger.Debug(ctx, "No silence detected in %s", track.Path)
		return track, nil
	}

	keep := keepSpans(silences, track.DurationMs, p.cfg.Silence.PaddingMs)
	if len(keep) == 0 {
		p.logger.Info(ctx, "Track is fully silent: %s", track.Path)
		return Track{DurationMs: 0}, nil
	}

	base := strings.TrimSuffix(filepath.Base(track.Path), filepath.Ext(track.Path))
	outPath := filepath.Join(dir, base+"_condensed.wav")

	args := []string{
		"-i", track.Path,
		"-filter_complex", trimFilter(keep),
		"-map", "[out]",
		"-c:a", "pcm_s16le",
		"-y",
		outPath,
	}
	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return track, fmt.Errorf("ffmpeg trim silence: %w", err)
	}

	var keptMs int64
	for _, s := range keep {
		keptMs += s.EndMs - s.StartMs
	}

	p.logger.Info(ctx, "Silence stripped: %s %dms -> %dms", track.Path, track.DurationMs, keptMs)
	return Track{Path: outPath, DurationMs: keptMs}, nil
}

// detectSilences runs ffmpeg silencedetect and parses its stderr report.
func (p *implProcessor) detectSilences(ctx context.Context, audioPath string) ([]span, error) {
	args := []string{
		"-i", audioPath,
		"-af", fmt.Sprintf("silencedetect=noise=%ddB:d=%.3f",
			p.cfg.Silence.ThresholdDB,
			float64(p.cfg.Silence.MinSilenceMs)/1000),
		"-f", "null",
		"-",
	}

	out, err := p.executor.CombinedOutput(ctx, p.cfg.FFmpeg.BinaryPath, args...)
	if err != nil && out == "" {
		return nil, err
	}

	return parseSilenceOutput(out), nil
}

// parseSilenceOutput extracts silence intervals from silencedetect lines:
//
//	[silencedetect @ 0x...] silence_start: 42.123
//	[silencedetect @ 0x...] silence_end: 43.456 | silence_duration: 1.333
//
// A trailing silence_start without a matching silence_end means the file
// ends silent; the interval is left open and closed by keepSpans.
func parseSilenceOutput(output string) []span {
	var silences []span
	var currentStart int64
	hasStart := false

	for _, line := range strings.Split(output, "\n") {
		if m := reSilenceStart.FindStringSubmatch(line); m != nil {
			if seconds, err := strconv.ParseFloat(m[1], 64); err == nil {
				currentStart = secToMs(seconds)
				hasStart = true
			}
		}
		if m := reSilenceEnd.FindStringSubmatch(line); m != nil && hasStart {
			if seconds, err := strconv.ParseFloat(m[1], 64); err == nil {
				silences = append(silences, span{StartMs: currentStart, EndMs: secToMs(seconds)})
				hasStart = false
			}
		}
	}

	if hasStart {
		// Open interval, runs to end of file. EndMs is patched by keepSpans.
		silences = append(silences, span{StartMs: currentStart, EndMs: -1})
	}

	return silences
}

// keepSpans computes the non-silent intervals of a track, each widened
// by paddingMs on both sides and merged where padding makes neighbours
// touch. An empty result means the whole track is silence.
func keepSpans(silences []span, totalMs, paddingMs int64) []span {
	// Complement of the silences: the non-silent chunks.
	var chunks []span
	var cursor int64
	for _, s := range silences {
		end := s.EndMs
		if end < 0 || end > totalMs {
			end = totalMs
		}
		if s.StartMs > cursor {
			chunks = append(chunks, span{StartMs: cursor, EndMs: s.StartMs})
		}
		if end > cursor {
			cursor = end
		}
	}
	if cursor < totalMs {
		chunks = append(chunks, span{StartMs: cursor, EndMs: totalMs})
	}

	if len(chunks) == 0 {
		return nil
	}

	// Pad each chunk, clamped to the track, then merge overlaps.
	var kept []span
	for _, c := range chunks {
		start := c.StartMs - paddingMs
		if start < 0 {
			start = 0
		}
		end := c.EndMs + paddingMs
		if end > totalMs {
			end = totalMs
		}
		if n := len(kept); n > 0 && start <= kept[n-1].EndMs {
			if end > kept[n-1].EndMs {
				kept[n-1].EndMs = end
			}
			continue
		}
		kept = append(kept, span{StartMs: start, EndMs: end})
	}

	return kept
}

// trimFilter builds an atrim/concat filtergraph that cuts the given
// spans out of the input and joins them back to back.
func trimFilter(keep []span) string {
	var b strings.Builder
	for i, s := range keep {
		fmt.Fprintf(&b, "[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a%d];",
			msToSec(s.StartMs), msToSec(s.EndMs), i)
	}
	if len(keep) == 1 {
		// Single span, no concat needed; rename the trim output.
		return strings.Replace(b.String(), "[a0];", "[out]", 1)
	}
	for i := range keep {
		fmt.Fprintf(&b, "[a%d]", i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=0:a=1[out]", len(keep))
	return b.String()
}

func msToSec(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

func secToMs(sec float64) int64 {
	return int64(sec * 1000)
}
