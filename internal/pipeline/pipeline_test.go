package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcribe-web/internal/audio"
	"github.com/nguyentantai21042004/transcribe-web/internal/config"
	"github.com/nguyentantai21042004/transcribe-web/internal/logger"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcribe"
)

// stubAudio returns canned tracks and segments without touching ffmpeg.
type stubAudio struct {
	track      audio.Track
	stripped   *audio.Track
	stripErr   error
	segments   []audio.Segment
	extractErr error
	extracts   int
}

func (s *stubAudio) Extract(ctx context.Context, mediaPath, dir string) (audio.Track, error) {
	s.extracts++
	return s.track, s.extractErr
}

func (s *stubAudio) StripSilence(ctx context.Context, track audio.Track, dir string) (audio.Track, error) {
	if s.stripErr != nil {
		return track, s.stripErr
	}
	if s.stripped != nil {
		return *s.stripped, nil
	}
	return track, nil
}

func (s *stubAudio) Split(ctx context.Context, track audio.Track, segmentLenMs int64, dir string) ([]audio.Segment, error) {
	return s.segments, nil
}

// stubTranscriber returns text per path, failing the paths in failOn.
type stubTranscriber struct {
	calls  []string
	failOn map[string]bool
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	s.calls = append(s.calls, audioPath)
	if s.failOn[audioPath] {
		return "", &transcribe.Error{Cause: "quota exceeded"}
	}
	return "text of " + audioPath, nil
}

func testPipeline(t *testing.T, ap audio.Processor, tr transcribe.Transcriber, creds config.Credentials) Pipeline {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.Temp = t.TempDir()
	factory := func(apiKey string) transcribe.Transcriber { return tr }
	return New(cfg, creds, ap, factory, logger.New("error"))
}

func TestRunWrongAdminToken(t *testing.T) {
	ap := &stubAudio{track: audio.Track{Path: "a.wav", DurationMs: 60000}}
	tr := &stubTranscriber{}
	p := testPipeline(t, ap, tr, config.Credentials{AdminToken: "secret123", BackendAPIKey: "sk-backend"})

	_, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "#wrongtoken"})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
	if ap.extracts != 0 {
		t.Error("audio was processed despite bad credential")
	}
	if len(tr.calls) != 0 {
		t.Error("transcription was attempted despite bad credential")
	}
}

func TestRunAdminTokenUsesBackendKey(t *testing.T) {
	ap := &stubAudio{track: audio.Track{Path: "a.wav", DurationMs: 60000}}
	tr := &stubTranscriber{}

	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.Temp = t.TempDir()

	var usedKey string
	factory := func(apiKey string) transcribe.Transcriber {
		usedKey = apiKey
		return tr
	}
	p := New(cfg, config.Credentials{AdminToken: "secret123", BackendAPIKey: "sk-backend"},
		ap, factory, logger.New("error"))

	if _, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "#secret123"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if usedKey != "sk-backend" {
		t.Errorf("used key %q, want backend key", usedKey)
	}
}

func TestRunMissingKey(t *testing.T) {
	p := testPipeline(t, &stubAudio{}, &stubTranscriber{}, config.Credentials{})

	_, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "   "})
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("error = %v, want ErrMissingKey", err)
	}
}

func TestRunTokenWithoutConfiguredAdmin(t *testing.T) {
	// Absent admin token makes admin login impossible.
	p := testPipeline(t, &stubAudio{}, &stubTranscriber{}, config.Credentials{BackendAPIKey: "sk-backend"})

	_, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "#anything"})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}

func TestRunWholeFile(t *testing.T) {
	ap := &stubAudio{track: audio.Track{Path: "a.wav", DurationMs: 90000}}
	tr := &stubTranscriber{}
	p := testPipeline(t, ap, tr, config.Credentials{})

	res, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "sk-user"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Text != "text of a.wav" {
		t.Errorf("Text = %q", res.Text)
	}
	if res.Segmented {
		t.Error("Segmented = true for whole-file run")
	}
	if len(res.Fragments) != 1 || res.Fragments[0].EndMs != 90000 {
		t.Errorf("Fragments = %v, want one covering the track", res.Fragments)
	}
}

func TestRunWholeFileFailureIsFatal(t *testing.T) {
	ap := &stubAudio{track: audio.Track{Path: "a.wav", DurationMs: 90000}}
	tr := &stubTranscriber{failOn: map[string]bool{"a.wav": true}}
	p := testPipeline(t, ap, tr, config.Credentials{})

	_, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "sk-user"})
	var terr *transcribe.Error
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *transcribe.Error", err)
	}
}

func TestRunSegmentedPartialFailure(t *testing.T) {
	ap := &stubAudio{
		track: audio.Track{Path: "a.wav", DurationMs: 125000},
		segments: []audio.Segment{
			{Path: "seg0.wav", StartMs: 0, EndMs: 60000},
			{Path: "seg1.wav", StartMs: 60000, EndMs: 120000},
			{Path: "seg2.wav", StartMs: 120000, EndMs: 125000},
		},
	}
	tr := &stubTranscriber{failOn: map[string]bool{"seg1.wav": true}}
	p := testPipeline(t, ap, tr, config.Credentials{})

	var progress []string
	res, err := p.Run(context.Background(), Request{
		InputPath:      "in.mp4",
		KeyInput:       "sk-user",
		Segment:        true,
		SegmentMinutes: 1,
		Progress: func(completed, total int) {
			progress = append(progress, fmt.Sprintf("%d/%d", completed, total))
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(res.Fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(res.Fragments))
	}
	if res.Fragments[0].StartMs != 0 || res.Fragments[1].StartMs != 120000 {
		t.Errorf("fragments out of order or wrong: %v", res.Fragments)
	}
	if len(res.SegmentErrors) != 1 {
		t.Fatalf("got %d segment errors, want 1", len(res.SegmentErrors))
	}
	if res.SegmentErrors[0].StartMs != 60000 {
		t.Errorf("recorded error for wrong segment: %v", res.SegmentErrors[0])
	}

	if !strings.Contains(res.Text, "[00:00 - 01:00]") || !strings.Contains(res.Text, "[02:00 - 02:05]") {
		t.Errorf("Text missing surviving headers: %q", res.Text)
	}
	if strings.Contains(res.Text, "[01:00 - 02:00]") {
		t.Errorf("Text contains header of failed segment: %q", res.Text)
	}

	wantProgress := []string{"1/3", "2/3", "3/3"}
	if len(progress) != len(wantProgress) {
		t.Fatalf("progress = %v, want %v", progress, wantProgress)
	}
	for i := range progress {
		if progress[i] != wantProgress[i] {
			t.Errorf("progress[%d] = %s, want %s", i, progress[i], wantProgress[i])
		}
	}
}

func TestRunSegmentMinutesValidation(t *testing.T) {
	p := testPipeline(t, &stubAudio{}, &stubTranscriber{}, config.Credentials{})

	for _, minutes := range []int{0, -1, 11} {
		_, err := p.Run(context.Background(), Request{
			InputPath: "in.mp4", KeyInput: "sk-user", Segment: true, SegmentMinutes: minutes,
		})
		if err == nil {
			t.Errorf("Run() accepted segment_minutes=%d", minutes)
		}
	}
}

func TestRunCondenseFallbackOnStripError(t *testing.T) {
	ap := &stubAudio{
		track:    audio.Track{Path: "a.wav", DurationMs: 60000},
		stripErr: errors.New("decode error"),
	}
	tr := &stubTranscriber{}
	p := testPipeline(t, ap, tr, config.Credentials{})

	res, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "sk-user", Condense: true})
	if err != nil {
		t.Fatalf("Run() error = %v, stripping failure must not abort", err)
	}
	if res.Text != "text of a.wav" {
		t.Errorf("Text = %q, want transcription of original audio", res.Text)
	}
}

func TestRunFullySilentAfterCondense(t *testing.T) {
	empty := audio.Track{DurationMs: 0}
	ap := &stubAudio{
		track:    audio.Track{Path: "a.wav", DurationMs: 60000},
		stripped: &empty,
	}
	tr := &stubTranscriber{}
	p := testPipeline(t, ap, tr, config.Credentials{})

	res, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "sk-user", Condense: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty for fully silent audio", res.Text)
	}
	if len(tr.calls) != 0 {
		t.Errorf("transcriber called %d times for empty track", len(tr.calls))
	}
}

func TestRunCleansUpTempDir(t *testing.T) {
	ap := &stubAudio{track: audio.Track{Path: "a.wav", DurationMs: 60000}}
	tr := &stubTranscriber{failOn: map[string]bool{"a.wav": true}}

	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.Temp = t.TempDir()
	factory := func(apiKey string) transcribe.Transcriber { return tr }
	p := New(cfg, config.Credentials{}, ap, factory, logger.New("error"))

	// Failure path: the run dir must still be removed.
	if _, err := p.Run(context.Background(), Request{InputPath: "in.mp4", KeyInput: "sk-user"}); err == nil {
		t.Fatal("Run() should have failed")
	}

	entries, err := os.ReadDir(cfg.Paths.Temp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up, %d entries remain", len(entries))
	}
}
