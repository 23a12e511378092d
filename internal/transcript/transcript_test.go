package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		name     string
		fragment Fragment
		want     string
	}{
		{"first minute", Fragment{StartMs: 0, EndMs: 60000}, "[00:00 - 01:00]"},
		{"second minute", Fragment{StartMs: 60000, EndMs: 120000}, "[01:00 - 02:00]"},
		{"truncated tail", Fragment{StartMs: 120000, EndMs: 125000}, "[02:00 - 02:05]"},
		{"sub-second floored", Fragment{StartMs: 1999, EndMs: 2999}, "[00:01 - 00:02]"},
		{"over an hour", Fragment{StartMs: 3723000, EndMs: 3784000}, "[62:03 - 63:04]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fragment.Header(); got != tt.want {
				t.Errorf("Header() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReassemble(t *testing.T) {
	fragments := []Fragment{
		{StartMs: 0, EndMs: 60000, Text: "first part"},
		{StartMs: 60000, EndMs: 120000, Text: "second part"},
		{StartMs: 120000, EndMs: 125000, Text: "tail"},
	}

	want := "[00:00 - 01:00]\nfirst part\n" +
		"[01:00 - 02:00]\nsecond part\n" +
		"[02:00 - 02:05]\ntail\n"

	if got := Reassemble(fragments); got != want {
		t.Errorf("Reassemble() = %q, want %q", got, want)
	}
}

func TestReassembleIdempotent(t *testing.T) {
	fragments := []Fragment{
		{StartMs: 0, EndMs: 45000, Text: "hello"},
		{StartMs: 45000, EndMs: 90000, Text: "world"},
	}

	first := Reassemble(fragments)
	second := Reassemble(fragments)
	if first != second {
		t.Errorf("Reassemble() is not idempotent: %q vs %q", first, second)
	}
}

func TestReassembleEmpty(t *testing.T) {
	if got := Reassemble(nil); got != "" {
		t.Errorf("Reassemble(nil) = %q, want empty string", got)
	}
}

func TestReassemblePreservesOrder(t *testing.T) {
	// Fragments are emitted in chronological order by the segmenter;
	// reassembly must not reorder them even if they arrive shuffled.
	fragments := []Fragment{
		{StartMs: 60000, EndMs: 120000, Text: "b"},
		{StartMs: 0, EndMs: 60000, Text: "a"},
	}

	want := "[01:00 - 02:00]\nb\n[00:00 - 01:00]\na\n"
	if got := Reassemble(fragments); got != want {
		t.Errorf("Reassemble() = %q, want input order preserved", got)
	}
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	fragments := []Fragment{
		{StartMs: 0, EndMs: 60000, Text: "hello"},
		{StartMs: 60000, EndMs: 65000, Text: "world"},
	}

	if err := WriteDocx("Test Transcript", fragments, path); err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}
