package transcript

import (
	"fmt"
	"strings"
)

// Fragment is the transcribed text of one time range of the source audio.
type Fragment struct {
	StartMs int64
	EndMs   int64
	Text    string
}

// Header renders the fragment's time range as "[MM:SS - MM:SS]".
// Milliseconds are floored to whole seconds.
func (f Fragment) Header() string {
	return fmt.Sprintf("[%s - %s]", clock(f.StartMs), clock(f.EndMs))
}

// Reassemble joins fragments into one display document: a header line
// per fragment followed by its text. Fragments must already be in
// chronological order; no sorting happens here. An empty input yields
// an empty string.
func Reassemble(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Header())
		b.WriteString("\n")
		b.WriteString(f.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func clock(ms int64) string {
	totalSec := ms / 1000
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}
