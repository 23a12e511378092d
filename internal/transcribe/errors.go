package transcribe

import "fmt"

// Error is a transcription failure with a human-readable cause. It
// covers network errors, quota/auth rejections and unsupported formats
// alike; callers only need the message and, in segmented mode, the
// ability to record it and move on.
type Error struct {
	Cause string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("transcription failed: %s", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Err
}
