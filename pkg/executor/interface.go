package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// CombinedOutput runs a command and returns stdout and stderr mixed.
	// ffmpeg writes stream info and filter reports to stderr, so callers
	// that parse that output need it even on a zero exit.
	CombinedOutput(ctx context.Context, name string, args ...string) (string, error)
}
