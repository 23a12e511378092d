package watcher

import "context"

// Watcher monitors a drop folder for new media files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly dropped media file.
type EventHandler func(ctx context.Context, filePath string) error
