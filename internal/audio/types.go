package audio

// Track is an extracted audio file with a known total duration.
type Track struct {
	Path       string
	DurationMs int64
}

// Segment is a time-addressed slice of a track. StartMs/EndMs are
// positions on the original track's timeline, with
// 0 <= StartMs < EndMs <= DurationMs. Segments emitted by Split are
// contiguous and ordered by StartMs.
type Segment struct {
	Path    string
	StartMs int64
	EndMs   int64
}
