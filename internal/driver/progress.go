package driver

import "time"

// Stage describes one step of normalizing a file.
type Stage string

const (
	// StageLoad reads the document from disk.
	StageLoad Stage = "load"
	// StageDecode turns XML or JSON into a raw token tree.
	StageDecode Stage = "decode"
	// StageNormalize builds the normalized tree.
	StageNormalize Stage = "normalize"
	// StageEncode exports the tree into a document.
	StageEncode Stage = "encode"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is inside a stage.
	StatusWorking Status = "working"
	// StatusDone indicates the file was normalized.
	StatusDone Status = "done"
	// StatusCached indicates the result came from a cache.
	StatusCached Status = "cached"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole batch when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent use; batch workers emit from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
