package driver

import (
	"time"

	"rnorm/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a stage has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	File    string
	Name    Stage
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted by NormalizeFile.
type PhaseObserver func(PhaseEvent)

// phaseRecorder fans stage boundaries out to the timer, the observer
// and the progress sink of one file.
type phaseRecorder struct {
	file     string
	timer    *observ.Timer
	observer PhaseObserver
	sink     ProgressSink
}

func newPhaseRecorder(file string, observer PhaseObserver, sink ProgressSink) *phaseRecorder {
	return &phaseRecorder{
		file:     file,
		timer:    observ.NewTimer(),
		observer: observer,
		sink:     sink,
	}
}

func (p *phaseRecorder) begin(stage Stage) int {
	idx := p.timer.Begin(string(stage))
	if p.observer != nil {
		p.observer(PhaseEvent{File: p.file, Name: stage, Status: PhaseStart})
	}
	emit(p.sink, Event{File: p.file, Stage: stage, Status: StatusWorking})
	return idx
}

func (p *phaseRecorder) end(idx int, stage Stage, note string) time.Duration {
	elapsed := p.timer.End(idx, note)
	if p.observer != nil {
		p.observer(PhaseEvent{File: p.file, Name: stage, Status: PhaseEnd, Elapsed: elapsed})
	}
	return elapsed
}

func (p *phaseRecorder) report() *observ.Report {
	r := p.timer.Report()
	return &r
}
