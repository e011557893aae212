package trace

import "time"

// Kind says what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event
	KindHeartbeat // periodic liveness signal
)

var kindNames = map[Kind]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a whole command: one file or a batch
	ScopeFile                    // one input document
	ScopeStage                   // decode, normalize or encode of one document
	ScopeNode                    // dispatcher decisions, one per segment
)

var scopeNames = map[Scope]string{
	ScopeDriver: "driver",
	ScopeFile:   "file",
	ScopeStage:  "stage",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if n, ok := scopeNames[s]; ok {
		return n
	}
	return "unknown"
}

// Event is one trace record. Tracers restamp Seq when they store or write it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // zero for points and heartbeats
	ParentID uint64
	GID      uint64 // goroutine that emitted the event
	Name     string // "normalize_file", "decode", dispatch candidate ...
	Detail   string
	Extra    map[string]string
}
