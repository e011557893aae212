// Package observ measures how long the pipeline stages of a file take.
package observ

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// Phase is one measured stage: load, decode, normalize or encode.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects the phases of one file. Not safe for concurrent use.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	p := &t.phases[idx]
	p.Dur, p.Note = time.Since(p.Start), note
	return p.Dur
}

func (t *Timer) Summary() string { return t.Report().Summary() }

// PhaseReport is the serialized form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is what a Timer measured, in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	for _, p := range t.phases {
		ms := millis(p.Dur)
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note})
		r.TotalMS += ms
	}
	return r
}

// Summary renders the report as a table ending in a total row.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, p := range r.Phases {
		note := ""
		if p.Note != "" {
			note = "// " + p.Note
		}
		fmt.Fprintf(tw, "  %s\t%.2f ms\t%s\t\n", p.Name, p.DurationMS, note)
	}
	fmt.Fprintf(tw, "  %s\t%.2f ms\t\t\n", "total", r.TotalMS)
	_ = tw.Flush()
	return b.String()
}

// Aggregate sums reports phase by phase in order of first appearance.
// Notes are dropped. Batch summaries use it.
func Aggregate(reports ...*Report) Report {
	var out Report
	pos := make(map[string]int, 4)
	for _, r := range reports {
		if r == nil {
			continue
		}
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, seen := pos[p.Name]
			if !seen {
				i = len(out.Phases)
				pos[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
		}
	}
	return out
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
