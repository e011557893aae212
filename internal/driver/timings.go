package driver

import (
	"encoding/json"
	"fmt"

	"rnorm/internal/diag"
	"rnorm/internal/observ"
	"rnorm/internal/source"
)

// timingNote is the JSON carried in the note of a timing diagnostic.
type timingNote struct {
	Path   string `json:"path"`
	Cached bool   `json:"cached,omitempty"`
	observ.Report
}

// timingDiagnostic turns the stage timings of res into an OBS6001 info
// diagnostic. Machine-readable exports keep the JSON note; the CLI filters
// these out and prints a table instead.
func timingDiagnostic(res *Result) (diag.Diagnostic, error) {
	note, err := json.Marshal(timingNote{Path: res.Path, Cached: res.Cached, Report: *res.Timing})
	if err != nil {
		return diag.Diagnostic{}, err
	}
	rng := source.Range{File: res.FileID}
	msg := fmt.Sprintf("timings: total %.2f ms, %s", res.Timing.TotalMS, res.Path)
	return diag.New(diag.SevInfo, diag.ObsTimings, rng, msg).WithNote(rng, string(note)), nil
}

// addTimings appends the timing diagnostic even when the bag is already
// full.
func addTimings(res *Result) {
	d, err := timingDiagnostic(res)
	if err != nil || res.Bag.Add(d) {
		return
	}
	extra := diag.NewBag(1)
	extra.Add(d)
	res.Bag.Merge(extra)
}
