package main

import (
	"fmt"
	"io"

	"rnorm/internal/observ"
)

func printTimings(out io.Writer, report *observ.Report) {
	if out == nil || report == nil || len(report.Phases) == 0 {
		return
	}
	if _, err := fmt.Fprint(out, report.Summary()); err != nil {
		log.WithError(err).Warn("failed to print timings")
	}
}
