// Package trace provides a tracing subsystem for the normalizer and its driver.
//
// It records pipeline phases, per-file work and, at the most detailed level,
// the shape dispatcher's decisions. This is the "diagnostics sink" the
// normalizer writes to; it never prints on its own.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	rnorm batch --trace=- --trace-level=detail ./trees
//
// # Architecture
//
//   - Nop: discards events when tracing is off
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the latest events for a failure dump
//   - LogTracer: forwards events to a logrus logger
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Commands and files
//   - LevelDetail: Decode, normalize and encode of each file
//   - LevelDebug: Everything including dispatch decisions
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "normalize_file")
//	defer span.End("")
//
// In ring mode the CLI dumps the buffered events to stderr when a command
// fails, so a quiet run still leaves a record of what led to the failure.
package trace
