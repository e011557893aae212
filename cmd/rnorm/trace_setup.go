package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rnorm/internal/trace"
)

type traceFlags struct {
	output    string
	level     trace.Level
	mode      trace.StorageMode
	ringSize  int
	heartbeat time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	var tf traceFlags
	flags := cmd.Flags()

	var levelStr, modeStr string
	var errs []error
	var err error
	tf.output, err = flags.GetString("trace")
	errs = append(errs, err)
	levelStr, err = flags.GetString("trace-level")
	errs = append(errs, err)
	modeStr, err = flags.GetString("trace-mode")
	errs = append(errs, err)
	tf.ringSize, err = flags.GetInt("trace-ring-size")
	errs = append(errs, err)
	tf.heartbeat, err = flags.GetDuration("trace-heartbeat")
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return tf, fmt.Errorf("failed to read trace flags: %w", err)
	}

	if tf.level, err = trace.ParseLevel(levelStr); err != nil {
		return tf, err
	}
	if tf.mode, err = trace.ParseMode(modeStr); err != nil {
		return tf, err
	}
	// an output without a level still means "trace something"
	if tf.level == trace.LevelOff && tf.output != "" {
		tf.level = trace.LevelPhase
	}
	// --trace без явного режима: пишем поток
	if tf.output != "" && !flags.Changed("trace-mode") && tf.mode == trace.ModeRing {
		tf.mode = trace.ModeStream
	}
	return tf, nil
}

// setupTracing installs the tracer selected by the --trace* flags into the
// command context. The returned cleanup stops the heartbeat, dumps the ring
// to stderr when the command failed and closes the tracer.
func setupTracing(cmd *cobra.Command, logger logrus.FieldLogger) (func(error), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	if tf.level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(error) {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      tf.level,
		Mode:       tf.mode,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
		Heartbeat:  tf.heartbeat,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	heartbeat := trace.StartHeartbeat(tracer, tf.heartbeat)

	return func(runErr error) {
		heartbeat.Stop()
		if runErr != nil {
			dumpRing(tracer, logger)
		}
		if err := tracer.Flush(); err != nil {
			logger.WithError(err).Warn("trace: flush failed")
		}
		if err := tracer.Close(); err != nil {
			logger.WithError(err).Warn("trace: close failed")
		}
	}, nil
}

// dumpRing writes buffered events of a ring-only tracer to stderr. With
// ModeBoth the events have already been streamed.
func dumpRing(tracer trace.Tracer, logger logrus.FieldLogger) {
	ring, ok := tracer.(*trace.RingTracer)
	if !ok || ring.Len() == 0 {
		return
	}
	if dropped := ring.Dropped(); dropped > 0 {
		logger.WithField("dropped", dropped).Warn("trace ring overflowed; oldest events lost")
	}
	fmt.Fprintf(os.Stderr, "--- last %d trace events ---\n", ring.Len())
	if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
		logger.WithError(err).Warn("trace: dump failed")
	}
}
