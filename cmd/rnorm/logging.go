package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// log is the CLI logger; replaced by setupLogging before any command runs.
var log = logrus.New()

func setupLogging(cmd *cobra.Command) (*logrus.Logger, error) {
	levelStr, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	logger, err := newLogger(levelStr, quiet, useColor(cmd, os.Stderr))
	if err != nil {
		return nil, err
	}
	logger.SetOutput(cmd.ErrOrStderr())
	log = logger
	return logger, nil
}

// newLogger builds a text logger. --quiet caps the level at errors.
func newLogger(levelStr string, quiet, color bool) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if quiet && level > logrus.ErrorLevel {
		level = logrus.ErrorLevel
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      color,
		DisableColors:    !color,
	})
	return logger, nil
}
