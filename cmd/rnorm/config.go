package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"rnorm/internal/trace"
)

const configFileName = "rnorm.toml"

type fileConfig struct {
	Normalize normalizeConfig `toml:"normalize"`
	Batch     batchConfig     `toml:"batch"`
	Trace     traceConfig     `toml:"trace"`
	Log       logConfig       `toml:"log"`
}

type normalizeConfig struct {
	MaxDepth       int `toml:"max_depth"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type batchConfig struct {
	Jobs      int      `toml:"jobs"`
	Include   []string `toml:"include"`
	Cache     bool     `toml:"cache"`
	CacheSize int      `toml:"cache_size"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type logConfig struct {
	Level string `toml:"level"`
}

// configSetting ties a key of rnorm.toml to the flag it provides a default for.
type configSetting struct {
	key   []string
	flag  string
	value func(*fileConfig) string
}

var configSettings = []configSetting{
	{[]string{"normalize", "max_depth"}, "max-depth", func(c *fileConfig) string { return strconv.Itoa(c.Normalize.MaxDepth) }},
	{[]string{"normalize", "max_diagnostics"}, "max-diagnostics", func(c *fileConfig) string { return strconv.Itoa(c.Normalize.MaxDiagnostics) }},
	{[]string{"batch", "jobs"}, "jobs", func(c *fileConfig) string { return strconv.Itoa(c.Batch.Jobs) }},
	{[]string{"batch", "include"}, "include", func(c *fileConfig) string { return strings.Join(c.Batch.Include, ",") }},
	{[]string{"batch", "cache"}, "cache", func(c *fileConfig) string { return strconv.FormatBool(c.Batch.Cache) }},
	{[]string{"batch", "cache_size"}, "cache-size", func(c *fileConfig) string { return strconv.Itoa(c.Batch.CacheSize) }},
	{[]string{"trace", "level"}, "trace-level", func(c *fileConfig) string { return c.Trace.Level }},
	{[]string{"trace", "mode"}, "trace-mode", func(c *fileConfig) string { return c.Trace.Mode }},
	{[]string{"trace", "output"}, "trace", func(c *fileConfig) string { return c.Trace.Output }},
	{[]string{"log", "level"}, "log-level", func(c *fileConfig) string { return c.Log.Level }},
}

// findConfig ищет rnorm.toml, поднимаясь от startDir к корню.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig parses and validates a config file. It returns the settings
// that the file actually defines.
func loadConfig(path string) (map[string]string, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("normalize", "max_depth") && cfg.Normalize.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: [normalize].max_depth must be positive", path)
	}
	if meta.IsDefined("batch", "jobs") && cfg.Batch.Jobs < 0 {
		return nil, fmt.Errorf("%s: [batch].jobs must not be negative", path)
	}
	if meta.IsDefined("batch", "cache_size") && cfg.Batch.CacheSize <= 0 {
		return nil, fmt.Errorf("%s: [batch].cache_size must be positive", path)
	}
	if meta.IsDefined("batch", "include") && len(cfg.Batch.Include) == 0 {
		return nil, fmt.Errorf("%s: [batch].include must not be empty", path)
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return nil, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}

	values := make(map[string]string, len(configSettings))
	for _, s := range configSettings {
		if meta.IsDefined(s.key...) {
			values[s.flag] = s.value(&cfg)
		}
	}
	return values, nil
}

// applyConfig loads rnorm.toml (from --config or found by search) and uses
// its values for every flag the command line left unset.
func applyConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return err
		}
		path = found
	}
	values, err := loadConfig(path)
	if err != nil {
		return err
	}
	return setUnchanged(cmd, values)
}

func setUnchanged(cmd *cobra.Command, values map[string]string) error {
	for _, s := range configSettings {
		value, ok := values[s.flag]
		if !ok {
			continue
		}
		// флаг может отсутствовать у этой команды (например, jobs вне batch)
		f := cmd.Flags().Lookup(s.flag)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("%s: invalid value for %s: %w", configFileName, strings.Join(s.key, "."), err)
		}
	}
	return nil
}
