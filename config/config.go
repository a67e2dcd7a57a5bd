// Package config holds the resolved server settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexandro/contextai-mcp/fulltext"
)

// WorkspaceEnv names the environment variable that supplies the default root.
const WorkspaceEnv = "WORKSPACE_PATH"

// LogFileName is the default log file created in the workspace root.
const LogFileName = "contextai-mcp.log"

// Config is the server configuration after flag parsing.
type Config struct {
	RootDir         string
	Excludes        []string
	LogLevel        string
	LogFile         string
	Watch           bool
	FulltextWorkers int
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		LogLevel:        "info",
		FulltextWorkers: fulltext.DefaultWorkers,
	}
}

// Resolve fills in the root directory (from WorkspaceEnv, else the working
// directory), makes it absolute and derives the default log file.
func (c *Config) Resolve(getenv func(string) string) error {
	if c.RootDir == "" {
		c.RootDir = getenv(WorkspaceEnv)
	}
	if c.RootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		c.RootDir = wd
	}

	abs, err := filepath.Abs(c.RootDir)
	if err != nil {
		return fmt.Errorf("resolving root %s: %w", c.RootDir, err)
	}
	c.RootDir = abs

	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.RootDir, LogFileName)
	}
	return nil
}

// Validate checks that the root is an existing directory and that the
// remaining settings are in range.
func (c Config) Validate() error {
	var errs []error

	info, err := os.Stat(c.RootDir)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("root %s: %w", c.RootDir, err))
	case !info.IsDir():
		errs = append(errs, fmt.Errorf("root %s is not a directory", c.RootDir))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.FulltextWorkers < 1 {
		errs = append(errs, fmt.Errorf("fulltext workers must be at least 1, got %d", c.FulltextWorkers))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", level)
}
