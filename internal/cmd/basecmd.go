package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/flags"
	"github.com/baseconv/baseconv/internal/perms"
)

// LoggerName is the root name used for every logger created by baseconv commands.
const LoggerName = "baseconv"

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command, creating it from the global flags on first use.
// Logs are discarded unless a log path is configured.
func (c *BaseCmd) Logger() (hclog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	logLevel := strings.ToLower(strings.TrimSpace(flags.LogLevel))
	if logLevel == "" {
		logLevel = flags.DefaultLogLevel
	}
	level := hclog.LevelFromString(logLevel)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: '%s'", flags.LogLevel)
	}

	var output io.Writer = io.Discard
	if logPath := strings.TrimSpace(flags.LogPath); logPath != "" {
		f, err := openLogFile(logPath)
		if err != nil {
			return nil, err
		}
		output = f
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   LoggerName,
		Level:  level,
		Output: output,
	})

	return c.logger, nil
}

// openLogFile opens path for appending, creating it and its parent directory when missing.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, perms.RegularDir); err != nil {
			return nil, fmt.Errorf("failed to create log directory (%s): %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file (%s): %w", path, err)
	}

	return f, nil
}
