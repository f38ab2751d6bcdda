// Package config provides configuration for the chessrules tool.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// StartFEN is the position play starts from. Empty means the standard
	// starting position.
	StartFEN string

	// Verify adds the reference move generator's verdict to reports.
	Verify bool

	// Workers is the batch analysis pool size; 0 means one per CPU.
	Workers int

	Output    OutputConfig
	Diagram   DiagramConfig
	Storage   StorageConfig
	Duplicate DuplicateConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     *NewOutputConfig(),
		Diagram:    *NewDiagramConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// WorkerCount returns the number of batch workers to start.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return invalid("workers must not be negative, got %d", c.Workers)
	}
	if err := c.Diagram.Validate(); err != nil {
		return err
	}
	if err := c.Duplicate.Validate(); err != nil {
		return err
	}
	return c.Storage.Validate()
}

// Logf writes a log line when the configured verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity < level || c.LogFile == nil {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}
