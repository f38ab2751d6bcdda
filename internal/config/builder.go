package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithJSONOutput enables JSON reports.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithMoveListing enables per-piece move listings.
func (b *ConfigBuilder) WithMoveListing(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowMoves = enabled
	return b
}

// WithVerify enables the reference verdict.
func (b *ConfigBuilder) WithVerify(enabled bool) *ConfigBuilder {
	b.cfg.Verify = enabled
	return b
}

// WithWorkers sets the batch pool size.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithDiagram sets the diagram outputs and size.
func (b *ConfigBuilder) WithDiagram(svgFile, pngFile string, size int) *ConfigBuilder {
	b.cfg.Diagram.SVGFile = svgFile
	b.cfg.Diagram.PNGFile = pngFile
	b.cfg.Diagram.Size = size
	return b
}

// WithDuplicateSuppression leaves repeated batch positions out of the reports.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	return b
}

// WithArchive sets the archive directory.
func (b *ConfigBuilder) WithArchive(dir string) *ConfigBuilder {
	b.cfg.Storage.Dir = dir
	return b
}

// WithInMemoryArchive keeps the archive in memory.
func (b *ConfigBuilder) WithInMemoryArchive() *ConfigBuilder {
	b.cfg.Storage.InMemory = true
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
