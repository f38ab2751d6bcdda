package config

import "strings"

// Diagram sizes in pixels.
const (
	MinDiagramSize     = 64
	MaxDiagramSize     = 2048
	DefaultDiagramSize = 480
)

// DiagramConfig holds settings for board diagrams.
type DiagramConfig struct {
	SVGFile string
	PNGFile string

	// Size is the edge length of the rendered board in pixels.
	Size int

	// Highlight marks the side to move's allowable squares.
	Highlight bool
}

// NewDiagramConfig creates a DiagramConfig with default values.
func NewDiagramConfig() *DiagramConfig {
	return &DiagramConfig{
		Size:      DefaultDiagramSize,
		Highlight: true,
	}
}

// Enabled reports whether any diagram output was requested.
func (d *DiagramConfig) Enabled() bool {
	return d.SVGFile != "" || d.PNGFile != ""
}

// Validate checks that the diagram configuration is valid.
func (d *DiagramConfig) Validate() error {
	if d.Size < MinDiagramSize || d.Size > MaxDiagramSize {
		return invalid("diagram size %d outside %d-%d", d.Size, MinDiagramSize, MaxDiagramSize)
	}
	if d.SVGFile != "" && !strings.HasSuffix(strings.ToLower(d.SVGFile), ".svg") {
		return invalid("SVG diagram %q must end in .svg", d.SVGFile)
	}
	if d.PNGFile != "" && !strings.HasSuffix(strings.ToLower(d.PNGFile), ".png") {
		return invalid("PNG diagram %q must end in .png", d.PNGFile)
	}
	return nil
}
