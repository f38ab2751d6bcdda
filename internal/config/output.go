package config

// OutputConfig holds settings related to report formatting.
type OutputConfig struct {
	// JSONFormat enables JSON reports instead of the text board
	JSONFormat bool

	// ShowBoard prints the ASCII board with each text report
	ShowBoard bool

	// ShowMoves lists every piece's fully legal destinations
	ShowMoves bool

	// Filename is where reports go; empty means standard output
	Filename string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowBoard: true,
	}
}

