// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Position options
	startFEN  = flag.String("fen", "", "Start from this FEN position (default: initial position)")
	batchFile = flag.String("batch", "", "Analyse one position per line from this file")
	workers   = flag.Int("workers", 0, "Batch worker count (0 = one per CPU)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("json", false, "Output reports in JSON format")
	noBoard    = flag.Bool("noboard", false, "Don't print the board with text reports")
	listMoves  = flag.Bool("moves", false, "List every legal destination of the side to move")
	verify     = flag.Bool("verify", false, "Compare each report with the reference move generator")

	// Diagram options
	svgFile     = flag.String("svg", "", "Write an SVG diagram of the final position")
	pngFile     = flag.String("png", "", "Write a PNG diagram of the final position")
	diagramSize = flag.Int("size", config.DefaultDiagramSize, "Diagram size in pixels")
	noHighlight = flag.Bool("nohighlight", false, "Don't mark allowable squares on diagrams")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Leave repeated batch positions out of the reports")
	exactDuplicates    = flag.Bool("exactdups", false, "Only count a repeat reached after the same number of plies")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum positions remembered for duplicate detection (0 = unlimited)")

	// Archive options
	archiveDir = flag.String("db", "", "Archive played games in this directory")
	listGames  = flag.Bool("list", false, "List archived games and exit")

	// Logging
	logFile = flag.String("l", "", "Write log messages to this file")
	quiet   = flag.Bool("s", false, "Silent mode: no log messages")
	verbose = flag.Bool("v", false, "Log each move as it is played")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyPositionFlags(cfg)
	applyOutputFlags(cfg)
	applyDiagramFlags(cfg)
	applyDuplicateFlags(cfg)
	applyStorageFlags(cfg)
	applyVerbosityFlags(cfg)
}

// applyPositionFlags configures the start position and batch workers.
func applyPositionFlags(cfg *config.Config) {
	cfg.StartFEN = *startFEN
	cfg.Workers = *workers
}

// applyOutputFlags configures report output settings.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.ShowBoard = !*noBoard
	cfg.Output.ShowMoves = *listMoves
	cfg.Output.Filename = *outputFile
	cfg.Verify = *verify
}

// applyDiagramFlags configures diagram output.
func applyDiagramFlags(cfg *config.Config) {
	cfg.Diagram.SVGFile = *svgFile
	cfg.Diagram.PNGFile = *pngFile
	cfg.Diagram.Size = *diagramSize
	cfg.Diagram.Highlight = !*noHighlight
}

// applyDuplicateFlags configures duplicate position detection.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates
	cfg.Duplicate.ExactMatch = *exactDuplicates
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}

// applyStorageFlags configures the game archive.
func applyStorageFlags(cfg *config.Config) {
	cfg.Storage.Dir = *archiveDir
	cfg.Storage.List = *listGames
}

// applyVerbosityFlags sets the verbosity level. Silent mode wins over -v.
func applyVerbosityFlags(cfg *config.Config) {
	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}
