package main

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// saveRestoreBool sets a bool flag and returns a func that restores it.
// Usage: defer saveRestoreBool(jsonOutput, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyFlags_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	applyFlags(cfg)

	want := config.NewConfig()
	testutil.AssertEqual(t, cfg.Output, want.Output)
	testutil.AssertEqual(t, cfg.Diagram, want.Diagram)
	testutil.AssertEqual(t, cfg.Storage, want.Storage)
	testutil.AssertEqual(t, cfg.Duplicate, want.Duplicate)
	testutil.AssertEqual(t, cfg.Verbosity, want.Verbosity)
	testutil.AssertEqual(t, cfg.StartFEN, "")
	testutil.AssertFalse(t, cfg.Verify)
	testutil.AssertNoError(t, cfg.Validate())
}

func TestApplyPositionFlags(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K3 b - - 0 1"
	defer saveRestoreString(startFEN, fen)()
	defer saveRestoreInt(workers, 3)()

	cfg := config.NewConfig()
	applyPositionFlags(cfg)
	testutil.AssertEqual(t, cfg.StartFEN, fen)
	testutil.AssertEqual(t, cfg.WorkerCount(), 3)
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	defer saveRestoreBool(noBoard, true)()
	defer saveRestoreBool(listMoves, true)()
	defer saveRestoreBool(verify, true)()
	defer saveRestoreString(outputFile, "report.txt")()

	cfg := config.NewConfig()
	applyOutputFlags(cfg)
	testutil.AssertEqual(t, cfg.Output, config.OutputConfig{
		JSONFormat: true,
		ShowBoard:  false,
		ShowMoves:  true,
		Filename:   "report.txt",
	})
	testutil.AssertTrue(t, cfg.Verify)
}

func TestApplyDiagramFlags(t *testing.T) {
	defer saveRestoreString(svgFile, "board.svg")()
	defer saveRestoreString(pngFile, "board.png")()
	defer saveRestoreInt(diagramSize, 256)()
	defer saveRestoreBool(noHighlight, true)()

	cfg := config.NewConfig()
	applyDiagramFlags(cfg)
	testutil.AssertEqual(t, cfg.Diagram, config.DiagramConfig{
		SVGFile:   "board.svg",
		PNGFile:   "board.png",
		Size:      256,
		Highlight: false,
	})
	testutil.AssertNoError(t, cfg.Validate())
}

func TestApplyDuplicateFlags(t *testing.T) {
	defer saveRestoreBool(suppressDuplicates, true)()
	defer saveRestoreBool(exactDuplicates, true)()
	defer saveRestoreInt(duplicateCapacity, 1000)()

	cfg := config.NewConfig()
	applyDuplicateFlags(cfg)
	testutil.AssertEqual(t, cfg.Duplicate, config.DuplicateConfig{
		Suppress:    true,
		ExactMatch:  true,
		MaxCapacity: 1000,
	})
}

func TestApplyStorageFlags(t *testing.T) {
	t.Run("archive and list", func(t *testing.T) {
		defer saveRestoreString(archiveDir, "games")()
		defer saveRestoreBool(listGames, true)()

		cfg := config.NewConfig()
		applyStorageFlags(cfg)
		testutil.AssertEqual(t, cfg.Storage, config.StorageConfig{Dir: "games", List: true})
		testutil.AssertNoError(t, cfg.Validate())
	})

	t.Run("list without archive is invalid", func(t *testing.T) {
		defer saveRestoreBool(listGames, true)()

		cfg := config.NewConfig()
		applyStorageFlags(cfg)
		testutil.AssertError(t, cfg.Validate())
	})
}

func TestApplyVerbosityFlags(t *testing.T) {
	tests := []struct {
		name    string
		quiet   bool
		verbose bool
		want    int
	}{
		{"default", false, false, 1},
		{"verbose", false, true, 2},
		{"quiet", true, false, 0},
		{"quiet wins", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreBool(quiet, tt.quiet)()
			defer saveRestoreBool(verbose, tt.verbose)()

			cfg := config.NewConfig()
			applyVerbosityFlags(cfg)
			testutil.AssertEqual(t, cfg.Verbosity, tt.want)
		})
	}
}
