package main

import (
	"io"
	"os"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/diagram"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/storage"
)

// newGame starts a game from fen, or from the initial position when fen is
// empty.
func newGame(fen string) (*engine.Game, error) {
	if fen == "" {
		return engine.NewGame(), nil
	}
	return engine.NewGameFromFEN(fen)
}

// playMoves plays coordinate moves from the configured start position. On a
// refused move the game is returned as it stood, with the error.
func playMoves(cfg *config.Config, moves []string) (*engine.Game, error) {
	g, err := newGame(cfg.StartFEN)
	if err != nil {
		return nil, err
	}
	g.OnGameOver(func(o engine.Outcome) {
		cfg.Logf(1, "%s is checkmated after %d plies. %s wins.\n", o.Loser, o.Ply, o.Winner)
	})

	for _, text := range moves {
		if err := g.Play(text); err != nil {
			return g, err
		}
		cfg.Logf(2, "%d. %s\n", len(g.History()), text)
	}
	return g, nil
}

// runPlay plays the moves, reports the final position, then draws and
// archives it as configured. When a move is refused the position before it is
// still reported and drawn, but not archived, and the move error is returned.
func runPlay(cfg *config.Config, moves []string) error {
	g, playErr := playMoves(cfg, moves)
	if g == nil {
		return playErr
	}

	report := output.NewPositionReport(g, cfg.Output.ShowMoves)
	if cfg.Verify {
		if err := report.CheckReference(); err != nil {
			return err
		}
		if !report.Reference.Agrees {
			cfg.Logf(1, "Reference move generator disagrees on %s\n", report.FEN)
		}
	}

	w := output.NewWriter(cfg.OutputFile, cfg)
	if err := w.WriteReport(report); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if err := writeDiagrams(cfg, report); err != nil {
		return err
	}
	if playErr != nil {
		return playErr
	}

	if cfg.Storage.Enabled() {
		if _, err := archiveGame(cfg, g); err != nil {
			return err
		}
	}
	return nil
}

// writeDiagrams writes the SVG and PNG diagrams of the report's position.
func writeDiagrams(cfg *config.Config, report *output.PositionReport) error {
	if !cfg.Diagram.Enabled() || report.Board() == nil {
		return nil
	}

	opts := diagram.Options{Size: cfg.Diagram.Size}
	if cfg.Diagram.Highlight {
		opts.Highlight = report.Highlight()
	}

	if cfg.Diagram.SVGFile != "" {
		err := writeFile(cfg.Diagram.SVGFile, func(w io.Writer) error {
			return diagram.WriteSVG(w, report.Board(), opts)
		})
		if err != nil {
			return err
		}
		cfg.Logf(1, "Wrote %s\n", cfg.Diagram.SVGFile)
	}

	if cfg.Diagram.PNGFile != "" {
		err := writeFile(cfg.Diagram.PNGFile, func(w io.Writer) error {
			return diagram.WritePNG(w, report.Board(), opts)
		})
		if err != nil {
			return err
		}
		cfg.Logf(1, "Wrote %s\n", cfg.Diagram.PNGFile)
	}
	return nil
}

// writeFile creates name and hands it to write.
func writeFile(name string, write func(io.Writer) error) error {
	file, err := os.Create(name) //nolint:gosec // G304: CLI tool writes user-specified files
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close() //nolint:errcheck,gosec // G104: the write error is reported
		return err
	}
	return file.Close()
}

// archiveGame saves the game to the configured archive.
func archiveGame(cfg *config.Config, g *engine.Game) (uint64, error) {
	archive, err := storage.Open(cfg.Storage)
	if err != nil {
		return 0, err
	}

	id, err := archive.SaveGame(storage.RecordFromGame(g, cfg.StartFEN))
	if closeErr := archive.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}
	cfg.Logf(1, "Saved game %d\n", id)
	return id, nil
}
