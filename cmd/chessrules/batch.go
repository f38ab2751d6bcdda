package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// batchSummary tallies a batch run.
type batchSummary struct {
	Positions     int
	InCheck       int
	Checkmated    int
	Errors        int
	Duplicates    int
	Disagreements int
}

// splitBatchLine splits a batch line into its FEN and the coordinate moves
// after the "moves" keyword.
func splitBatchLine(text string) (fen string, moves []string) {
	fields := strings.Fields(text)
	for i, f := range fields {
		if f != "moves" {
			continue
		}
		if rest := fields[i+1:]; len(rest) > 0 {
			moves = rest
		}
		return strings.Join(fields[:i], " "), moves
	}
	return strings.Join(fields, " "), nil
}

// readBatch reads work items from r. Blank lines and # comments are skipped.
func readBatch(r io.Reader) ([]worker.WorkItem, error) {
	var items []worker.WorkItem
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fen, moves := splitBatchLine(text)
		items = append(items, worker.WorkItem{FEN: fen, Moves: moves, Index: len(items), Line: line})
	}
	return items, scanner.Err()
}

// analyseItem returns the worker function for a batch run. Each call builds
// its own game, so workers share no board state.
func analyseItem(cfg *config.Config) worker.ProcessFunc {
	return func(item worker.WorkItem) worker.ProcessResult {
		result := worker.ProcessResult{Index: item.Index, Line: item.Line}

		g, err := engine.NewGameFromFEN(item.FEN)
		if err != nil {
			result.Error = err
			return result
		}
		for _, text := range item.Moves {
			if err := g.Play(text); err != nil {
				result.Error = err
				return result
			}
		}

		report := output.NewPositionReport(g, cfg.Output.ShowMoves)
		report.Index = item.Index
		if cfg.Verify {
			if err := report.CheckReference(); err != nil {
				result.Error = err
				return result
			}
		}
		result.Report = report
		return result
	}
}

// runBatch analyses every position in r on the worker pool and writes the
// reports in input order. Repeated positions are marked, or left out when
// duplicates are suppressed. name labels errors.
func runBatch(ctx context.Context, cfg *config.Config, r io.Reader, name string) (batchSummary, error) {
	var summary batchSummary

	items, err := readBatch(r)
	if err != nil {
		return summary, errors.Wrapf(err, "read %s", name)
	}
	cfg.Logf(2, "Analysing %d position(s) with %d worker(s)\n", len(items), cfg.WorkerCount())

	pool := worker.NewPool(analyseItem(cfg),
		worker.WithWorkers(cfg.WorkerCount()),
		worker.WithBufferSize(cfg.WorkerCount()*2))
	results := pool.Run(ctx, items)

	dups := hashing.NewDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity)
	w := output.NewWriter(cfg.OutputFile, cfg)
	for _, res := range results {
		summary.Positions++

		report, _ := res.Report.(*output.PositionReport)
		if res.Error != nil {
			lineErr := &errors.LineError{Err: res.Error, File: name, Line: res.Line}
			cfg.Logf(1, "%v\n", lineErr)
			report = output.ErrorReport(res.Index, items[res.Index].FEN, res.Error)
			summary.Errors++
		} else {
			if report.InCheck {
				summary.InCheck++
			}
			if report.Checkmated {
				summary.Checkmated++
			}
			if report.Reference != nil && !report.Reference.Agrees {
				cfg.Logf(1, "%s:%d: reference move generator disagrees\n", name, res.Line)
				summary.Disagreements++
			}

			report.Duplicate = dups.CheckAndAdd(report.Board(), report.SideToMove(), report.Plies())
			if report.Duplicate {
				summary.Duplicates++
				if cfg.Duplicate.Suppress {
					continue
				}
			}
		}

		if err := w.WriteReport(report); err != nil {
			return summary, err
		}
	}
	if err := w.Close(); err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// runBatchFile runs a batch from the named file and logs the totals.
func runBatchFile(ctx context.Context, cfg *config.Config, name string) error {
	file, err := os.Open(name) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck // read-only

	summary, err := runBatch(ctx, cfg, file, name)
	cfg.Logf(1, "%d position(s) analysed: %d in check, %d checkmated, %d repeated, %d error(s).\n",
		summary.Positions, summary.InCheck, summary.Checkmated, summary.Duplicates, summary.Errors)
	if cfg.Verify {
		cfg.Logf(1, "%d disagreement(s) with the reference move generator.\n", summary.Disagreements)
	}
	return err
}
