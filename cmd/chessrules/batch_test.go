package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/storage"
	"github.com/lgbarn/chessrules-go/internal/testutil"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

const (
	initialFEN   = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	fileCheckFEN = "k3r3/8/8/8/2R5/8/8/4K3 w - - 0 1"
)

func TestSplitBatchLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantFEN   string
		wantMoves []string
	}{
		{"fen only", initialFEN, initialFEN, nil},
		{"fen and moves", initialFEN + " moves e2e4 e7e5", initialFEN, []string{"e2e4", "e7e5"}},
		{"keyword without moves", initialFEN + " moves", initialFEN, nil},
		{"extra spaces", "  4k3/8/8/8/8/8/8/4K3   w  moves  e1e2 ", "4k3/8/8/8/8/8/8/4K3 w", []string{"e1e2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fen, moves := splitBatchLine(tt.line)
			testutil.AssertEqual(t, fen, tt.wantFEN)
			testutil.AssertEqual(t, moves, tt.wantMoves)
		})
	}
}

func TestReadBatch(t *testing.T) {
	input := `# positions
` + initialFEN + `

` + initialFEN + ` moves e2e4
  # indented comment
` + fileCheckFEN + `
`
	items, err := readBatch(strings.NewReader(input))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, items, []worker.WorkItem{
		{FEN: initialFEN, Index: 0, Line: 2},
		{FEN: initialFEN, Moves: []string{"e2e4"}, Index: 1, Line: 4},
		{FEN: fileCheckFEN, Index: 2, Line: 6},
	})
}

func TestAnalyseItem(t *testing.T) {
	cfg := testConfig(&bytes.Buffer{}, &bytes.Buffer{}).WithMoveListing(true).Build()
	analyse := analyseItem(cfg)

	t.Run("report", func(t *testing.T) {
		res := analyse(worker.WorkItem{FEN: initialFEN, Moves: []string{"g1f3"}, Index: 4, Line: 9})
		testutil.AssertNoError(t, res.Error)
		testutil.AssertEqual(t, [2]int{res.Index, res.Line}, [2]int{4, 9})

		report, ok := res.Report.(*output.PositionReport)
		testutil.AssertTrue(t, ok, "report type %T", res.Report)
		testutil.AssertEqual(t, report.Index, 4)
		testutil.AssertEqual(t, report.Turn, "Black")
		testutil.AssertEqual(t, report.Legal["b8"], []string{"a6", "c6"})
	})

	t.Run("invalid FEN", func(t *testing.T) {
		res := analyse(worker.WorkItem{FEN: "not a fen"})
		testutil.AssertErrorIs(t, res.Error, errors.ErrInvalidFEN)
		testutil.AssertNil(t, res.Report)
	})

	t.Run("illegal move", func(t *testing.T) {
		res := analyse(worker.WorkItem{FEN: initialFEN, Moves: []string{"e2e5"}})
		testutil.AssertErrorIs(t, res.Error, errors.ErrIllegalMove)
		testutil.AssertNil(t, res.Report)
	})
}

func TestRunBatch(t *testing.T) {
	input := strings.Join([]string{
		initialFEN,
		initialFEN + " moves f2f3 e7e5 g2g4 d8h4",
		"not a fen",
		fileCheckFEN,
	}, "\n")

	var out, log bytes.Buffer
	cfg := testConfig(&out, &log).WithWorkers(2).WithVerify(true).Build()
	cfg.Output.ShowBoard = false

	summary, err := runBatch(context.Background(), cfg, strings.NewReader(input), "positions.txt")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary, batchSummary{
		Positions:  4,
		InCheck:    2,
		Checkmated: 1,
		Errors:     1,
	})

	text := out.String()
	testutil.AssertContains(t, text, "Position 3: not a fen\nError: ")
	testutil.AssertContains(t, text, "White to move, checkmated. Black wins.\n")
	testutil.AssertContains(t, text, "Reference agrees: 20 legal moves, check=false, mate=false\n")
	for i := 1; i < 4; i++ {
		prev := strings.Index(text, fmt.Sprintf("Position %d:", i))
		next := strings.Index(text, fmt.Sprintf("Position %d:", i+1))
		testutil.AssertTrue(t, prev >= 0 && prev < next, "position %d out of order", i+1)
	}

	testutil.AssertContains(t, log.String(), "positions.txt:3: ")
}

func TestRunBatch_Duplicates(t *testing.T) {
	input := strings.Join([]string{
		initialFEN,
		initialFEN + " moves g1f3 g8f6 f3g1 f6g8",
		fileCheckFEN,
	}, "\n")

	tests := []struct {
		name     string
		suppress bool
		exact    bool
		wantDups int
		wantOut  int
	}{
		{"marked", false, false, 1, 3},
		{"suppressed", true, false, 1, 2},
		{"exact ply count", true, true, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, log bytes.Buffer
			cfg := testConfig(&out, &log).WithWorkers(2).WithDuplicateSuppression(tt.suppress).Build()
			cfg.Duplicate.ExactMatch = tt.exact
			cfg.Output.ShowBoard = false

			summary, err := runBatch(context.Background(), cfg, strings.NewReader(input), "positions.txt")
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, summary.Positions, 3)
			testutil.AssertEqual(t, summary.Duplicates, tt.wantDups)
			testutil.AssertEqual(t, strings.Count(out.String(), "Position "), tt.wantOut)
			if tt.wantDups > 0 && !tt.suppress {
				testutil.AssertContains(t, out.String(), "Repeats an earlier position.\n")
			}
		})
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	var out, log bytes.Buffer
	cfg := testConfig(&out, &log).WithWorkers(1).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := strings.Repeat(initialFEN+"\n", 50)
	_, err := runBatch(ctx, cfg, strings.NewReader(input), "positions.txt")
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestFormatRecord(t *testing.T) {
	rec := &storage.GameRecord{
		ID:       3,
		Moves:    []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		FinalFEN: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1",
		Winner:   "Black",
		SavedAt:  time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	testutil.AssertEqual(t, formatRecord(rec),
		"3\t2026-01-02 15:04\t4 plies\tBlack wins\trnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1")

	rec.Winner = ""
	testutil.AssertContains(t, formatRecord(rec), "\t4 plies\t*\t")
}
