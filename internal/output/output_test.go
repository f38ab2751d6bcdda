package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func playGame(t *testing.T, moves ...string) *engine.Game {
	t.Helper()
	g := engine.NewGame()
	for _, m := range moves {
		if err := g.Play(m); err != nil {
			t.Fatalf("Play(%s) error: %v", m, err)
		}
	}
	return g
}

func TestBoardString(t *testing.T) {
	want := boardFrame +
		"8 | r n b q k b n r |\n" +
		"7 | p p p p p p p p |\n" +
		"6 | . . . . . . . . |\n" +
		"5 | . . . . . . . . |\n" +
		"4 | . . . . . . . . |\n" +
		"3 | * . . . . . . . |\n" +
		"2 | P P P P P P P P |\n" +
		"1 | R N B Q K B N R |\n" +
		boardFrame +
		"    a b c d e f g h\n"

	got := BoardString(chess.NewInitialBoard(), testutil.Squares("a3", "e2"))
	testutil.AssertEqual(t, got, want)
}

func TestNewPositionReport(t *testing.T) {
	t.Run("opening", func(t *testing.T) {
		r := NewPositionReport(playGame(t, "e2e4"), true)
		testutil.AssertEqual(t, r.Turn, "Black")
		testutil.AssertFalse(t, r.InCheck)
		testutil.AssertEqual(t, r.History, []string{"e2e4"})
		testutil.AssertEqual(t, len(r.Allowable), 0)
		testutil.AssertEqual(t, r.Legal["b8"], []string{"a6", "c6"})
		testutil.AssertEqual(t, r.Legal["e7"], []string{"e5", "e6"})
		testutil.AssertEqual(t, r.SideToMove(), chess.Black)
		testutil.AssertEqual(t, r.Plies(), 1)
		testutil.AssertEqual(t, len(r.Hash), 16)
		if _, ok := r.Legal["e8"]; ok {
			t.Error("king with no moves listed")
		}
	})

	t.Run("fool's mate", func(t *testing.T) {
		r := NewPositionReport(playGame(t, "f2f3", "e7e5", "g2g4", "d8h4"), false)
		testutil.AssertTrue(t, r.InCheck)
		testutil.AssertTrue(t, r.Checkmated)
		testutil.AssertEqual(t, r.Winner, "Black")
		testutil.AssertNil(t, r.Legal)
	})

	t.Run("check with a block", func(t *testing.T) {
		g, err := engine.NewGameFromFEN("k3r3/8/8/8/2R5/8/8/4K3 w - - 0 1")
		testutil.AssertNoError(t, err)
		r := NewPositionReport(g, false)
		testutil.AssertEqual(t, r.Allowable, []string{"d1", "f1", "d2", "f2", "e4"})
		testutil.AssertTrue(t, r.Highlight().Has(chess.MustSquare("e4")))
	})
}

func TestPositionReport_CheckReference(t *testing.T) {
	r := NewPositionReport(playGame(t, "f2f3", "e7e5", "g2g4", "d8h4"), false)
	testutil.AssertNoError(t, r.CheckReference())
	if r.Reference == nil {
		t.Fatal("Reference not set")
	}
	testutil.AssertTrue(t, r.Reference.Agrees)
	testutil.AssertTrue(t, r.Reference.Checkmated)
}

func TestPositionReport_Hash(t *testing.T) {
	// Same placement and side to move by different move orders.
	r1 := NewPositionReport(playGame(t, "g1f3", "g8f6", "b1c3"), false)
	r2 := NewPositionReport(playGame(t, "b1c3", "g8f6", "g1f3"), false)
	testutil.AssertEqual(t, r1.Hash, r2.Hash)

	r3 := NewPositionReport(playGame(t, "g1f3", "g8f6"), false)
	testutil.AssertTrue(t, r1.Hash != r3.Hash, "different positions share a hash")
}

// TestTextWriter_WriteReport verifies the text layout
func TestTextWriter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, false)

	r := NewPositionReport(playGame(t, "f2f3", "e7e5", "g2g4", "d8h4"), false)
	testutil.AssertNoError(t, w.WriteReport(r))
	testutil.AssertNoError(t, w.WriteReport(ErrorReport(1, "bad", errors.New("invalid FEN"))))
	testutil.AssertNoError(t, w.Close())

	out := buf.String()
	testutil.AssertContains(t, out, "Position 1: rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1")
	testutil.AssertContains(t, out, "Moves: f2f3 e7e5 g2g4 d8h4")
	testutil.AssertContains(t, out, "White to move, checkmated. Black wins.")
	testutil.AssertContains(t, out, "Position 2: bad\nError: invalid FEN")
	if strings.Contains(out, "Repeats an earlier position") {
		t.Error("position marked as repeated")
	}
	if strings.Contains(out, "+---") {
		t.Error("board drawn with showBoard off")
	}
}

// TestJSONWriter_Batch verifies batched JSON output is a single array
func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithJSONOutput(true).Build()
	w := NewWriter(&buf, cfg)

	for i, moves := range [][]string{{"e2e4"}, {"d2d4", "d7d5"}} {
		r := NewPositionReport(playGame(t, moves...), false)
		r.Index = i
		testutil.AssertNoError(t, w.WriteReport(r))
	}
	if buf.Len() != 0 {
		t.Error("batch writer wrote before Close")
	}
	testutil.AssertNoError(t, w.Close())

	var got JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	testutil.AssertEqual(t, len(got.Positions), 2)
	testutil.AssertEqual(t, got.Positions[1].Index, 1)
	testutil.AssertEqual(t, got.Positions[1].Turn, "White")
	testutil.AssertEqual(t, got.Positions[1].History, []string{"d2d4", "d7d5"})
}

// TestJSONWriter_Single verifies each report is written immediately
func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriterSingle(&buf)
	testutil.AssertNoError(t, w.WriteReport(NewPositionReport(engine.NewGame(), false)))

	out := buf.String()
	testutil.AssertContains(t, out, `"fen": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"`)
	testutil.AssertContains(t, out, `"checkmated": false`)
	if strings.Contains(out, `"allowable"`) {
		t.Error("allowable written when not in check")
	}
}

func TestNewWriter_Text(t *testing.T) {
	if _, ok := NewWriter(&bytes.Buffer{}, config.NewConfig()).(*TextWriter); !ok {
		t.Error("default config should give a TextWriter")
	}
}
