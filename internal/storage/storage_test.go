package storage

import (
	"path/filepath"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func openMemory(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(config.StorageConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return a
}

func playedGame(t *testing.T, moves ...string) *engine.Game {
	t.Helper()
	g := engine.NewGame()
	for _, m := range moves {
		if err := g.Play(m); err != nil {
			t.Fatalf("Play(%s) error: %v", m, err)
		}
	}
	return g
}

func TestRecordFromGame(t *testing.T) {
	rec := RecordFromGame(playedGame(t, "f2f3", "e7e5", "g2g4", "d8h4"), "")

	testutil.AssertEqual(t, rec.StartFEN, engine.InitialFEN)
	testutil.AssertEqual(t, rec.Moves, []string{"f2f3", "e7e5", "g2g4", "d8h4"})
	testutil.AssertEqual(t, rec.Plies(), 4)
	testutil.AssertEqual(t, rec.Winner, "Black")
	testutil.AssertTrue(t, rec.Checkmate)
	testutil.AssertEqual(t, rec.FinalFEN, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1")
}

func TestArchive_SaveLoad(t *testing.T) {
	a := openMemory(t)

	rec := RecordFromGame(playedGame(t, "e2e4", "e7e5"), "")
	id, err := a.SaveGame(rec)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, id, uint64(1))
	testutil.AssertEqual(t, rec.ID, id)

	got, err := a.LoadGame(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Moves, rec.Moves)
	testutil.AssertEqual(t, got.FinalFEN, rec.FinalFEN)
	testutil.AssertFalse(t, got.Checkmate)
	testutil.AssertTrue(t, got.SavedAt.Equal(rec.SavedAt))
}

func TestArchive_LoadMissing(t *testing.T) {
	a := openMemory(t)
	_, err := a.LoadGame(42)
	testutil.AssertErrorIs(t, err, errors.ErrGameNotFound)
	testutil.AssertErrorIs(t, a.DeleteGame(42), errors.ErrGameNotFound)
}

func TestArchive_ListAndStats(t *testing.T) {
	a := openMemory(t)

	games := [][]string{
		{"f2f3", "e7e5", "g2g4", "d8h4"},
		{"e2e4"},
		{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"},
	}
	for _, moves := range games {
		if _, err := a.SaveGame(RecordFromGame(playedGame(t, moves...), "")); err != nil {
			t.Fatalf("SaveGame() error: %v", err)
		}
	}

	list, err := a.ListGames()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(list), 3)
	for i, rec := range list {
		testutil.AssertEqual(t, rec.ID, uint64(i+1), "id order")
		testutil.AssertEqual(t, rec.Moves, games[i])
	}

	stats, err := a.Stats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *stats, ArchiveStats{
		Games:      3,
		WhiteWins:  1,
		BlackWins:  1,
		Unfinished: 1,
		TotalPlies: 12,
	})

	testutil.AssertNoError(t, a.DeleteGame(2))
	list, err = a.ListGames()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(list), 2)
}

func TestArchive_ReopenKeepsGames(t *testing.T) {
	cfg := config.StorageConfig{Dir: filepath.Join(t.TempDir(), "games")}

	a, err := Open(cfg)
	testutil.AssertNoError(t, err)
	id, err := a.SaveGame(RecordFromGame(playedGame(t, "d2d4"), ""))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, a.Close())

	a, err = Open(cfg)
	testutil.AssertNoError(t, err)
	defer a.Close()

	rec, err := a.LoadGame(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Moves, []string{"d2d4"})

	next, err := a.SaveGame(RecordFromGame(playedGame(t), ""))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, next > id, "ids are not reused after reopening")
}

func TestOpen_Disabled(t *testing.T) {
	_, err := Open(config.StorageConfig{})
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestGameKeyOrder(t *testing.T) {
	testutil.AssertTrue(t, string(gameKey(2)) < string(gameKey(10)))
	testutil.AssertTrue(t, string(gameKey(255)) < string(gameKey(256)))
}
