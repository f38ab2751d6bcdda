// Package storage archives finished and abandoned games in BadgerDB.
package storage

import (
	"encoding/binary"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Storage keys
var (
	keyGameSeq    = []byte("seq:games")
	keyGamePrefix = []byte("game:")
)

// seqBandwidth is how many ids the sequence leases at a time.
const seqBandwidth = 16

// GameRecord is an archived game.
type GameRecord struct {
	ID        uint64    `json:"id"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	FinalFEN  string    `json:"final_fen"`
	Winner    string    `json:"winner,omitempty"`
	Checkmate bool      `json:"checkmate"`
	SavedAt   time.Time `json:"saved_at"`
}

// Plies returns the number of moves played.
func (r *GameRecord) Plies() int {
	return len(r.Moves)
}

// RecordFromGame captures a game's moves and result.
func RecordFromGame(g *engine.Game, startFEN string) *GameRecord {
	if startFEN == "" {
		startFEN = engine.InitialFEN
	}
	rec := &GameRecord{
		StartFEN: startFEN,
		FinalFEN: g.FEN(),
	}
	for _, m := range g.History() {
		rec.Moves = append(rec.Moves, m.String())
	}
	if outcome, over := g.Outcome(); over {
		rec.Winner = outcome.Winner.String()
		rec.Checkmate = true
	}
	return rec
}

// ArchiveStats summarises the archive.
type ArchiveStats struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Unfinished int
	TotalPlies int
}

// Archive wraps BadgerDB for persistent game storage
type Archive struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens the archive described by cfg.
func Open(cfg config.StorageConfig) (*Archive, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("no archive directory: %w", errors.ErrInvalidConfig)
	}

	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", cfg.Dir)
	}

	seq, err := db.GetSequence(keyGameSeq, seqBandwidth)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "game id sequence")
	}

	return &Archive{db: db, seq: seq}, nil
}

// Close releases the id sequence and closes the database
func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	seqErr := a.seq.Release()
	if err := a.db.Close(); err != nil {
		return err
	}
	return seqErr
}

// SaveGame stores rec under a fresh id, which is set on rec and returned.
func (a *Archive) SaveGame(rec *GameRecord) (uint64, error) {
	next, err := a.seq.Next()
	if err != nil {
		return 0, errors.Wrap(err, "next game id")
	}
	rec.ID = next + 1 // ids start at 1
	rec.SavedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
	if err != nil {
		return 0, errors.Wrapf(err, "save game %d", rec.ID)
	}
	return rec.ID, nil
}

// LoadGame returns the game stored under id.
func (a *Archive) LoadGame(id uint64) (*GameRecord, error) {
	rec := &GameRecord{}

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("game %d: %w", id, errors.ErrGameNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteGame removes a stored game.
func (a *Archive) DeleteGame(id uint64) error {
	if _, err := a.LoadGame(id); err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns every stored game in id order.
func (a *Archive) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyGamePrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(keyGamePrefix); it.ValidForPrefix(keyGamePrefix); it.Next() {
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})

	return games, err
}

// Stats tallies results across the archive.
func (a *Archive) Stats() (*ArchiveStats, error) {
	games, err := a.ListGames()
	if err != nil {
		return nil, err
	}

	stats := &ArchiveStats{Games: len(games)}
	for _, g := range games {
		stats.TotalPlies += g.Plies()
		switch g.Winner {
		case "White":
			stats.WhiteWins++
		case "Black":
			stats.BlackWins++
		default:
			stats.Unfinished++
		}
	}
	return stats, nil
}

// gameKey is the prefix followed by the big-endian id, so keys sort by id.
func gameKey(id uint64) []byte {
	key := make([]byte, len(keyGamePrefix)+8)
	copy(key, keyGamePrefix)
	binary.BigEndian.PutUint64(key[len(keyGamePrefix):], id)
	return key
}
