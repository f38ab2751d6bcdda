package main

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/storage"
)

// listArchive prints one line per archived game followed by the totals.
func listArchive(cfg *config.Config) error {
	archive, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer archive.Close() //nolint:errcheck // nothing was written

	games, err := archive.ListGames()
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Fprintln(cfg.OutputFile, formatRecord(g))
	}

	stats, err := archive.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(cfg.OutputFile, "%d game(s): %d won by White, %d won by Black, %d unfinished, %d plies.\n",
		stats.Games, stats.WhiteWins, stats.BlackWins, stats.Unfinished, stats.TotalPlies)
	return nil
}

// formatRecord renders an archived game as a single line.
func formatRecord(g *storage.GameRecord) string {
	result := "*"
	if g.Winner != "" {
		result = g.Winner + " wins"
	}
	return fmt.Sprintf("%d\t%s\t%d plies\t%s\t%s",
		g.ID, g.SavedAt.Format("2006-01-02 15:04"), g.Plies(), result, g.FinalFEN)
}
