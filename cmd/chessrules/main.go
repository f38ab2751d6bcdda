// chessrules plays chess moves under the rules engine and reports on the
// resulting positions: check, checkmate and the squares that answer a check.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chessrules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case cfg.Storage.List:
		err = listArchive(cfg)
	case *batchFile != "":
		err = runBatchFile(ctx, cfg, *batchFile)
	default:
		err = runPlay(cfg, flag.Args())
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}

	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if cfg.Output.Filename == "" {
		return
	}

	file, err := os.Create(cfg.Output.Filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", cfg.Output.Filename, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options] [moves...]\n\n")
	fmt.Fprintf(os.Stderr, "Plays coordinate moves (e2e4) from the start or -fen position and\n")
	fmt.Fprintf(os.Stderr, "reports check, checkmate and the squares that answer a check.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nBatch files (-batch):\n")
	fmt.Fprintf(os.Stderr, "  One FEN per line, optionally followed by \"moves e2e4 e7e5 ...\".\n")
	fmt.Fprintf(os.Stderr, "  Blank lines and lines starting with # are skipped.\n")
}
