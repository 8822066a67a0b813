package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"blockfall/client"
	"blockfall/highscore"
	"blockfall/tetris"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h"
)

func main() {
	scoresPath := flag.String("scores", "highscores.pb", "high score file, a .txt file is read and written as plain text")
	logPath := flag.String("log", "blockfall.log", "log file")
	debugLog := flag.Bool("debug", false, "log at debug level")
	noGhost := flag.Bool("no-ghost", false, "disable the ghost piece")
	bag := flag.Bool("bag", false, "deal shapes from a shuffled bag instead of uniformly at random")
	tick := flag.Duration("tick", tetris.DefaultConfig().TickDuration, "duration of a game tick")
	flag.Parse()

	cfg := tetris.DefaultConfig()
	cfg.TickDuration = *tick
	if *bag {
		cfg.Randomizer = tetris.RandomBag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	level := slog.LevelInfo
	if *debugLog {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level}))

	var store highscore.Store = &highscore.FileStore{Path: *scoresPath}
	if filepath.Ext(*scoresPath) == ".txt" {
		store = &highscore.TextStore{Path: *scoresPath}
	}
	board := highscore.NewBoard(store, logger)

	game := tetris.NewGame(cfg, &tetris.Options{Logger: logger, ScoreBoard: board})
	cl, err := client.New(game, cfg, logger, &client.Options{NoGhost: *noGhost, Scores: board})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// a crash would leave the terminal in raw mode.
	defer func() {
		if r := recover(); r != nil {
			cl.Close() //nolint: errcheck
			fmt.Print(showCursor)
			logger.Error("crashed", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBLOCKFALL CRASHED: %v\x1b[0m\n", r)
			os.Exit(1)
		}
	}()

	fmt.Print(hideCursor)
	start := time.Now()
	cl.Start()
	if err := cl.Close(); err != nil {
		logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
	fmt.Print(showCursor)
	logger.Info("bye", slog.Duration("uptime", time.Since(start)))
}
