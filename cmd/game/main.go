package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/config"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop"
	"golang.org/x/term"
)

func main() {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := game.ParamsFromEnv()
	logger.Info("starting local game", "seed", params.Seed, "maxDifficulty", params.MaxDifficulty)

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.Options{Params: params, Logger: logger})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to LOG_FILE when set. The terminal belongs to the game,
// so logging is discarded otherwise.
func newLogger() (*log.Logger, func(), error) {
	path := config.GetEnv("LOG_FILE", "")
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           config.GetEnvLevel("LOG_LEVEL", log.InfoLevel),
	})
	return logger, func() { _ = f.Close() }, nil
}
