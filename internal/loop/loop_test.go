package loop

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/game"
)

func TestRunQuits(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(strings.NewReader("q")), io.Discard, Options{
			Params:       game.DefaultParams(),
			Logger:       log.New(io.Discard),
			TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(pr), io.Discard, Options{
			Params:       game.DefaultParams(),
			Logger:       log.New(io.Discard),
			TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
