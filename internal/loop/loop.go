// Package loop runs a single local game: a session runner and a terminal
// client wired together in one process.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/draw"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/client"
	"github.com/tomz197/swarm/internal/loop/server"
	"golang.org/x/sync/errgroup"
)

// Options configures a local game.
type Options struct {
	Params       game.Params
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
}

// Run plays one local session, reading keys from r and drawing to w. It
// returns when the player quits or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := server.NewRunner(game.NewSession(opts.Params), server.RunnerOptions{Logger: opts.Logger})
	c := client.NewClient(runner, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Logger:       opts.Logger,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(ctx)
	})
	g.Go(func() error {
		// The runner stops with the client.
		defer cancel()
		return c.Run(ctx)
	})
	return g.Wait()
}
