package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/config"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/server"
	"github.com/tomz197/swarm/internal/transport/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
		Level:           config.GetEnvLevel("LOG_LEVEL", log.InfoLevel),
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	gameServer := server.NewServer(game.ParamsFromEnv(), server.Options{Logger: logger})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.Handle("/play", websocket.NewHandler(gameServer, websocket.HandlerOptions{Logger: logger}))

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting web server", "addr", "http://"+httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		gameServer.Shutdown(config.GetEnvDuration("SHUTDOWN_GRACE", 15*time.Second))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
