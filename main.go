package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/cliparse"
	"github.com/danielhkuo/reviewhub/router"
	"github.com/danielhkuo/reviewhub/session"
	"github.com/danielhkuo/reviewhub/tokenstore"
)

func main() {
	// Local development convenience; real environment variables win.
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	tokens, err := tokenstore.Open(cfg.TokenDBPath)
	if err != nil {
		slog.Error("token store unavailable", "error", err)
		os.Exit(1)
	}
	defer tokens.Close()

	cred := &backend.Credential{}
	api := backend.New(cfg.BackendURL, cred, cfg.BackendTimeout)
	sess := session.New(api, tokens, cred)

	// Rehydrate the session from the persisted token, if any.
	if err := sess.Restore(context.Background()); err != nil {
		slog.Warn("session restore failed", "error", err)
	}

	mux := router.NewRouter(api, sess)

	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port, "backend", cfg.BackendURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
