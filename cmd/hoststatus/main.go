package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"hoststatus/internal/config"
	"hoststatus/internal/logger"
	"hoststatus/internal/scheduler"
	"hoststatus/internal/status"
	"hoststatus/internal/storage/snapshot"
	"hoststatus/internal/transport/rest"
	"hoststatus/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, relying on system environment variables")
	}

	cfg := config.Load()

	mode := flag.String("mode", cfg.Mode, "serve, stream or snapshot")
	format := flag.String("format", cfg.OutputFormat, "snapshot output format: json or yaml")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-mode serve|stream|snapshot] [-format json|yaml] [collector ...]\n\ncollectors: %v\n\n", os.Args[0], status.Names)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.Mode = *mode
	cfg.OutputFormat = *format

	if err := cfg.Validate(); err != nil {
		log.Fatal("FATAL: ", err)
	}

	appLog := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := status.NewCollector(appLog,
		status.WithProcRoot(cfg.ProcRoot),
		status.WithTimeout(cfg.CollectTimeout),
		status.WithConcurrency(cfg.CollectConcurrency),
	)

	var err error
	switch cfg.Mode {
	case config.ModeSnapshot:
		err = runSnapshot(ctx, collector, flag.Args(), cfg.OutputFormat, os.Stdout)
	case config.ModeStream:
		err = runStream(ctx, cfg, collector, appLog)
	case config.ModeServe:
		err = runServe(ctx, cfg, collector, appLog)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		appLog.Error("hoststatus failed", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func runStream(ctx context.Context, cfg *config.Config, collector *status.Collector, log logger.Logger) error {
	enc := json.NewEncoder(os.Stdout)

	sched := scheduler.New(cfg.Interval, log, collector.All, func(snap status.Snapshot) {
		if err := enc.Encode(snap); err != nil {
			log.Error("failed to write snapshot", "error", err)
		}
	})

	log.Info("streaming snapshots", "interval", cfg.Interval)
	sched.Start(ctx)

	return nil
}

func runServe(ctx context.Context, cfg *config.Config, collector *status.Collector, log logger.Logger) error {
	store := snapshot.NewStatusStore()

	hub := websocket.NewHub(log, func(channel string) (*websocket.Event, bool) {
		if channel != websocket.ChannelStatus {
			return nil, false
		}
		snap, ok := store.Get()
		if !ok {
			return nil, false
		}
		return &websocket.Event{Channel: channel, Event: websocket.EventStatusUpdated, Payload: snap}, true
	})

	sched := scheduler.New(cfg.Interval, log, collector.All, func(snap status.Snapshot) {
		store.Set(snap)
		hub.Emit(websocket.ChannelStatus, websocket.EventStatusUpdated, snap)
	})

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, status endpoints are unauthenticated")
	}

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		Status: rest.NewStatusHandler(collector, store, log),
		WS:     websocket.NewHandler(hub, log, cfg).Serve,
		Log:    log,
	})
	srv := rest.NewServer(router, cfg.Address)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Websocket hub
	g.Go(func() error {
		hub.Run(gCtx)
		return nil
	})

	// 2. Periodic snapshots
	g.Go(func() error {
		sched.Start(gCtx)
		return nil
	})

	// 3. HTTP server
	g.Go(func() error {
		log.Info("starting http server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	err := g.Wait()
	log.Info("server stopped")
	return err
}
