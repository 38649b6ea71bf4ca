package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/twitch-relay/broadcast"
	"github.com/marcelsud/twitch-relay/config"
	"github.com/marcelsud/twitch-relay/debug"
	"github.com/marcelsud/twitch-relay/events"
	"github.com/marcelsud/twitch-relay/eventsub"
	"github.com/marcelsud/twitch-relay/eventsub/helix"
	"github.com/marcelsud/twitch-relay/internal/http/chi"
	"github.com/marcelsud/twitch-relay/metrics"
)

const TIMEOUT = 30 * time.Second

/*
 * main wires every package: config, upstream client, broadcaster, catalog,
 * observers and router. Imports only go downwards.
 */

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := httplog.NewLogger("twitch-relay", httplog.Options{
		JSON: true,
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	catalog := events.Default()
	if cfg.EventsFile != "" {
		if err := catalog.Load(cfg.EventsFile); err != nil {
			return err
		}
	}

	api, err := helix.NewClient(context.Background(), helix.Config{
		ClientID:     cfg.TwitchClientID,
		ClientSecret: cfg.TwitchClientSecret,
		BaseURL:      cfg.TwitchAPIURL,
		TokenURL:     cfg.TwitchTokenURL,
	})
	if err != nil {
		return err
	}

	broadcaster, err := broadcast.New(cfg)
	if err != nil {
		return err
	}
	defer broadcaster.Close()

	exporter, err := metrics.NewOTelExporter()
	if err != nil {
		return err
	}
	defer exporter.Shutdown(context.Background())
	metricsObserver, err := exporter.Observer()
	if err != nil {
		return err
	}

	s := eventsub.NewService(api, broadcaster, catalog, cfg.WebhookSecret, cfg.TargetChannel)
	s.Observer = eventsub.Observers{
		debug.NewObserver(logger, broadcaster, cfg.DebugCallback),
		metricsObserver,
	}

	r := chi.Handlers(ctx, s, chi.Options{
		CallbackURL: cfg.CallbackURL,
		Metrics:     exporter.ServeHTTP(),
	})
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().
		Str("port", cfg.Port).
		Str("broadcast_driver", cfg.BroadcastDriver).
		Strs("event_types", catalog.Types()).
		Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	err = <-errShutdown
	if err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server: %w", err)
	}
}
