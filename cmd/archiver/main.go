// Command archiver runs the Telegram chat archiver: it long-polls updates,
// normalizes and indexes them into an embedded badger store, and serves a
// browsable HTML/JSON render of the archive over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rezograf/chatvault/internal/config"
	"github.com/rezograf/chatvault/internal/imagesniff"
	"github.com/rezograf/chatvault/internal/ingest"
	"github.com/rezograf/chatvault/internal/normalize"
	"github.com/rezograf/chatvault/internal/render"
	"github.com/rezograf/chatvault/internal/store"
	"github.com/rezograf/chatvault/internal/supervisor"
	"github.com/rezograf/chatvault/internal/telegram"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("archiver: load config")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("archiver: exited")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	adapter, err := telegram.New(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}

	pipeline := &normalize.MediaPipeline{
		Resolver: adapter,
		Store:    db,
		Sniffer:  imagesniff.Default{},
		Ceiling:  cfg.MediaSizeCeiling,
	}

	worker := &ingest.Worker{
		Adapter:  adapter,
		Store:    db,
		Pipeline: pipeline,
		Log:      log.With().Str("component", "ingest").Logger(),
	}

	renderServer := &render.Server{
		Store: db,
		Log:   log.With().Str("component", "render").Logger(),
	}
	router := render.NewRouter(renderServer)

	sup := supervisor.New(cfg.RestartDelay, log.With().Str("component", "supervisor").Logger())
	sup.Add("ingest", worker.Run)
	sup.Add("http", func(ctx context.Context) error {
		srv := &http.Server{Addr: cfg.BindAddr, Handler: router}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		select {
		case <-ctx.Done():
			return srv.Shutdown(context.Background())
		case err := <-errCh:
			return err
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("bind_addr", cfg.BindAddr).Str("db_path", cfg.DBPath).Msg("archiver: starting")
	return sup.Run(ctx)
}
