package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/werewolf-table/internal/archive"
	"github.com/DoyleJ11/werewolf-table/internal/config"
	"github.com/DoyleJ11/werewolf-table/internal/httpapi"
	"github.com/DoyleJ11/werewolf-table/internal/logging"
	"github.com/DoyleJ11/werewolf-table/internal/protocol"
	"github.com/DoyleJ11/werewolf-table/internal/table"
	"github.com/DoyleJ11/werewolf-table/internal/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeRepo()) }()

	g, ctx := errgroup.WithContext(ctx)

	writer := archive.NewWriter(repo, cfg.InboxSize, logger)
	g.Go(func() error { return writer.Run(ctx) })

	outbound := make(chan protocol.Action, cfg.OutboxSize)
	tb := table.NewTable(ctx, table.Options{
		Outbound:  outbound,
		Archive:   writer.Inbox(),
		Logger:    logger,
		InboxSize: cfg.InboxSize,
	})

	adapter, err := transport.Dial(ctx, cfg.AuthorityURL, transport.Options{
		Inbox:        tb.Inbox(),
		Outbound:     outbound,
		WriteTimeout: cfg.WriteTimeout,
		Logger:       logger,
	})
	if err != nil {
		stop()
		return multierr.Append(err, g.Wait())
	}
	g.Go(func() error { return adapter.Run(ctx) })

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: httpapi.SetupRoutes(httpapi.Options{
			Table:        tb,
			Archive:      repo,
			Logger:       logger,
			OutboxSize:   cfg.OutboxSize,
			WriteTimeout: cfg.WriteTimeout,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("authority", cfg.AuthorityURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openArchive picks postgres when a database url is configured and memory
// otherwise.
func openArchive(cfg config.Config, logger *zap.Logger) (archive.Repository, func() error, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("archiving replays in memory")
		return archive.NewMemoryRepository(), func() error { return nil }, nil
	}
	repo, err := archive.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return repo, repo.Close, nil
}
