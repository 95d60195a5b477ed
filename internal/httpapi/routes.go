package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/werewolf-table/internal/archive"
	"github.com/DoyleJ11/werewolf-table/internal/table"
)

type Options struct {
	Table        *table.Table
	Archive      archive.Repository
	Logger       *zap.Logger
	OutboxSize   int
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.OutboxSize <= 0 {
		o.OutboxSize = 8
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 3 * time.Second
	}
	return o
}

func SetupRoutes(opts Options) http.Handler {
	opts = opts.withDefaults()
	logger := opts.Logger.Named("httpapi")

	r := chi.NewRouter()
	r.Get("/healthz", Healthz)
	r.Get("/snapshot", GetSnapshot(opts.Table))
	r.Get("/ws", Stream(opts.Table, opts.OutboxSize, opts.WriteTimeout, logger))
	r.Post("/commands", PostCommand(opts.Table, logger))

	r.Get("/replay/summary", CurrentReplaySummary(opts.Table))
	r.Route("/replays", func(r chi.Router) {
		r.Get("/", ListReplays(opts.Archive))
		r.Get("/{id}", GetReplaySummary(opts.Archive))
		r.Post("/{id}/load", LoadReplay(opts.Table, opts.Archive))
	})
	return r
}
