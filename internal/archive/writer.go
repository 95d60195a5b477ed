package archive

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// Writer persists records handed to it off the caller's goroutine, so the
// table loop never waits on storage.
type Writer struct {
	repo   Repository
	inbox  chan Record
	logger *zap.Logger
}

func NewWriter(repo Repository, size int, logger *zap.Logger) *Writer {
	return &Writer{
		repo:   repo,
		inbox:  make(chan Record, size),
		logger: logger.Named("archive"),
	}
}

func (w *Writer) Inbox() chan<- Record { return w.inbox }

// Run saves records until ctx is done.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case rec := <-w.inbox:
			w.save(ctx, rec)
		}
	}
}

func (w *Writer) save(parent context.Context, rec Record) {
	ctx, cancel := context.WithTimeout(parent, saveTimeout)
	defer cancel()

	if err := w.repo.Save(ctx, rec); err != nil {
		w.logger.Error("save replay", zap.Stringer("id", rec.ID), zap.Error(err))
		return
	}
	w.logger.Info("replay archived",
		zap.Stringer("id", rec.ID),
		zap.String("source", string(rec.Source)),
		zap.Int("entries", len(rec.Replay.Timeline)))
}
