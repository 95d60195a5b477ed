// Package archive keeps finished games so they can be replayed later.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

var ErrNotFound = errors.New("replay not found")

// Source says where a recorded game came from.
type Source string

const (
	// SourceAuthority is a REPLAY_DATA sent by the authority.
	SourceAuthority Source = "authority"
	// SourceJournal is the client's own recording of a live game.
	SourceJournal Source = "journal"
)

type Record struct {
	ID         uuid.UUID
	Source     Source
	RecordedAt time.Time
	Replay     protocol.ReplayData
}

// NewRecord stamps a replay with a fresh id and the current time.
func NewRecord(source Source, replay protocol.ReplayData) Record {
	return Record{
		ID:         uuid.New(),
		Source:     source,
		RecordedAt: time.Now().UTC(),
		Replay:     replay,
	}
}

// Summary is the listing form of a Record.
type Summary struct {
	ID         uuid.UUID       `json:"id"`
	Source     Source          `json:"source"`
	RecordedAt time.Time       `json:"recordedAt"`
	Entries    int             `json:"entries"`
	Result     protocol.Result `json:"result,omitempty"`
}

func (r Record) Summary() Summary {
	return Summary{
		ID:         r.ID,
		Source:     r.Source,
		RecordedAt: r.RecordedAt,
		Entries:    len(r.Replay.Timeline),
		Result:     r.Replay.Result,
	}
}

type Repository interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	// List returns summaries, newest first.
	List(ctx context.Context) ([]Summary, error)
}
