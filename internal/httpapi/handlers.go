package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/werewolf-table/internal/archive"
	"github.com/DoyleJ11/werewolf-table/internal/engine"
	"github.com/DoyleJ11/werewolf-table/internal/protocol"
	"github.com/DoyleJ11/werewolf-table/internal/table"
	"github.com/DoyleJ11/werewolf-table/internal/types"
)

var errBadCommand = errors.New("unknown command")

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func GetSnapshot(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := tb.View(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.ServerMessage{Type: "StateSnapshot", Version: view.Version, State: &view.State})
	}
}

func PostCommand(tb *table.Table, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cm types.ClientMessage
		if err := json.NewDecoder(r.Body).Decode(&cm); err != nil {
			writeJSON(w, http.StatusBadRequest, types.ServerMessage{Type: "Error", Error: "bad json"})
			return
		}
		cmd, ok := toCommand(cm)
		if !ok {
			writeError(w, errBadCommand)
			return
		}
		if err := tb.Do(r.Context(), cmd); err != nil {
			logger.Debug("command failed", zap.String("type", cm.Type), zap.Error(err))
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListReplays(repo archive.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := repo.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.ReplayList{Replays: summaries})
	}
}

func GetReplaySummary(repo archive.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchRecord(w, r, repo)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, summarize(rec.Replay.Result, rec.Replay.Reviews, rec.Replay.Timeline))
	}
}

func LoadReplay(tb *table.Table, repo archive.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchRecord(w, r, repo)
		if !ok {
			return
		}
		if err := tb.Load(r.Context(), rec.Replay); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CurrentReplaySummary describes the recorded game currently held by the table.
func CurrentReplaySummary(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := tb.View(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		replay := view.State.Replay
		if !replay.Loaded {
			writeError(w, engine.ErrNoReplay)
			return
		}
		writeJSON(w, http.StatusOK, summarize(replay.Result, replay.Reviews, replay.Timeline))
	}
}

func fetchRecord(w http.ResponseWriter, r *http.Request, repo archive.Repository) (archive.Record, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, types.ServerMessage{Type: "Error", Error: "bad replay id"})
		return archive.Record{}, false
	}
	rec, err := repo.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return archive.Record{}, false
	}
	return rec, true
}

func summarize(result protocol.Result, reviews map[string]protocol.Review, timeline []protocol.TimelineEntry) types.ReplaySummary {
	return types.ReplaySummary{
		Result:  result,
		Reviews: reviews,
		Lines:   engine.DescribeTimeline(timeline),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), types.ServerMessage{Type: "Error", Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, archive.ErrNotFound), errors.Is(err, engine.ErrNoReplay):
		return http.StatusNotFound
	case errors.Is(err, errBadCommand), errors.Is(err, table.ErrUnsupportedCommand):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrTargetRequired),
		errors.Is(err, engine.ErrUnknownPlayer),
		errors.Is(err, engine.ErrSkillNotAllowed),
		errors.Is(err, engine.ErrEmptySpeech),
		errors.Is(err, engine.ErrInvalidPlayerCount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrNightActionLocked),
		errors.Is(err, engine.ErrNoNightAction),
		errors.Is(err, engine.ErrPlayerDead),
		errors.Is(err, engine.ErrNotPlaying),
		errors.Is(err, engine.ErrVotingClosed),
		errors.Is(err, engine.ErrSpeechClosed),
		errors.Is(err, engine.ErrReplaying),
		errors.Is(err, engine.ErrNotReplaying):
		return http.StatusConflict
	case errors.Is(err, table.ErrOutboundFull), errors.Is(err, table.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
