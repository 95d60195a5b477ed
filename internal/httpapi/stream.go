package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/werewolf-table/internal/table"
	"github.com/DoyleJ11/werewolf-table/internal/types"
)

// Stream upgrades to a websocket that receives every snapshot the table
// publishes and may send commands back.
func Stream(tb *table.Table, outboxSize int, writeTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// Rendering consumers run on the same machine.
			OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan table.Snapshot, outboxSize)
		clientID := uuid.NewString()

		select {
		case tb.Inbox() <- table.Join{ClientID: clientID, Outbox: out}:
		case <-tb.Done():
			conn.Close(websocket.StatusGoingAway, "table closed")
			return
		}
		defer func() {
			select {
			case tb.Inbox() <- table.Leave{ClientID: clientID}:
			case <-tb.Done():
			}
		}()
		log := logger.With(zap.String("client", clientID))
		log.Debug("subscriber joined")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						// Dropped as slow, or the table shut down.
						conn.Close(websocket.StatusTryAgainLater, "snapshot stream closed")
						return
					}
					msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &snap.State}
					if err := writeMessage(writeCtx, conn, msg, writeTimeout); err != nil {
						log.Debug("snapshot write failed", zap.Error(err))
						writeCancel()
						return
					}
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(writeCtx)
			if err != nil {
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = writeMessage(writeCtx, conn, types.ServerMessage{Type: "Error", Error: "bad json"}, writeTimeout)
				continue
			}
			cmd, ok := toCommand(cm)
			if !ok {
				_ = writeMessage(writeCtx, conn, types.ServerMessage{Type: "Error", Error: "unknown type"}, writeTimeout)
				continue
			}
			if err := tb.Do(writeCtx, cmd); err != nil {
				_ = writeMessage(writeCtx, conn, types.ServerMessage{Type: "Error", Error: err.Error()}, writeTimeout)
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage, timeout time.Duration) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
