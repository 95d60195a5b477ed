package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
	"github.com/DoyleJ11/werewolf-table/internal/table"
)

// Options wires an Adapter to the table and the outbound action queue.
type Options struct {
	Inbox        chan<- table.Msg
	Outbound     <-chan protocol.Action
	WriteTimeout time.Duration
	Logger       *zap.Logger
}

// Adapter is the single connection to the game authority. Inbound payloads are
// decoded and pushed into the table inbox in receipt order; outbound actions
// are written as they are queued.
type Adapter struct {
	conn         *websocket.Conn
	inbox        chan<- table.Msg
	outbound     <-chan protocol.Action
	writeTimeout time.Duration
	logger       *zap.Logger
}

func Dial(ctx context.Context, url string, opts Options) (*Adapter, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial authority %s: %w", url, err)
	}
	return New(conn, opts), nil
}

// New wraps an established connection.
func New(conn *websocket.Conn, opts Options) *Adapter {
	timeout := opts.WriteTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	conn.SetReadLimit(1 << 20) // replay timelines are larger than the 32KiB default

	return &Adapter{
		conn:         conn,
		inbox:        opts.Inbox,
		outbound:     opts.Outbound,
		writeTimeout: timeout,
		logger:       logger.Named("transport"),
	}
}

// Run pumps both directions until ctx ends or the connection fails. A clean
// close from the authority returns nil.
func (a *Adapter) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.readLoop(ctx) })
	g.Go(func() error { return a.writeLoop(ctx) })

	err := g.Wait()
	a.conn.CloseNow()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Adapter) readLoop(ctx context.Context) error {
	for {
		_, data, err := a.conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				a.logger.Info("authority closed the connection")
				return context.Canceled
			}
			return fmt.Errorf("read: %w", err)
		}

		evt, err := protocol.DecodeEvent(data)
		if err != nil {
			a.logger.Debug("dropping inbound payload", zap.Error(err), zap.Int("bytes", len(data)))
			continue
		}

		select {
		case a.inbox <- table.FromAuthority{Event: evt}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *Adapter) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case action, ok := <-a.outbound:
			if !ok {
				a.conn.Close(websocket.StatusNormalClosure, "bye")
				return context.Canceled
			}
			payload, err := protocol.EncodeAction(action)
			if err != nil {
				a.logger.Warn("dropping outbound action", zap.Error(err))
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
			err = a.conn.Write(wctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return fmt.Errorf("write %s: %w", action.ActionKind(), err)
			}
		}
	}
}
