package table

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/werewolf-table/internal/archive"
	"github.com/DoyleJ11/werewolf-table/internal/engine"
	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrOutboundFull = errors.New("outbound queue full")
var ErrClosed = errors.New("table closed")

type Msg interface{ isTableMsg() }

// FromAuthority carries one decoded authority event.
type FromAuthority struct {
	Event protocol.Event
}

func (FromAuthority) isTableMsg() {}

// FromClient carries a player command. Reply, when set, receives the result.
type FromClient struct {
	Cmd   Command
	Reply chan error
}

func (FromClient) isTableMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isTableMsg() {}

type Leave struct{ ClientID string }

func (Leave) isTableMsg() {}

// LoadReplay installs an archived game exactly as a REPLAY_DATA would.
type LoadReplay struct {
	Replay protocol.ReplayData
	Reply  chan error
}

func (LoadReplay) isTableMsg() {}

type Shutdown struct{}

func (Shutdown) isTableMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isTableMsg() {}

type Snapshot struct {
	Version int
	State   engine.Snapshot
}

type View struct {
	Version    int
	NumClients int
	Journal    int
	State      engine.Snapshot
}

type Options struct {
	// Outbound receives actions for the authority.
	Outbound chan<- protocol.Action
	// Archive, when set, receives finished games.
	Archive   chan<- archive.Record
	Logger    *zap.Logger
	InboxSize int
}

// Table is the single owner of the game store. Every event and command is
// folded on its goroutine, one at a time, in inbox order.
type Table struct {
	inbox    chan Msg
	store    *engine.Store
	version  int
	clients  map[string]chan Snapshot
	journal  journal
	outbound chan<- protocol.Action
	archive  chan<- archive.Record
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewTable(parent context.Context, opts Options) *Table {
	ctx, cancel := context.WithCancel(parent)

	size := opts.InboxSize
	if size <= 0 {
		size = 64
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Table{
		inbox:    make(chan Msg, size),
		store:    engine.NewStore(),
		clients:  make(map[string]chan Snapshot),
		outbound: opts.Outbound,
		archive:  opts.Archive,
		logger:   logger.Named("table"),
		ctx:      ctx,
		cancel:   cancel,
	}

	go t.loop()
	return t
}

func (t *Table) loop() {
	for {
		select {
		case <-t.ctx.Done():
			t.shutdown()
			return

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Join:
				t.clients[msg.ClientID] = msg.Outbox
				t.deliver(msg.ClientID, msg.Outbox, t.current())

			case Leave:
				delete(t.clients, msg.ClientID)

			case FromAuthority:
				if t.handleEvent(msg.Event) {
					t.publish()
				}

			case FromClient:
				err := t.handleCommand(msg.Cmd)
				if err == nil || errors.Is(err, ErrOutboundFull) {
					t.publish()
				}
				if err != nil {
					t.logger.Info("command refused", zap.String("cmd", string(msg.Cmd.Type)), zap.Error(err))
				}
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case LoadReplay:
				t.store.Apply(msg.Replay)
				t.publish()
				if msg.Reply != nil {
					msg.Reply <- nil
				}

			case GetState:
				msg.Reply <- View{
					Version:    t.version,
					NumClients: len(t.clients),
					Journal:    t.journal.len(),
					State:      t.store.Snapshot(),
				}

			case Shutdown:
				t.shutdown()
				return
			}
		}
	}
}

// handleEvent reports whether the event reached the store.
func (t *Table) handleEvent(evt protocol.Event) bool {
	if evt == nil {
		return false
	}
	if t.store.Replaying() {
		switch evt.(type) {
		case protocol.ReplayData, protocol.ReviewArrived:
		default:
			t.logger.Debug("live event ignored during replay", zap.String("kind", string(evt.Kind())))
			return false
		}
	}

	switch e := evt.(type) {
	case protocol.Init:
		t.journal.reset()
		t.journal.record(evt)
	case protocol.ReplayData:
		t.archiveReplay(archive.SourceAuthority, e)
	case protocol.ReviewArrived:
	default:
		t.journal.record(evt)
	}

	t.store.Apply(evt)

	if pc, ok := evt.(protocol.PhaseChanged); ok && pc.Phase == protocol.PhaseEnded && t.journal.len() > 0 {
		t.archiveReplay(archive.SourceJournal, t.journal.replay(t.store.Snapshot().RoleMap))
	}
	return true
}

func (t *Table) archiveReplay(source archive.Source, replay protocol.ReplayData) {
	if t.archive == nil {
		return
	}
	rec := archive.NewRecord(source, replay)
	select {
	case t.archive <- rec:
	default:
		t.logger.Warn("archive queue full, replay dropped", zap.Stringer("id", rec.ID))
	}
}

func (t *Table) send(action protocol.Action) error {
	select {
	case t.outbound <- action:
		return nil
	default:
		t.logger.Warn("outbound queue full", zap.String("action", string(action.ActionKind())))
		return ErrOutboundFull
	}
}

func (t *Table) current() Snapshot {
	return Snapshot{Version: t.version, State: t.store.Snapshot()}
}

func (t *Table) shutdown() {
	for id, ch := range t.clients {
		close(ch) // Tell client no more snapshots
		delete(t.clients, id)
	}
	t.cancel()
}

func (t *Table) publish() {
	t.version++
	snap := t.current()
	for id, ch := range t.clients {
		t.deliver(id, ch, snap)
	}
}

func (t *Table) deliver(id string, ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		//ok
	default:
		// Client is slow/full - drop them.
		t.logger.Info("dropping slow client", zap.String("client", id))
		close(ch)
		delete(t.clients, id)
	}
}

// Inbox exposes the table's inbox to the transport and HTTP layers.
func (t *Table) Inbox() chan<- Msg { return t.inbox }

// Done is closed once the table has shut down.
func (t *Table) Done() <-chan struct{} { return t.ctx.Done() }

func (t *Table) request(ctx context.Context, msg Msg) error {
	select {
	case t.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ctx.Done():
		return ErrClosed
	}
}

// Do runs cmd on the table goroutine and waits for its result.
func (t *Table) Do(ctx context.Context, cmd Command) error {
	reply := make(chan error, 1)
	if err := t.request(ctx, FromClient{Cmd: cmd, Reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ctx.Done():
		return ErrClosed
	}
}

func (t *Table) Load(ctx context.Context, replay protocol.ReplayData) error {
	reply := make(chan error, 1)
	if err := t.request(ctx, LoadReplay{Replay: replay, Reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ctx.Done():
		return ErrClosed
	}
}

func (t *Table) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := t.request(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-t.ctx.Done():
		return View{}, ErrClosed
	}
}
