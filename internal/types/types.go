package types

import (
	"github.com/DoyleJ11/werewolf-table/internal/archive"
	"github.com/DoyleJ11/werewolf-table/internal/engine"
	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

// ClientMessage is a player command, sent over the snapshot stream or posted
// to /commands.
type ClientMessage struct {
	Type        string `json:"type"`
	Target      string `json:"target,omitempty"`
	Skill       string `json:"skill,omitempty"`
	Text        string `json:"text,omitempty"`
	PlayerCount int    `json:"playerCount,omitempty"`
	Observer    bool   `json:"observer,omitempty"`
}

type ServerMessage struct {
	Type    string           `json:"type"` // "StateSnapshot" | "Error"
	Version int              `json:"version,omitempty"`
	State   *engine.Snapshot `json:"state,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type ReplayList struct {
	Replays []archive.Summary `json:"replays"`
}

// ReplaySummary is the readable form of a recorded game.
type ReplaySummary struct {
	Result  protocol.Result            `json:"result,omitempty"`
	Reviews map[string]protocol.Review `json:"reviews,omitempty"`
	Lines   []engine.SummaryLine       `json:"lines"`
}
