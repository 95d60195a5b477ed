package engine

import (
	"maps"
	"slices"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

type ViewerMode string

const (
	ViewerPlayer   ViewerMode = "PLAYER"
	ViewerObserver ViewerMode = "OBSERVER"
)

type SheriffOutcome string

const (
	SheriffPending SheriffOutcome = ""
	SheriffChosen  SheriffOutcome = "ELECTED"
	SheriffTie     SheriffOutcome = "TIE"
	SheriffNobody  SheriffOutcome = "NONE"
)

// Message is one line of discourse. Appended, never edited.
type Message struct {
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
}

type Sheriff struct {
	Votes    Tally          `json:"votes"`
	PlayerID string         `json:"playerId,omitempty"`
	Outcome  SheriffOutcome `json:"outcome,omitempty"`
}

type ConfigState struct {
	Required   bool   `json:"required"`
	MinPlayers int    `json:"minPlayers,omitempty"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ReplayState holds the recorded game and the read cursor over it.
// The timeline is immutable once installed and is shared between clones.
type ReplayState struct {
	Loaded     bool                       `json:"loaded"`
	Timeline   []protocol.TimelineEntry   `json:"timeline,omitempty"`
	FinalRoles map[string]protocol.Role   `json:"finalRoles,omitempty"`
	Result     protocol.Result            `json:"result,omitempty"`
	Reviews    map[string]protocol.Review `json:"reviews,omitempty"`
	Cursor     int                        `json:"cursor"`
}

// Snapshot is the whole observable game state.
type Snapshot struct {
	Players        []protocol.Player        `json:"players"`
	SelfID         string                   `json:"selfId,omitempty"`
	ViewerMode     ViewerMode               `json:"viewerMode,omitempty"`
	RoleMap        map[string]protocol.Role `json:"roleMap,omitempty"`
	Phase          protocol.Phase           `json:"phase"`
	ThinkingPlayer string                   `json:"thinkingPlayer,omitempty"`
	SpeakingPlayer string                   `json:"speakingPlayer,omitempty"`
	Messages       []Message                `json:"messages"`

	Votes      Tally   `json:"votes"`
	VotingOpen bool    `json:"votingOpen"`
	VoteTied   bool    `json:"voteTied"`
	Sheriff    Sheriff `json:"sheriff"`

	Role         protocol.Role            `json:"role,omitempty"`
	NightSkill   protocol.NightSkill      `json:"nightSkill,omitempty"`
	NightHint    string                   `json:"nightHint,omitempty"`
	Night        NightAction              `json:"night"`
	NightSummary map[string]bool          `json:"nightSummary,omitempty"`
	SeerResults  map[string]protocol.Role `json:"seerResults,omitempty"`

	Config ConfigState `json:"config"`

	Replaying bool        `json:"replaying"`
	Replay    ReplayState `json:"replay"`
}

func newSnapshot() Snapshot {
	return Snapshot{
		Players:  []protocol.Player{},
		Phase:    protocol.PhaseNight,
		Messages: []Message{},
	}
}

// Player looks a player up by id.
func (s Snapshot) Player(id string) (protocol.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return protocol.Player{}, false
}

// Clone returns a copy that shares no mutable state with s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Players = slices.Clone(s.Players)
	c.RoleMap = maps.Clone(s.RoleMap)
	c.Messages = slices.Clone(s.Messages)
	c.Votes = s.Votes.Clone()
	c.Sheriff.Votes = s.Sheriff.Votes.Clone()
	c.NightSummary = maps.Clone(s.NightSummary)
	c.SeerResults = maps.Clone(s.SeerResults)
	c.Replay.FinalRoles = maps.Clone(s.Replay.FinalRoles)
	c.Replay.Reviews = maps.Clone(s.Replay.Reviews)
	return c
}
