package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tags an inbound event.
type Kind string

const (
	KindInit           Kind = "INIT"
	KindPhase          Kind = "PHASE"
	KindThinking       Kind = "THINKING"
	KindSpeechStart    Kind = "SPEECH_START"
	KindSpeech         Kind = "SPEECH"
	KindVote           Kind = "VOTE"
	KindVoteEnd        Kind = "VOTE_END"
	KindVoteTie        Kind = "VOTE_TIE"
	KindDeath          Kind = "DEATH"
	KindRole           Kind = "ROLE"
	KindRoleMap        Kind = "ROLE_MAP"
	KindNightSkill     Kind = "NIGHT_SKILL"
	KindNightActionAck Kind = "NIGHT_ACTION_ACK"
	KindSeerResult     Kind = "SEER_RESULT"
	KindSheriffVote    Kind = "SHERIFF_VOTE"
	KindSheriff        Kind = "SHERIFF"
	KindSheriffTie     Kind = "SHERIFF_TIE"
	KindSheriffNone    Kind = "SHERIFF_NONE"
	KindReview         Kind = "REVIEW"
	KindReplayData     Kind = "REPLAY_DATA"
	KindConfigRequired Kind = "CONFIG_REQUIRED"
	KindConfigError    Kind = "CONFIG_ERROR"
)

// Event is any message sent by the authority.
type Event interface {
	Kind() Kind
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
}

// UnmarshalJSON treats a missing alive flag as alive.
func (p *Player) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Alive *bool  `json:"alive"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.ID = wire.ID
	p.Name = wire.Name
	p.Alive = wire.Alive == nil || *wire.Alive
	return nil
}

type Init struct {
	Players []Player `json:"players"`
	SelfID  string   `json:"selfId,omitempty"`
}

type PhaseChanged struct {
	Phase Phase `json:"phase"`
}

type Thinking struct {
	PlayerID string `json:"playerId"`
}

type SpeechStarted struct {
	PlayerID string `json:"playerId"`
}

type Speech struct {
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
}

type Vote struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type VoteEnded struct{}

type VoteTied struct{}

type Death struct {
	PlayerID string `json:"playerId"`
}

type RoleAssigned struct {
	Role Role `json:"role"`
}

type RoleMapRevealed struct {
	Roles map[string]Role `json:"roles"`
}

type NightSkillGranted struct {
	Skill NightSkill `json:"skill,omitempty"`
	Role  Role       `json:"role,omitempty"`
	Hint  string     `json:"hint,omitempty"`
}

// NightActionAck answers a NIGHT_ACTION. The authority has used both an ok
// flag and a status string; Accepted folds the two into one answer.
type NightActionAck struct {
	OK         *bool           `json:"ok,omitempty"`
	Status     string          `json:"status,omitempty"`
	Message    string          `json:"message,omitempty"`
	ActionType NightActionType `json:"actionType,omitempty"`
	Target     string          `json:"target,omitempty"`
	Summary    map[string]bool `json:"summary,omitempty"`
}

// Accepted reports the verdict carried by the ack. known is false when the
// ack carries neither ok nor status, as the night summary broadcast does.
func (a NightActionAck) Accepted() (accepted, known bool) {
	if a.OK != nil {
		return *a.OK, true
	}
	switch a.Status {
	case "":
		return false, false
	case "ok":
		return true, true
	default:
		return false, true
	}
}

type SeerResult struct {
	Target string `json:"target"`
	Role   Role   `json:"role"`
}

type SheriffVote struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SheriffElected struct {
	PlayerID string `json:"playerId"`
}

type SheriffTied struct{}

type SheriffNone struct{}

type Review struct {
	OverallStrategy string `json:"overall_strategy"`
	BiggestMistake  string `json:"biggest_mistake,omitempty"`
	TurningPoint    string `json:"turning_point,omitempty"`
	IfPlayAgain     string `json:"if_play_again,omitempty"`
}

type ReviewArrived struct {
	Data map[string]Review `json:"data"`
}

type ConfigRequired struct {
	MinPlayers int `json:"minPlayers"`
	MaxPlayers int `json:"maxPlayers"`
}

type ConfigError struct {
	Message string `json:"message"`
}

func (Init) Kind() Kind              { return KindInit }
func (PhaseChanged) Kind() Kind      { return KindPhase }
func (Thinking) Kind() Kind          { return KindThinking }
func (SpeechStarted) Kind() Kind     { return KindSpeechStart }
func (Speech) Kind() Kind            { return KindSpeech }
func (Vote) Kind() Kind              { return KindVote }
func (VoteEnded) Kind() Kind         { return KindVoteEnd }
func (VoteTied) Kind() Kind          { return KindVoteTie }
func (Death) Kind() Kind             { return KindDeath }
func (RoleAssigned) Kind() Kind      { return KindRole }
func (RoleMapRevealed) Kind() Kind   { return KindRoleMap }
func (NightSkillGranted) Kind() Kind { return KindNightSkill }
func (NightActionAck) Kind() Kind    { return KindNightActionAck }
func (SeerResult) Kind() Kind        { return KindSeerResult }
func (SheriffVote) Kind() Kind       { return KindSheriffVote }
func (SheriffElected) Kind() Kind    { return KindSheriff }
func (SheriffTied) Kind() Kind       { return KindSheriffTie }
func (SheriffNone) Kind() Kind       { return KindSheriffNone }
func (ReviewArrived) Kind() Kind     { return KindReview }
func (ReplayData) Kind() Kind        { return KindReplayData }
func (ConfigRequired) Kind() Kind    { return KindConfigRequired }
func (ConfigError) Kind() Kind       { return KindConfigError }

var errMissingField = errors.New("missing field")

func (e Init) validate() error {
	seen := make(map[string]bool, len(e.Players))
	for _, p := range e.Players {
		if p.ID == "" {
			return fmt.Errorf("player id: %w", errMissingField)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func (e PhaseChanged) validate() error {
	if !e.Phase.Valid() {
		return fmt.Errorf("unknown phase %q", e.Phase)
	}
	return nil
}

func (e RoleAssigned) validate() error {
	if !e.Role.Valid() {
		return fmt.Errorf("unknown role %q", e.Role)
	}
	return nil
}

func (e NightSkillGranted) validate() error {
	if e.Skill != "" && !e.Skill.Valid() {
		return fmt.Errorf("unknown skill %q", e.Skill)
	}
	if e.Role != "" && !e.Role.Valid() {
		return fmt.Errorf("unknown role %q", e.Role)
	}
	return nil
}

func (e SeerResult) validate() error {
	if e.Target == "" {
		return fmt.Errorf("target: %w", errMissingField)
	}
	return nil
}

func (e ConfigRequired) validate() error {
	if e.MinPlayers <= 0 || e.MaxPlayers < e.MinPlayers {
		return fmt.Errorf("bad player bounds %d..%d", e.MinPlayers, e.MaxPlayers)
	}
	return nil
}
