package engine

import (
	"encoding/json"
	"maps"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

type NightStatus string

const (
	NightIdle      NightStatus = "IDLE"
	NightPending   NightStatus = "PENDING"
	NightSubmitted NightStatus = "SUBMITTED"
	NightRejected  NightStatus = "REJECTED"
)

const defaultRejection = "action rejected"

// NightAction tracks the one in-flight night action of this player.
//
//	IDLE --confirm--> PENDING --ack ok--> SUBMITTED
//	                          --ack rejected--> REJECTED --select/confirm--> IDLE/PENDING
//
// NIGHT_SKILL and PHASE reset it to IDLE from any state. Acks only resolve
// a PENDING action; in any other state they are ignored.
type NightAction struct {
	Target string `json:"target,omitempty"`
	// ActionType is what the pending or last confirmed action asked for.
	ActionType protocol.NightActionType `json:"actionType,omitempty"`
	Pending    bool                     `json:"pending"`
	Submitted  bool                     `json:"submitted"`
	Error      string                   `json:"error,omitempty"`
}

func (n NightAction) Status() NightStatus {
	switch {
	case n.Pending:
		return NightPending
	case n.Submitted:
		return NightSubmitted
	case n.Error != "":
		return NightRejected
	default:
		return NightIdle
	}
}

// Locked reports whether target changes and submissions are refused.
func (n NightAction) Locked() bool {
	return n.Pending || n.Submitted
}

func (n NightAction) MarshalJSON() ([]byte, error) {
	type plain NightAction
	return json.Marshal(struct {
		plain
		Status NightStatus `json:"status"`
	}{plain: plain(n), Status: n.Status()})
}

// SelectNightTarget picks or changes the target. It clears a previous
// rejection and leaves the machine in IDLE.
func (s *Store) SelectNightTarget(playerID string) error {
	if err := s.requireNightSkill(); err != nil {
		return err
	}
	n := &s.state.Night
	if n.Locked() {
		return ErrNightActionLocked
	}
	p, ok := s.state.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	if !p.Alive {
		return ErrPlayerDead
	}
	n.Target = playerID
	n.Submitted = false
	n.Error = ""
	return nil
}

// SelectNightSkill switches between the skills of the current role, e.g. a
// witch choosing between SAVE and POISON.
func (s *Store) SelectNightSkill(skill protocol.NightSkill) error {
	if err := s.requireNightSkill(); err != nil {
		return err
	}
	n := &s.state.Night
	if n.Locked() {
		return ErrNightActionLocked
	}
	if !skillAllowed(s.state.Role, skill) {
		return ErrSkillNotAllowed
	}
	s.state.NightSkill = skill
	n.Submitted = false
	n.Error = ""
	return nil
}

// ConfirmNightAction moves IDLE or REJECTED to PENDING and returns the single
// action to send. While locked it refuses without touching state.
func (s *Store) ConfirmNightAction() (protocol.NightAction, error) {
	if err := s.requireNightSkill(); err != nil {
		return protocol.NightAction{}, err
	}
	n := &s.state.Night
	if n.Locked() {
		return protocol.NightAction{}, ErrNightActionLocked
	}
	actionType, ok := NightActionTypeFor(s.state.Role, s.state.NightSkill)
	if !ok {
		return protocol.NightAction{}, ErrNoNightAction
	}
	action := protocol.NightAction{ActionType: actionType}
	if actionType.RequiresTarget() {
		if n.Target == "" {
			return protocol.NightAction{}, ErrTargetRequired
		}
		action.Target = n.Target
	}
	n.ActionType = actionType
	n.Pending = true
	n.Submitted = false
	n.Error = ""
	return action, nil
}

// requireNightSkill refuses night commands outside NIGHT or before the
// authority has granted a skill for this night.
func (s *Store) requireNightSkill() error {
	if s.state.Replaying {
		return ErrReplaying
	}
	if s.state.Phase != protocol.PhaseNight || s.state.NightSkill == "" {
		return ErrNoNightAction
	}
	return nil
}

// FailNightAction turns a PENDING action into a local rejection, used when
// the action could not be handed to the transport.
func (s *Store) FailNightAction(reason string) {
	n := &s.state.Night
	if !n.Pending {
		return
	}
	n.Pending = false
	n.Error = reason
}

func (s *Store) applyNightAck(e protocol.NightActionAck) {
	n := &s.state.Night
	if e.Summary != nil {
		s.state.NightSummary = maps.Clone(e.Summary)
	}

	accepted, known := e.Accepted()
	if !known || !n.Pending {
		return
	}
	// The witch gets one ack per potion; only the one for the pending
	// action resolves it.
	if e.ActionType != "" && e.ActionType != n.ActionType {
		return
	}
	n.Pending = false
	if accepted {
		n.Submitted = true
		n.Error = ""
		return
	}
	n.Submitted = false
	n.Error = e.Message
	if n.Error == "" {
		n.Error = defaultRejection
	}
}

func (s *Store) resetNight() {
	s.state.Night = NightAction{}
}
