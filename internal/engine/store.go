package engine

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

// placeholderToken matches the literal text upstream formatters leave behind
// for a missing value.
var placeholderToken = regexp.MustCompile(`(?i)undefined`)

// Store owns the canonical game snapshot. Apply is its only event entry
// point; callers serialize access.
type Store struct {
	state Snapshot
}

func NewStore() *Store {
	return &Store{state: newSnapshot()}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return s.state.Clone()
}

// Apply folds one authority event into the snapshot. Unknown event types
// and references to unknown players are skipped.
func (s *Store) Apply(evt protocol.Event) {
	st := &s.state

	switch e := evt.(type) {
	case protocol.Init:
		if !st.Replaying {
			s.state = newSnapshot()
		}
		s.installRoster(e)

	case protocol.PhaseChanged:
		s.enterPhase(e.Phase)

	case protocol.Thinking:
		st.ThinkingPlayer = e.PlayerID

	case protocol.SpeechStarted:
		st.SpeakingPlayer = e.PlayerID
		st.ThinkingPlayer = ""

	case protocol.Speech:
		// SYSTEM lines are synthesized locally only; an authority SPEECH
		// claiming that sender, or no sender, is not appended.
		if e.PlayerID != "" && e.PlayerID != protocol.SystemSender {
			s.appendMessage(e.PlayerID, cleanSpeech(e.Text))
		}
		st.SpeakingPlayer = ""

	case protocol.Vote:
		st.Votes.Cast(e.From, e.To)

	case protocol.VoteEnded:
		st.VotingOpen = false
		st.SpeakingPlayer = ""
		st.ThinkingPlayer = ""

	case protocol.VoteTied:
		st.VoteTied = true

	case protocol.Death:
		s.markDead(e.PlayerID)

	case protocol.RoleAssigned:
		st.Role = e.Role
		s.appendMessage(protocol.SystemSender, fmt.Sprintf("Your role: %s", e.Role))

	case protocol.RoleMapRevealed:
		st.RoleMap = maps.Clone(e.Roles)

	case protocol.NightSkillGranted:
		role := e.Role
		if role == "" {
			role = st.Role
		}
		skill := e.Skill
		if skill == "" {
			skill = DefaultSkill(role)
		}
		st.Role = role
		st.NightSkill = skill
		st.NightHint = e.Hint
		s.resetNight()

	case protocol.NightActionAck:
		s.applyNightAck(e)

	case protocol.SeerResult:
		if st.SeerResults == nil {
			st.SeerResults = make(map[string]protocol.Role)
		}
		st.SeerResults[e.Target] = e.Role
		s.appendMessage(protocol.SystemSender, fmt.Sprintf("Seer check: %s is %s", e.Target, e.Role))

	case protocol.SheriffVote:
		st.Sheriff.Votes.Cast(e.From, e.To)

	case protocol.SheriffElected:
		if e.PlayerID != "" {
			st.Sheriff.PlayerID = e.PlayerID
			st.Sheriff.Outcome = SheriffChosen
		}

	case protocol.SheriffTied:
		st.Sheriff.Outcome = SheriffTie

	case protocol.SheriffNone:
		st.Sheriff.Outcome = SheriffNobody

	case protocol.ReviewArrived:
		if len(e.Data) == 0 {
			break
		}
		if st.Replay.Reviews == nil {
			st.Replay.Reviews = make(map[string]protocol.Review, len(e.Data))
		}
		maps.Copy(st.Replay.Reviews, e.Data)

	case protocol.ReplayData:
		s.LoadReplay(e)
		s.StartReplay()

	case protocol.ConfigRequired:
		st.Config = ConfigState{Required: true, MinPlayers: e.MinPlayers, MaxPlayers: e.MaxPlayers}

	case protocol.ConfigError:
		st.Config.Required = true
		st.Config.Error = e.Message
	}
}

func (s *Store) installRoster(e protocol.Init) {
	st := &s.state
	st.Players = slices.Clone(e.Players)
	if st.Players == nil {
		st.Players = []protocol.Player{}
	}
	st.SelfID = e.SelfID
	if e.SelfID != "" {
		st.ViewerMode = ViewerPlayer
	} else {
		st.ViewerMode = ViewerObserver
	}
	st.Config = ConfigState{}
}

func (s *Store) enterPhase(phase protocol.Phase) {
	st := &s.state
	st.Phase = phase
	st.ThinkingPlayer = ""
	st.SpeakingPlayer = ""
	st.NightSkill = ""
	st.NightHint = ""
	s.resetNight()
	st.VotingOpen = phase == protocol.PhaseVote

	switch phase {
	case protocol.PhaseVote:
		st.Votes.Reset()
		st.VoteTied = false
	case protocol.PhaseSheriff:
		st.Sheriff.Votes.Reset()
		st.Sheriff.Outcome = SheriffPending
	case protocol.PhaseNight:
		st.NightSummary = nil
		st.Messages = slices.DeleteFunc(st.Messages, func(m Message) bool {
			return m.PlayerID != protocol.SystemSender
		})
	}
}

func (s *Store) appendMessage(playerID, text string) {
	s.state.Messages = append(s.state.Messages, Message{PlayerID: playerID, Text: text})
}

func (s *Store) markDead(playerID string) {
	for i := range s.state.Players {
		if s.state.Players[i].ID == playerID {
			s.state.Players[i].Alive = false
			return
		}
	}
}

func cleanSpeech(text string) string {
	text = placeholderToken.ReplaceAllString(text, "")
	return norm.NFC.String(strings.TrimSpace(text))
}

// Reduce folds events into a fresh store.
func Reduce(events []protocol.Event) Snapshot {
	s := NewStore()
	for _, evt := range events {
		s.Apply(evt)
	}
	return s.Snapshot()
}
