package engine

import (
	"reflect"
	"testing"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

func roster(ids ...string) []protocol.Player {
	players := make([]protocol.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, protocol.Player{ID: id, Name: "name-" + id, Alive: true})
	}
	return players
}

func newGame(events ...protocol.Event) *Store {
	s := NewStore()
	s.Apply(protocol.Init{Players: roster("A", "B", "C"), SelfID: "A"})
	for _, evt := range events {
		s.Apply(evt)
	}
	return s
}

func TestApply_ExampleScenario(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.Init{Players: roster("A", "B", "C"), SelfID: "A"})
	s.Apply(protocol.PhaseChanged{Phase: protocol.PhaseNight})
	s.Apply(protocol.NightSkillGranted{Role: protocol.RoleSeer})

	snap := s.Snapshot()
	if snap.Phase != protocol.PhaseNight {
		t.Fatalf("phase: got %s, want NIGHT", snap.Phase)
	}
	if snap.Role != protocol.RoleSeer {
		t.Fatalf("role: got %s, want SEER", snap.Role)
	}
	if snap.NightSkill != protocol.SkillCheck {
		t.Fatalf("skill: got %s, want CHECK", snap.NightSkill)
	}
	if snap.Night.Status() != NightIdle {
		t.Fatalf("night status: got %s, want IDLE", snap.Night.Status())
	}
	if snap.ViewerMode != ViewerPlayer {
		t.Fatalf("viewer mode: got %s, want PLAYER", snap.ViewerMode)
	}
}

func TestApply_InitResetsLiveGame(t *testing.T) {
	s := newGame(
		protocol.PhaseChanged{Phase: protocol.PhaseVote},
		protocol.Vote{From: "A", To: "B"},
		protocol.Death{PlayerID: "C"},
		protocol.RoleAssigned{Role: protocol.RoleWitch},
	)
	s.LoadReplay(protocol.ReplayData{Result: protocol.ResultDraw})

	s.Apply(protocol.Init{Players: roster("X", "Y"), SelfID: "Y"})
	snap := s.Snapshot()

	if snap.Phase != protocol.PhaseNight {
		t.Fatalf("phase: got %s, want NIGHT", snap.Phase)
	}
	if len(snap.Players) != 2 || snap.SelfID != "Y" {
		t.Fatalf("roster not installed: %+v self=%s", snap.Players, snap.SelfID)
	}
	if snap.Votes.Voters() != 0 || snap.VotingOpen {
		t.Fatalf("votes not cleared: %+v open=%v", snap.Votes.Ledger(), snap.VotingOpen)
	}
	if len(snap.Messages) != 0 || snap.Role != "" {
		t.Fatalf("stale messages or role: %+v role=%s", snap.Messages, snap.Role)
	}
	if snap.Replay.Loaded || snap.Replay.Result != "" {
		t.Fatalf("stale replay data kept: %+v", snap.Replay)
	}
}

func TestApply_ObserverInit(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.Init{Players: roster("A", "B")})
	if got := s.Snapshot().ViewerMode; got != ViewerObserver {
		t.Fatalf("viewer mode: got %s, want OBSERVER", got)
	}
}

func TestApply_PhaseTransitions(t *testing.T) {
	cases := []struct {
		name          string
		phase         protocol.Phase
		wantMessages  []Message
		wantVoters    int
		wantVotingOn  bool
		wantSkillKept bool
	}{
		{
			name:  "night keeps only system messages",
			phase: protocol.PhaseNight,
			wantMessages: []Message{
				{PlayerID: protocol.SystemSender, Text: "Your role: SEER"},
			},
			wantVoters: 1,
		},
		{
			name:  "day keeps discourse",
			phase: protocol.PhaseDay,
			wantMessages: []Message{
				{PlayerID: protocol.SystemSender, Text: "Your role: SEER"},
				{PlayerID: "B", Text: "I am a villager"},
			},
			wantVoters: 1,
		},
		{
			name:  "vote opens a fresh round",
			phase: protocol.PhaseVote,
			wantMessages: []Message{
				{PlayerID: protocol.SystemSender, Text: "Your role: SEER"},
				{PlayerID: "B", Text: "I am a villager"},
			},
			wantVoters:   0,
			wantVotingOn: true,
		},
		{
			name:  "sheriff keeps discourse",
			phase: protocol.PhaseSheriff,
			wantMessages: []Message{
				{PlayerID: protocol.SystemSender, Text: "Your role: SEER"},
				{PlayerID: "B", Text: "I am a villager"},
			},
			wantVoters: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newGame(
				protocol.RoleAssigned{Role: protocol.RoleSeer},
				protocol.PhaseChanged{Phase: protocol.PhaseDay},
				protocol.Thinking{PlayerID: "C"},
				protocol.Speech{PlayerID: "B", Text: "I am a villager"},
				protocol.Vote{From: "B", To: "C"},
			)
			s.Apply(protocol.PhaseChanged{Phase: tc.phase})
			snap := s.Snapshot()

			if !reflect.DeepEqual(snap.Messages, tc.wantMessages) {
				t.Fatalf("messages: got %+v, want %+v", snap.Messages, tc.wantMessages)
			}
			if snap.Votes.Voters() != tc.wantVoters {
				t.Fatalf("voters: got %d, want %d", snap.Votes.Voters(), tc.wantVoters)
			}
			if snap.VotingOpen != tc.wantVotingOn {
				t.Fatalf("votingOpen: got %v, want %v", snap.VotingOpen, tc.wantVotingOn)
			}
			if snap.ThinkingPlayer != "" || snap.SpeakingPlayer != "" {
				t.Fatalf("indicators not cleared: thinking=%s speaking=%s", snap.ThinkingPlayer, snap.SpeakingPlayer)
			}
		})
	}
}

func TestApply_SpeakingSupersedesThinking(t *testing.T) {
	s := newGame(
		protocol.Thinking{PlayerID: "B"},
		protocol.SpeechStarted{PlayerID: "C"},
	)
	snap := s.Snapshot()
	if snap.ThinkingPlayer != "" || snap.SpeakingPlayer != "C" {
		t.Fatalf("got thinking=%q speaking=%q", snap.ThinkingPlayer, snap.SpeakingPlayer)
	}

	s.Apply(protocol.Speech{PlayerID: "C", Text: "hello"})
	if got := s.Snapshot().SpeakingPlayer; got != "" {
		t.Fatalf("speech should clear speaking, got %q", got)
	}
}

func TestApply_SpeechStripsPlaceholders(t *testing.T) {
	s := newGame(protocol.Speech{PlayerID: "B", Text: "  I suspect undefined UNDEFINED C  "})
	msgs := s.Snapshot().Messages
	if len(msgs) != 1 {
		t.Fatalf("want one message, got %+v", msgs)
	}
	if msgs[0].Text != "I suspect   C" {
		t.Fatalf("text: got %q", msgs[0].Text)
	}
}

func TestApply_SpeechCannotImpersonateSystem(t *testing.T) {
	cases := []struct {
		name   string
		sender string
	}{
		{name: "system sender", sender: protocol.SystemSender},
		{name: "no sender", sender: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newGame(protocol.SpeechStarted{PlayerID: "B"}, protocol.Speech{PlayerID: tc.sender, Text: "fake notice"})
			snap := s.Snapshot()
			if len(snap.Messages) != 0 {
				t.Fatalf("speech should be dropped, got %+v", snap.Messages)
			}
			if snap.SpeakingPlayer != "" {
				t.Fatalf("speaking indicator should still clear, got %q", snap.SpeakingPlayer)
			}
		})
	}
}

func TestApply_DeathIsIdempotent(t *testing.T) {
	s := newGame(protocol.Death{PlayerID: "B"})
	first := s.Snapshot()
	s.Apply(protocol.Death{PlayerID: "B"})
	second := s.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("second death changed state:\n%+v\n%+v", first, second)
	}
	p, _ := second.Player("B")
	if p.Alive {
		t.Fatalf("B should be dead")
	}
}

func TestApply_UnknownPlayerDeathIsSkipped(t *testing.T) {
	s := newGame()
	before := s.Snapshot()
	s.Apply(protocol.Death{PlayerID: "Z"})
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("death of unknown player mutated state")
	}
}

func TestApply_VoteEndKeepsFinalTally(t *testing.T) {
	s := newGame(
		protocol.PhaseChanged{Phase: protocol.PhaseVote},
		protocol.Vote{From: "A", To: "B"},
		protocol.Vote{From: "C", To: "B"},
		protocol.SpeechStarted{PlayerID: "C"},
		protocol.VoteEnded{},
	)
	snap := s.Snapshot()
	if snap.VotingOpen {
		t.Fatalf("voting should be closed")
	}
	if snap.Votes.Count("B") != 2 {
		t.Fatalf("tally[B]: got %d, want 2", snap.Votes.Count("B"))
	}
	if snap.SpeakingPlayer != "" {
		t.Fatalf("speaking should be cleared")
	}

	s.Apply(protocol.PhaseChanged{Phase: protocol.PhaseVote})
	if got := s.Snapshot().Votes.Voters(); got != 0 {
		t.Fatalf("next vote phase should start empty, got %d voters", got)
	}
}

func TestApply_RoleAnnouncesLocally(t *testing.T) {
	s := newGame(protocol.RoleAssigned{Role: protocol.RoleWerewolf})
	snap := s.Snapshot()
	if snap.Role != protocol.RoleWerewolf {
		t.Fatalf("role: got %s", snap.Role)
	}
	want := []Message{{PlayerID: protocol.SystemSender, Text: "Your role: WEREWOLF"}}
	if !reflect.DeepEqual(snap.Messages, want) {
		t.Fatalf("messages: got %+v", snap.Messages)
	}
}

func TestApply_NightSkillDefaults(t *testing.T) {
	cases := []struct {
		name      string
		known     protocol.Role
		evt       protocol.NightSkillGranted
		wantSkill protocol.NightSkill
	}{
		{name: "seer", evt: protocol.NightSkillGranted{Role: protocol.RoleSeer}, wantSkill: protocol.SkillCheck},
		{name: "guard", evt: protocol.NightSkillGranted{Role: protocol.RoleGuard}, wantSkill: protocol.SkillGuard},
		{name: "werewolf", evt: protocol.NightSkillGranted{Role: protocol.RoleWerewolf}, wantSkill: protocol.SkillWerewolf},
		{name: "witch falls back to poison", evt: protocol.NightSkillGranted{Role: protocol.RoleWitch}, wantSkill: protocol.SkillPoison},
		{name: "villager has none", evt: protocol.NightSkillGranted{Role: protocol.RoleVillager}, wantSkill: ""},
		{name: "explicit skill wins", evt: protocol.NightSkillGranted{Role: protocol.RoleWitch, Skill: protocol.SkillSave}, wantSkill: protocol.SkillSave},
		{name: "role from earlier ROLE", known: protocol.RoleGuard, evt: protocol.NightSkillGranted{}, wantSkill: protocol.SkillGuard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newGame(protocol.PhaseChanged{Phase: protocol.PhaseNight})
			if tc.known != "" {
				s.Apply(protocol.RoleAssigned{Role: tc.known})
			}
			s.Apply(tc.evt)
			if got := s.Snapshot().NightSkill; got != tc.wantSkill {
				t.Fatalf("skill: got %q, want %q", got, tc.wantSkill)
			}
		})
	}
}

func TestApply_ReviewMergesByPlayer(t *testing.T) {
	s := newGame(
		protocol.ReviewArrived{Data: map[string]protocol.Review{
			"A": {OverallStrategy: "first"},
			"B": {OverallStrategy: "bee"},
		}},
		protocol.ReviewArrived{Data: map[string]protocol.Review{
			"A": {OverallStrategy: "second"},
		}},
	)
	reviews := s.Snapshot().Replay.Reviews
	if reviews["A"].OverallStrategy != "second" || reviews["B"].OverallStrategy != "bee" {
		t.Fatalf("reviews: got %+v", reviews)
	}
}

func TestApply_SheriffElection(t *testing.T) {
	s := newGame(
		protocol.PhaseChanged{Phase: protocol.PhaseSheriff},
		protocol.SheriffVote{From: "A", To: "B"},
		protocol.SheriffVote{From: "C", To: "B"},
		protocol.SheriffVote{From: "A", To: protocol.Abstain},
		protocol.SheriffElected{PlayerID: "B"},
	)
	snap := s.Snapshot()
	if snap.Sheriff.Votes.Count("B") != 1 || snap.Sheriff.Votes.Count(protocol.Abstain) != 1 {
		t.Fatalf("sheriff tally: %+v", snap.Sheriff.Votes.Counts())
	}
	if snap.Sheriff.PlayerID != "B" || snap.Sheriff.Outcome != SheriffChosen {
		t.Fatalf("sheriff: %+v", snap.Sheriff)
	}

	s.Apply(protocol.PhaseChanged{Phase: protocol.PhaseSheriff})
	s.Apply(protocol.SheriffTied{})
	snap = s.Snapshot()
	if snap.Sheriff.Votes.Voters() != 0 || snap.Sheriff.Outcome != SheriffTie {
		t.Fatalf("second election: %+v", snap.Sheriff)
	}
	if snap.Sheriff.PlayerID != "B" {
		t.Fatalf("elected sheriff should persist, got %q", snap.Sheriff.PlayerID)
	}
}

func TestApply_SeerResultAndConfig(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.ConfigRequired{MinPlayers: 4, MaxPlayers: 8})
	s.Apply(protocol.ConfigError{Message: "too many"})
	cfg := s.Snapshot().Config
	if !cfg.Required || cfg.MinPlayers != 4 || cfg.MaxPlayers != 8 || cfg.Error != "too many" {
		t.Fatalf("config: %+v", cfg)
	}

	s.Apply(protocol.Init{Players: roster("A", "B"), SelfID: "A"})
	if s.Snapshot().Config.Required {
		t.Fatalf("INIT should clear the config request")
	}

	s.Apply(protocol.SeerResult{Target: "B", Role: protocol.RoleWerewolf})
	snap := s.Snapshot()
	if snap.SeerResults["B"] != protocol.RoleWerewolf {
		t.Fatalf("seer results: %+v", snap.SeerResults)
	}
	if last := snap.Messages[len(snap.Messages)-1]; last.PlayerID != protocol.SystemSender {
		t.Fatalf("seer result should be announced by SYSTEM, got %+v", last)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := newGame(protocol.Vote{From: "A", To: "B"})
	snap := s.Snapshot()
	snap.Players[0].Alive = false
	snap.Votes.Cast("C", "B")

	again := s.Snapshot()
	if !again.Players[0].Alive {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
	if again.Votes.Count("B") != 1 {
		t.Fatalf("mutating a snapshot tally leaked into the store")
	}
}

func TestReduce_MatchesSequentialApply(t *testing.T) {
	events := []protocol.Event{
		protocol.Init{Players: roster("A", "B"), SelfID: "A"},
		protocol.PhaseChanged{Phase: protocol.PhaseDay},
		protocol.Speech{PlayerID: "B", Text: "hi"},
	}
	s := NewStore()
	for _, evt := range events {
		s.Apply(evt)
	}
	if !reflect.DeepEqual(Reduce(events), s.Snapshot()) {
		t.Fatalf("Reduce diverged from Apply")
	}
}
