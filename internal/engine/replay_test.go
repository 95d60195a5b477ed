package engine

import (
	"reflect"
	"testing"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

func recordedGame() []protocol.Event {
	yes := true
	return []protocol.Event{
		protocol.Init{Players: roster("A", "B", "C", "D"), SelfID: "A"},
		protocol.RoleAssigned{Role: protocol.RoleSeer},
		protocol.PhaseChanged{Phase: protocol.PhaseNight},
		protocol.NightSkillGranted{Role: protocol.RoleSeer, Hint: "Choose a target privately."},
		protocol.NightActionAck{OK: &yes},
		protocol.SeerResult{Target: "C", Role: protocol.RoleWerewolf},
		protocol.PhaseChanged{Phase: protocol.PhaseDay},
		protocol.Death{PlayerID: "D"},
		protocol.Thinking{PlayerID: "B"},
		protocol.SpeechStarted{PlayerID: "B"},
		protocol.Speech{PlayerID: "B", Text: "I want to hear everyone first."},
		protocol.PhaseChanged{Phase: protocol.PhaseSheriff},
		protocol.SheriffVote{From: "B", To: "A"},
		protocol.SheriffElected{PlayerID: "A"},
		protocol.PhaseChanged{Phase: protocol.PhaseVote},
		protocol.Vote{From: "A", To: "C"},
		protocol.Vote{From: "B", To: "A"},
		protocol.Vote{From: "B", To: "C"},
		protocol.VoteEnded{},
		protocol.Death{PlayerID: "C"},
		protocol.PhaseChanged{Phase: protocol.PhaseEnded},
	}
}

func timelineOf(events []protocol.Event) []protocol.TimelineEntry {
	timeline := make([]protocol.TimelineEntry, 0, len(events))
	for i, evt := range events {
		timeline = append(timeline, protocol.TimelineEntry{Tick: i, Event: evt})
	}
	return timeline
}

// gameState drops the replay bookkeeping so live and replayed states compare.
func gameState(s Snapshot) Snapshot {
	s.Replaying = false
	s.Replay = ReplayState{}
	return s
}

func TestReplay_MatchesLiveAfterEveryStep(t *testing.T) {
	events := recordedGame()
	live := NewStore()

	replay := newGame(protocol.Speech{PlayerID: "B", Text: "stale live chatter"})
	replay.Apply(protocol.ReplayData{Timeline: timelineOf(events), Result: protocol.ResultVillagersWin})

	snap := replay.Snapshot()
	if !snap.Replaying || snap.Replay.Cursor != 0 {
		t.Fatalf("REPLAY_DATA should start the replay: %+v", snap.Replay)
	}
	if len(snap.Messages) != 0 || len(snap.Players) != 0 {
		t.Fatalf("live state leaked into replay: %+v", snap)
	}

	for i, evt := range events {
		live.Apply(evt)
		if !replay.StepReplay() {
			t.Fatalf("step %d: replay stopped early", i)
		}
		got := replay.Snapshot()
		if got.Replay.Cursor != i+1 {
			t.Fatalf("step %d: cursor %d", i, got.Replay.Cursor)
		}
		if !reflect.DeepEqual(gameState(got), gameState(live.Snapshot())) {
			t.Fatalf("step %d (%s): replay diverged\nreplay: %+v\nlive:   %+v",
				i, evt.Kind(), gameState(got), gameState(live.Snapshot()))
		}
	}
}

func TestReplay_StepPastEndStops(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.ReplayData{
		Timeline: timelineOf([]protocol.Event{protocol.PhaseChanged{Phase: protocol.PhaseDay}}),
		Result:   protocol.ResultDraw,
		Reviews:  map[string]protocol.Review{"A": {OverallStrategy: "calm"}},
	})

	if !s.StepReplay() {
		t.Fatalf("first step should apply")
	}
	if s.StepReplay() {
		t.Fatalf("step past the end should stop")
	}

	snap := s.Snapshot()
	if snap.Replaying || snap.Replay.Cursor != 0 {
		t.Fatalf("replay should be stopped and rewound: replaying=%v cursor=%d", snap.Replaying, snap.Replay.Cursor)
	}
	if len(snap.Replay.Timeline) != 1 || snap.Replay.Result != protocol.ResultDraw || snap.Replay.Reviews["A"].OverallStrategy != "calm" {
		t.Fatalf("stop must keep the recorded game: %+v", snap.Replay)
	}
	if s.StepReplay() {
		t.Fatalf("step while stopped should do nothing")
	}
	if snap.Phase != protocol.PhaseNight {
		t.Fatalf("stop should leave a fresh live snapshot, phase=%s", snap.Phase)
	}
}

func TestReplay_StopResetsReplayedState(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.ReplayData{Timeline: timelineOf(recordedGame())})
	for i := 0; i < 12; i++ {
		s.StepReplay()
	}
	if len(s.Snapshot().Players) == 0 {
		t.Fatalf("replay should have installed a roster")
	}

	s.StopReplay()
	snap := s.Snapshot()
	if len(snap.Players) != 0 || len(snap.Messages) != 0 || snap.SelfID != "" || snap.Role != "" {
		t.Fatalf("replayed state leaked into live mode: %+v", snap)
	}
	if !snap.Replay.Loaded || len(snap.Replay.Timeline) != len(recordedGame()) {
		t.Fatalf("recorded game should survive stop: %+v", snap.Replay)
	}
}

func TestReplay_InitInsideTimelineKeepsBookkeeping(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.ReplayData{
		Timeline: timelineOf([]protocol.Event{
			protocol.Init{Players: roster("A", "B"), SelfID: "B"},
		}),
		FinalRoles: map[string]protocol.Role{"A": protocol.RoleWerewolf},
	})
	s.StepReplay()

	snap := s.Snapshot()
	if !snap.Replaying || !snap.Replay.Loaded {
		t.Fatalf("INIT inside a replay must not wipe it: %+v", snap.Replay)
	}
	if snap.SelfID != "B" || len(snap.Players) != 2 {
		t.Fatalf("INIT inside a replay should still install the roster: %+v", snap.Players)
	}
	if snap.Replay.FinalRoles["A"] != protocol.RoleWerewolf {
		t.Fatalf("final roles lost: %+v", snap.Replay.FinalRoles)
	}
}

func TestReplay_NestedReplayDataIsSkipped(t *testing.T) {
	inner := protocol.ReplayData{Result: protocol.ResultWerewolvesWin}
	s := NewStore()
	s.Apply(protocol.ReplayData{
		Timeline: timelineOf([]protocol.Event{inner, protocol.PhaseChanged{Phase: protocol.PhaseDay}}),
		Result:   protocol.ResultDraw,
	})

	s.StepReplay()
	s.StepReplay()
	snap := s.Snapshot()
	if snap.Replay.Result != protocol.ResultDraw || snap.Replay.Cursor != 2 || snap.Phase != protocol.PhaseDay {
		t.Fatalf("nested replay data should be skipped: %+v phase=%s", snap.Replay, snap.Phase)
	}
}

func TestReplay_RestartRewinds(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.ReplayData{Timeline: timelineOf(recordedGame())})
	for i := 0; i < 5; i++ {
		s.StepReplay()
	}
	s.StopReplay()
	s.StartReplay()

	snap := s.Snapshot()
	if !snap.Replaying || snap.Replay.Cursor != 0 || len(snap.Players) != 0 {
		t.Fatalf("restart should rewind and reset: %+v", snap)
	}
}

func TestReplay_CommandsRefused(t *testing.T) {
	s := NewStore()
	s.Apply(protocol.ReplayData{Timeline: timelineOf(recordedGame())})
	for i := 0; i < 4; i++ {
		s.StepReplay()
	}

	if err := s.SelectNightTarget("B"); err != ErrReplaying {
		t.Fatalf("select target: got %v", err)
	}
	if _, err := s.ConfirmNightAction(); err != ErrReplaying {
		t.Fatalf("confirm: got %v", err)
	}
	if _, err := s.CastVote("B"); err != ErrReplaying {
		t.Fatalf("vote: got %v", err)
	}
}

func TestDescribeTimeline(t *testing.T) {
	lines := DescribeTimeline(timelineOf([]protocol.Event{
		protocol.PhaseChanged{Phase: protocol.PhaseDay},
		protocol.Vote{From: "A", To: "B"},
		protocol.SheriffNone{},
		protocol.Speech{PlayerID: "B", Text: "hi undefined"},
		protocol.ConfigError{Message: "x"},
	}))

	want := []SummaryLine{
		{Tick: 0, Text: "Phase: DAY"},
		{Tick: 1, Text: "Vote: A -> B"},
		{Tick: 2, Text: "No sheriff this round"},
		{Tick: 3, Text: "B: hi"},
		{Tick: 4, Text: "CONFIG_ERROR"},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %+v", lines)
	}
}
