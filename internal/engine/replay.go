package engine

import (
	"maps"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

// LoadReplay installs a recorded game without starting it.
func (s *Store) LoadReplay(data protocol.ReplayData) {
	s.state.Replay = ReplayState{
		Loaded:     true,
		Timeline:   data.Timeline,
		FinalRoles: maps.Clone(data.FinalRoles),
		Result:     data.Result,
		Reviews:    maps.Clone(data.Reviews),
	}
}

// StartReplay wipes the live game, keeps the recorded one and rewinds the
// cursor.
func (s *Store) StartReplay() {
	replay := s.state.Replay
	replay.Cursor = 0
	s.state = newSnapshot()
	s.state.Replay = replay
	s.state.Replaying = true
}

// StepReplay feeds the event under the cursor through Apply and advances.
// Past the end it stops the replay and reports false.
func (s *Store) StepReplay() bool {
	if !s.state.Replaying {
		return false
	}
	r := &s.state.Replay
	if r.Cursor >= len(r.Timeline) {
		s.StopReplay()
		return false
	}

	entry := r.Timeline[r.Cursor]
	// A recorded REPLAY_DATA would restart the replay from inside itself.
	if _, nested := entry.Event.(protocol.ReplayData); !nested {
		s.Apply(entry.Event)
	}
	s.state.Replay.Cursor++
	return true
}

// StopReplay leaves replay mode with the same reset INIT performs on a live
// game. The recorded game stays readable.
func (s *Store) StopReplay() {
	replay := s.state.Replay
	replay.Cursor = 0
	s.state = newSnapshot()
	s.state.Replay = replay
}

func (s *Store) Replaying() bool {
	return s.state.Replaying
}

func (s *Store) HasReplay() bool {
	return s.state.Replay.Loaded
}
