package engine

import (
	"strings"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

// requireSeat checks that the local user plays (not observes) a living seat.
func (s *Store) requireSeat() error {
	st := s.state
	if st.Replaying {
		return ErrReplaying
	}
	if st.ViewerMode != ViewerPlayer || st.SelfID == "" {
		return ErrNotPlaying
	}
	if self, ok := st.Player(st.SelfID); ok && !self.Alive {
		return ErrPlayerDead
	}
	return nil
}

func (s *Store) requireLivingTarget(target string) error {
	if target == protocol.Abstain {
		return nil
	}
	p, ok := s.state.Player(target)
	if !ok {
		return ErrUnknownPlayer
	}
	if !p.Alive {
		return ErrPlayerDead
	}
	return nil
}

// CastVote builds an elimination vote. The ledger only changes when the
// authority echoes the vote back.
func (s *Store) CastVote(target string) (protocol.VoteAction, error) {
	if err := s.requireSeat(); err != nil {
		return protocol.VoteAction{}, err
	}
	if s.state.Phase != protocol.PhaseVote || !s.state.VotingOpen {
		return protocol.VoteAction{}, ErrVotingClosed
	}
	if err := s.requireLivingTarget(target); err != nil {
		return protocol.VoteAction{}, err
	}
	return protocol.VoteAction{To: target}, nil
}

func (s *Store) CastSheriffVote(target string) (protocol.SheriffVoteAction, error) {
	if err := s.requireSeat(); err != nil {
		return protocol.SheriffVoteAction{}, err
	}
	if s.state.Phase != protocol.PhaseSheriff {
		return protocol.SheriffVoteAction{}, ErrVotingClosed
	}
	if err := s.requireLivingTarget(target); err != nil {
		return protocol.SheriffVoteAction{}, err
	}
	return protocol.SheriffVoteAction{To: target}, nil
}

func (s *Store) SendSpeech(text string) (protocol.SpeechAction, error) {
	if err := s.requireSeat(); err != nil {
		return protocol.SpeechAction{}, err
	}
	if s.state.Phase != protocol.PhaseDay {
		return protocol.SpeechAction{}, ErrSpeechClosed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return protocol.SpeechAction{}, ErrEmptySpeech
	}
	return protocol.SpeechAction{Text: text}, nil
}

func (s *Store) SkipSpeech() (protocol.SpeechSkipAction, error) {
	if err := s.requireSeat(); err != nil {
		return protocol.SpeechSkipAction{}, err
	}
	if s.state.Phase != protocol.PhaseDay {
		return protocol.SpeechSkipAction{}, ErrSpeechClosed
	}
	return protocol.SpeechSkipAction{}, nil
}

// Configure validates an answer to CONFIG_REQUIRED. Nothing changes until
// CommitConfigure records the delivered answer.
func (s *Store) Configure(playerCount int, observer bool) (protocol.ConfigAction, error) {
	if s.state.Replaying {
		return protocol.ConfigAction{}, ErrReplaying
	}
	cfg := &s.state.Config
	if playerCount <= 0 {
		return protocol.ConfigAction{}, ErrInvalidPlayerCount
	}
	if cfg.Required && (playerCount < cfg.MinPlayers || playerCount > cfg.MaxPlayers) {
		return protocol.ConfigAction{}, ErrInvalidPlayerCount
	}
	return protocol.ConfigAction{PlayerCount: playerCount, Observer: observer}, nil
}

// CommitConfigure records how this client will watch once the CONFIG
// action has been handed to the transport.
func (s *Store) CommitConfigure(action protocol.ConfigAction) {
	s.state.Config.Error = ""
	if action.Observer {
		s.state.ViewerMode = ViewerObserver
	} else {
		s.state.ViewerMode = ViewerPlayer
	}
}
