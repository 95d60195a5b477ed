package table

import (
	"github.com/DoyleJ11/werewolf-table/internal/engine"
	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

type CommandType string

const (
	CmdSelectTarget CommandType = "SelectTarget"
	CmdSelectSkill  CommandType = "SelectSkill"
	CmdConfirmNight CommandType = "ConfirmNightAction"
	CmdVote         CommandType = "Vote"
	CmdSheriffVote  CommandType = "SheriffVote"
	CmdSpeech       CommandType = "Speech"
	CmdSkipSpeech   CommandType = "SkipSpeech"
	CmdConfigure    CommandType = "Configure"
	CmdStartReplay  CommandType = "StartReplay"
	CmdStepReplay   CommandType = "StepReplay"
	CmdStopReplay   CommandType = "StopReplay"
)

type Command struct {
	Type        CommandType
	Target      string
	Skill       protocol.NightSkill
	Text        string
	PlayerCount int
	Observer    bool
}

func (t *Table) handleCommand(cmd Command) error {
	switch cmd.Type {
	case CmdSelectTarget:
		return t.store.SelectNightTarget(cmd.Target)

	case CmdSelectSkill:
		return t.store.SelectNightSkill(cmd.Skill)

	case CmdConfirmNight:
		action, err := t.store.ConfirmNightAction()
		if err != nil {
			return err
		}
		if err := t.send(action); err != nil {
			t.store.FailNightAction("action not delivered")
			return err
		}
		return nil

	case CmdVote:
		return t.emit(t.store.CastVote(cmd.Target))

	case CmdSheriffVote:
		return t.emit(t.store.CastSheriffVote(cmd.Target))

	case CmdSpeech:
		return t.emit(t.store.SendSpeech(cmd.Text))

	case CmdSkipSpeech:
		return t.emit(t.store.SkipSpeech())

	case CmdConfigure:
		action, err := t.store.Configure(cmd.PlayerCount, cmd.Observer)
		if err != nil {
			return err
		}
		if err := t.send(action); err != nil {
			return err
		}
		t.store.CommitConfigure(action)
		return nil

	case CmdStartReplay:
		if !t.store.HasReplay() {
			return engine.ErrNoReplay
		}
		t.store.StartReplay()
		return nil

	case CmdStepReplay:
		if !t.store.Replaying() {
			return engine.ErrNotReplaying
		}
		t.store.StepReplay()
		return nil

	case CmdStopReplay:
		if !t.store.Replaying() {
			return engine.ErrNotReplaying
		}
		t.store.StopReplay()
		return nil

	default:
		return ErrUnsupportedCommand
	}
}

func (t *Table) emit(action protocol.Action, err error) error {
	if err != nil {
		return err
	}
	return t.send(action)
}
