package httpapi

import (
	"github.com/DoyleJ11/werewolf-table/internal/protocol"
	"github.com/DoyleJ11/werewolf-table/internal/table"
	"github.com/DoyleJ11/werewolf-table/internal/types"
)

func toCommand(m types.ClientMessage) (table.Command, bool) {
	switch t := table.CommandType(m.Type); t {
	case table.CmdSelectTarget, table.CmdVote, table.CmdSheriffVote:
		if m.Target == "" {
			return table.Command{}, false
		}
		return table.Command{Type: t, Target: m.Target}, true
	case table.CmdSelectSkill:
		skill := protocol.NightSkill(m.Skill)
		if !skill.Valid() {
			return table.Command{}, false
		}
		return table.Command{Type: t, Skill: skill}, true
	case table.CmdSpeech:
		return table.Command{Type: t, Text: m.Text}, true
	case table.CmdConfigure:
		return table.Command{Type: t, PlayerCount: m.PlayerCount, Observer: m.Observer}, true
	case table.CmdConfirmNight, table.CmdSkipSpeech,
		table.CmdStartReplay, table.CmdStepReplay, table.CmdStopReplay:
		return table.Command{Type: t}, true
	default:
		return table.Command{}, false
	}
}
