package engine

import "github.com/DoyleJ11/werewolf-table/internal/protocol"

// RoleSkills lists the night skills each role may use.
var RoleSkills = map[protocol.Role][]protocol.NightSkill{
	protocol.RoleSeer:     {protocol.SkillCheck},
	protocol.RoleGuard:    {protocol.SkillGuard},
	protocol.RoleWerewolf: {protocol.SkillWerewolf},
	protocol.RoleWitch:    {protocol.SkillSave, protocol.SkillPoison},
}

// DefaultSkill is the skill assumed when NIGHT_SKILL names only a role.
func DefaultSkill(role protocol.Role) protocol.NightSkill {
	switch role {
	case protocol.RoleSeer:
		return protocol.SkillCheck
	case protocol.RoleGuard:
		return protocol.SkillGuard
	case protocol.RoleWerewolf:
		return protocol.SkillWerewolf
	case protocol.RoleWitch:
		return protocol.SkillPoison
	default:
		return ""
	}
}

func skillAllowed(role protocol.Role, skill protocol.NightSkill) bool {
	for _, s := range RoleSkills[role] {
		if s == skill {
			return true
		}
	}
	return false
}

// NightActionTypeFor maps a role and its active skill to the action sent to
// the authority.
func NightActionTypeFor(role protocol.Role, skill protocol.NightSkill) (protocol.NightActionType, bool) {
	switch {
	case role == protocol.RoleSeer && skill == protocol.SkillCheck:
		return protocol.ActionTypeSeer, true
	case role == protocol.RoleGuard && skill == protocol.SkillGuard:
		return protocol.ActionTypeGuard, true
	case role == protocol.RoleWerewolf && skill == protocol.SkillWerewolf:
		return protocol.ActionTypeWerewolf, true
	case role == protocol.RoleWitch && skill == protocol.SkillSave:
		return protocol.ActionTypeWitchSave, true
	case role == protocol.RoleWitch && skill == protocol.SkillPoison:
		return protocol.ActionTypeWitchPoison, true
	default:
		return "", false
	}
}
