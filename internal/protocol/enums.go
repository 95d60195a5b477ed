package protocol

// SystemSender is the reserved sender id of locally synthesized messages.
const SystemSender = "SYSTEM"

// Abstain is the vote target used by a voter who declines to pick anyone.
const Abstain = "ABSTAIN"

type Phase string

const (
	PhaseNight   Phase = "NIGHT"
	PhaseDay     Phase = "DAY"
	PhaseVote    Phase = "VOTE"
	PhaseSheriff Phase = "SHERIFF"
	PhaseEnded   Phase = "ENDED"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseNight, PhaseDay, PhaseVote, PhaseSheriff, PhaseEnded:
		return true
	}
	return false
}

type Role string

const (
	RoleSeer     Role = "SEER"
	RoleWitch    Role = "WITCH"
	RoleGuard    Role = "GUARD"
	RoleVillager Role = "VILLAGER"
	RoleWerewolf Role = "WEREWOLF"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeer, RoleWitch, RoleGuard, RoleVillager, RoleWerewolf:
		return true
	}
	return false
}

type NightSkill string

const (
	SkillCheck    NightSkill = "CHECK"
	SkillSave     NightSkill = "SAVE"
	SkillPoison   NightSkill = "POISON"
	SkillGuard    NightSkill = "GUARD"
	SkillWerewolf NightSkill = "WEREWOLF"
)

func (s NightSkill) Valid() bool {
	switch s {
	case SkillCheck, SkillSave, SkillPoison, SkillGuard, SkillWerewolf:
		return true
	}
	return false
}

// NightActionType names the ability invoked by a NIGHT_ACTION.
type NightActionType string

const (
	ActionTypeSeer        NightActionType = "SEER"
	ActionTypeGuard       NightActionType = "GUARD"
	ActionTypeWerewolf    NightActionType = "WEREWOLF"
	ActionTypeWitchSave   NightActionType = "WITCH_SAVE"
	ActionTypeWitchPoison NightActionType = "WITCH_POISON"
)

// RequiresTarget reports whether the action must name a target player.
func (t NightActionType) RequiresTarget() bool {
	return t != ActionTypeWitchSave
}

// Result is the final outcome of a game.
type Result string

const (
	ResultVillagersWin  Result = "VILLAGERS_WIN"
	ResultWerewolvesWin Result = "WEREWOLVES_WIN"
	ResultDraw          Result = "DRAW"
)
