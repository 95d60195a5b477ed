// Package protocol defines every message exchanged with the game authority.
//
// Authority -> Client
// INIT:              players: Player[], selfId: string
// PHASE:             phase: "NIGHT" | "DAY" | "VOTE" | "SHERIFF" | "ENDED"
// THINKING:          playerId
// SPEECH_START:      playerId
// SPEECH:            playerId, text
// VOTE:              from, to ("ABSTAIN" allowed)
// VOTE_END:          {}
// VOTE_TIE:          {}
// DEATH:             playerId
// ROLE:              role
// ROLE_MAP:          roles: { [playerId]: Role }
// NIGHT_SKILL:       skill?, role?, hint?
// NIGHT_ACTION_ACK:  ok?, status?: "ok" | "rejected", message?, summary?
// SEER_RESULT:       target, role
// SHERIFF_VOTE:      from, to
// SHERIFF:           playerId
// SHERIFF_TIE:       {}
// SHERIFF_NONE:      {}
// REVIEW:            data: { [playerId]: Review }
// REPLAY_DATA:       timeline: {tick, event}[], finalRoles?, result?, reviews?
// CONFIG_REQUIRED:   minPlayers, maxPlayers
// CONFIG_ERROR:      message
//
// Client -> Authority
// SPEECH:        text
// SPEECH_SKIP:   {}
// VOTE:          to
// SHERIFF_VOTE:  to
// NIGHT_ACTION:  actionType, target?
// CONFIG:        playerCount, observer?
package protocol
