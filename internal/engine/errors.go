package engine

import "errors"

var ErrNightActionLocked = errors.New("night action already submitted")
var ErrNoNightAction = errors.New("no night action available")
var ErrTargetRequired = errors.New("night action needs a target")
var ErrSkillNotAllowed = errors.New("skill not available to role")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrPlayerDead = errors.New("player is dead")
var ErrNotPlaying = errors.New("not seated as a player")
var ErrVotingClosed = errors.New("voting is closed")
var ErrSpeechClosed = errors.New("speech is closed")
var ErrEmptySpeech = errors.New("empty speech")
var ErrInvalidPlayerCount = errors.New("invalid player count")
var ErrReplaying = errors.New("replay in progress")
var ErrNoReplay = errors.New("no replay loaded")
var ErrNotReplaying = errors.New("no replay in progress")
