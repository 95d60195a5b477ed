package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrMalformed = errors.New("malformed payload")
var ErrUnknownKind = errors.New("unknown message type")

type validator interface {
	validate() error
}

func decodeAs[T any](data []byte) (T, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if v, ok := any(msg).(validator); ok {
		if err := v.validate(); err != nil {
			return msg, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return msg, nil
}

func decodeEvent[T Event](data []byte) (Event, error) {
	evt, err := decodeAs[T](data)
	if err != nil {
		return nil, err
	}
	return evt, nil
}

func decodeAction[T Action](data []byte) (Action, error) {
	act, err := decodeAs[T](data)
	if err != nil {
		return nil, err
	}
	return act, nil
}

var eventDecoders = map[Kind]func([]byte) (Event, error){
	KindInit:           decodeEvent[Init],
	KindPhase:          decodeEvent[PhaseChanged],
	KindThinking:       decodeEvent[Thinking],
	KindSpeechStart:    decodeEvent[SpeechStarted],
	KindSpeech:         decodeEvent[Speech],
	KindVote:           decodeEvent[Vote],
	KindVoteEnd:        decodeEvent[VoteEnded],
	KindVoteTie:        decodeEvent[VoteTied],
	KindDeath:          decodeEvent[Death],
	KindRole:           decodeEvent[RoleAssigned],
	KindRoleMap:        decodeEvent[RoleMapRevealed],
	KindNightSkill:     decodeEvent[NightSkillGranted],
	KindNightActionAck: decodeEvent[NightActionAck],
	KindSeerResult:     decodeEvent[SeerResult],
	KindSheriffVote:    decodeEvent[SheriffVote],
	KindSheriff:        decodeEvent[SheriffElected],
	KindSheriffTie:     decodeEvent[SheriffTied],
	KindSheriffNone:    decodeEvent[SheriffNone],
	KindReview:         decodeEvent[ReviewArrived],
	KindReplayData:     decodeEvent[ReplayData],
	KindConfigRequired: decodeEvent[ConfigRequired],
	KindConfigError:    decodeEvent[ConfigError],
}

var actionDecoders = map[ActionKind]func([]byte) (Action, error){
	ActionSpeech:      decodeAction[SpeechAction],
	ActionSpeechSkip:  decodeAction[SpeechSkipAction],
	ActionVote:        decodeAction[VoteAction],
	ActionSheriffVote: decodeAction[SheriffVoteAction],
	ActionNight:       decodeAction[NightAction],
	ActionConfig:      decodeAction[ConfigAction],
}

func readTag(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	tag := gjson.GetBytes(data, "type")
	if tag.Type != gjson.String || tag.Str == "" {
		return "", fmt.Errorf("%w: missing type", ErrMalformed)
	}
	return tag.Str, nil
}

// DecodeEvent parses one authority payload. The error wraps ErrMalformed or
// ErrUnknownKind; callers are expected to drop the payload in both cases.
func DecodeEvent(data []byte) (Event, error) {
	tag, err := readTag(data)
	if err != nil {
		return nil, err
	}
	decode, ok := eventDecoders[Kind(tag)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, tag)
	}
	return decode(data)
}

// DecodeAction parses one client payload.
func DecodeAction(data []byte) (Action, error) {
	tag, err := readTag(data)
	if err != nil {
		return nil, err
	}
	decode, ok := actionDecoders[ActionKind(tag)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, tag)
	}
	return decode(data)
}

func EncodeEvent(evt Event) ([]byte, error) {
	if evt == nil {
		return nil, fmt.Errorf("encode event: nil")
	}
	return encodeTagged(evt, string(evt.Kind()))
}

func EncodeAction(act Action) ([]byte, error) {
	if act == nil {
		return nil, fmt.Errorf("encode action: nil")
	}
	return encodeTagged(act, string(act.ActionKind()))
}

func encodeTagged(v any, tag string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", tag, err)
	}
	return sjson.SetBytes(data, "type", tag)
}
