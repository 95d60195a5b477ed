package protocol

// ActionKind tags an outbound action.
type ActionKind string

const (
	ActionSpeech      ActionKind = "SPEECH"
	ActionSpeechSkip  ActionKind = "SPEECH_SKIP"
	ActionVote        ActionKind = "VOTE"
	ActionSheriffVote ActionKind = "SHERIFF_VOTE"
	ActionNight       ActionKind = "NIGHT_ACTION"
	ActionConfig      ActionKind = "CONFIG"
)

// Action is any message sent to the authority.
type Action interface {
	ActionKind() ActionKind
}

type SpeechAction struct {
	Text string `json:"text"`
}

type SpeechSkipAction struct{}

type VoteAction struct {
	To string `json:"to"`
}

type SheriffVoteAction struct {
	To string `json:"to"`
}

type NightAction struct {
	ActionType NightActionType `json:"actionType"`
	Target     string          `json:"target,omitempty"`
}

type ConfigAction struct {
	PlayerCount int  `json:"playerCount"`
	Observer    bool `json:"observer,omitempty"`
}

func (SpeechAction) ActionKind() ActionKind      { return ActionSpeech }
func (SpeechSkipAction) ActionKind() ActionKind  { return ActionSpeechSkip }
func (VoteAction) ActionKind() ActionKind        { return ActionVote }
func (SheriffVoteAction) ActionKind() ActionKind { return ActionSheriffVote }
func (NightAction) ActionKind() ActionKind       { return ActionNight }
func (ConfigAction) ActionKind() ActionKind      { return ActionConfig }
