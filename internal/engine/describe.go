package engine

import (
	"fmt"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

// DescribeEvent renders one timeline entry for a replay summary.
func DescribeEvent(evt protocol.Event) string {
	switch e := evt.(type) {
	case nil:
		return ""
	case protocol.PhaseChanged:
		return fmt.Sprintf("Phase: %s", e.Phase)
	case protocol.Speech:
		return fmt.Sprintf("%s: %s", e.PlayerID, cleanSpeech(e.Text))
	case protocol.Death:
		return fmt.Sprintf("Out: %s", e.PlayerID)
	case protocol.Vote:
		return fmt.Sprintf("Vote: %s -> %s", e.From, e.To)
	case protocol.VoteEnded:
		return "Voting closed"
	case protocol.VoteTied:
		return "Vote tied"
	case protocol.SheriffVote:
		return fmt.Sprintf("Sheriff vote: %s -> %s", e.From, e.To)
	case protocol.SheriffElected:
		return fmt.Sprintf("Sheriff elected: %s", e.PlayerID)
	case protocol.SheriffTied:
		return "Sheriff vote tied"
	case protocol.SheriffNone:
		return "No sheriff this round"
	case protocol.Thinking:
		return fmt.Sprintf("%s is thinking", e.PlayerID)
	case protocol.SpeechStarted:
		return fmt.Sprintf("%s starts speaking", e.PlayerID)
	default:
		return string(evt.Kind())
	}
}

// SummaryLine is one described timeline entry.
type SummaryLine struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
}

func DescribeTimeline(timeline []protocol.TimelineEntry) []SummaryLine {
	lines := make([]SummaryLine, 0, len(timeline))
	for _, entry := range timeline {
		lines = append(lines, SummaryLine{Tick: entry.Tick, Text: DescribeEvent(entry.Event)})
	}
	return lines
}
