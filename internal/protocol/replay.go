package protocol

import (
	"encoding/json"
	"fmt"
)

// TimelineEntry is one recorded authority event.
type TimelineEntry struct {
	Tick  int
	Event Event
}

type wireEntry struct {
	Tick  int             `json:"tick"`
	Event json.RawMessage `json:"event"`
}

func (e TimelineEntry) MarshalJSON() ([]byte, error) {
	payload, err := EncodeEvent(e.Event)
	if err != nil {
		return nil, fmt.Errorf("tick %d: %w", e.Tick, err)
	}
	return json.Marshal(wireEntry{Tick: e.Tick, Event: payload})
}

func (e *TimelineEntry) UnmarshalJSON(data []byte) error {
	var wire wireEntry
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	evt, err := DecodeEvent(wire.Event)
	if err != nil {
		return fmt.Errorf("tick %d: %w", wire.Tick, err)
	}
	e.Tick, e.Event = wire.Tick, evt
	return nil
}

// ReplayData carries a finished game. Timeline entries whose event cannot be
// decoded are dropped while the rest of the timeline is kept.
type ReplayData struct {
	Timeline   []TimelineEntry   `json:"timeline"`
	FinalRoles map[string]Role   `json:"finalRoles,omitempty"`
	Result     Result            `json:"result,omitempty"`
	Reviews    map[string]Review `json:"reviews,omitempty"`
}

func (r *ReplayData) UnmarshalJSON(data []byte) error {
	var wire struct {
		Timeline   []wireEntry       `json:"timeline"`
		FinalRoles map[string]Role   `json:"finalRoles"`
		Result     Result            `json:"result"`
		Reviews    map[string]Review `json:"reviews"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	timeline := make([]TimelineEntry, 0, len(wire.Timeline))
	for _, entry := range wire.Timeline {
		evt, err := DecodeEvent(entry.Event)
		if err != nil {
			continue
		}
		timeline = append(timeline, TimelineEntry{Tick: entry.Tick, Event: evt})
	}

	r.Timeline = timeline
	r.FinalRoles = wire.FinalRoles
	r.Result = wire.Result
	r.Reviews = wire.Reviews
	return nil
}
