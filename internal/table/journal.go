package table

import (
	"maps"
	"slices"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

// journal records the live events of the current game with increasing ticks.
type journal struct {
	entries []protocol.TimelineEntry
	tick    int
}

func (j *journal) record(evt protocol.Event) {
	j.entries = append(j.entries, protocol.TimelineEntry{Tick: j.tick, Event: evt})
	j.tick++
}

func (j *journal) reset() {
	j.entries = nil
	j.tick = 0
}

func (j *journal) len() int { return len(j.entries) }

func (j *journal) replay(finalRoles map[string]protocol.Role) protocol.ReplayData {
	return protocol.ReplayData{
		Timeline:   slices.Clone(j.entries),
		FinalRoles: maps.Clone(finalRoles),
	}
}
