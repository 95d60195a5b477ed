package engine

import (
	"encoding/json"
	"maps"
)

// Tally keeps a vote ledger (voter -> candidate) and the per-candidate counts
// derived from it. Both maps only change together inside Cast and Reset, so
// counts[c] always equals the number of ledger entries pointing at c.
type Tally struct {
	ledger map[string]string
	counts map[string]int
}

// Cast records voter's current choice, superseding any earlier one.
// Empty ids are ignored.
func (t *Tally) Cast(voter, candidate string) bool {
	if voter == "" || candidate == "" {
		return false
	}
	if t.ledger == nil {
		t.ledger = make(map[string]string)
		t.counts = make(map[string]int)
	}

	prev, had := t.ledger[voter]
	if had && prev == candidate {
		return true
	}
	if had {
		if n := t.counts[prev] - 1; n > 0 {
			t.counts[prev] = n
		} else {
			delete(t.counts, prev)
		}
	}
	t.ledger[voter] = candidate
	t.counts[candidate]++
	return true
}

func (t *Tally) Reset() {
	t.ledger = nil
	t.counts = nil
}

func (t Tally) Count(candidate string) int {
	return t.counts[candidate]
}

func (t Tally) TargetOf(voter string) (string, bool) {
	c, ok := t.ledger[voter]
	return c, ok
}

// Voters is the number of distinct voters in the round.
func (t Tally) Voters() int {
	return len(t.ledger)
}

func (t Tally) Ledger() map[string]string {
	return maps.Clone(t.ledger)
}

func (t Tally) Counts() map[string]int {
	return maps.Clone(t.counts)
}

// Leaders returns the candidates with the highest count, abstentions excluded.
func (t Tally) Leaders(abstain string) []string {
	best := 0
	var leaders []string
	for c, n := range t.counts {
		if c == abstain {
			continue
		}
		switch {
		case n > best:
			best = n
			leaders = []string{c}
		case n == best:
			leaders = append(leaders, c)
		}
	}
	return leaders
}

func (t Tally) Clone() Tally {
	return Tally{ledger: maps.Clone(t.ledger), counts: maps.Clone(t.counts)}
}

type wireTally struct {
	Ledger map[string]string `json:"ledger"`
	Counts map[string]int    `json:"counts"`
}

func (t Tally) MarshalJSON() ([]byte, error) {
	w := wireTally{Ledger: t.ledger, Counts: t.counts}
	if w.Ledger == nil {
		w.Ledger = map[string]string{}
	}
	if w.Counts == nil {
		w.Counts = map[string]int{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the counts from the ledger rather than trusting the
// wire copy.
func (t *Tally) UnmarshalJSON(data []byte) error {
	var w wireTally
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Reset()
	for voter, candidate := range w.Ledger {
		t.Cast(voter, candidate)
	}
	return nil
}
