package discovery

import "sort"

// State of the generated configuration relative to discovery.
type State string

const (
	StateFresh State = "fresh"
	StateStale State = "stale"
)

// StalenessTracker diffs discovery cycles against the id set captured at the
// last generation. Fresh flips to Stale when the id set gains or loses
// members; only an explicit generation flips it back, capturing the current
// set as the new baseline. Availability flips alone never change the state.
//
// Not safe for concurrent use; the coordinator serializes access.
type StalenessTracker struct {
	state    State
	baseline map[string]struct{}
	added    []string
	removed  []string
}

func NewStalenessTracker() *StalenessTracker {
	return &StalenessTracker{state: StateFresh}
}

// Observe records one discovery cycle's id set. The first observed set
// becomes the baseline without triggering staleness.
func (t *StalenessTracker) Observe(ids []string) {
	current := toSet(ids)

	if t.baseline == nil {
		t.baseline = current
		return
	}

	t.added, t.removed = diffSets(t.baseline, current)
	if len(t.added) > 0 || len(t.removed) > 0 {
		t.state = StateStale
	}
}

// MarkGenerated captures the given id set as the new baseline and resets the
// state to Fresh. This is the only Stale -> Fresh transition.
func (t *StalenessTracker) MarkGenerated(ids []string) {
	t.baseline = toSet(ids)
	t.added = nil
	t.removed = nil
	t.state = StateFresh
}

func (t *StalenessTracker) State() State { return t.state }

func (t *StalenessTracker) Stale() bool { return t.state == StateStale }

// Added returns ids present now but absent from the baseline, sorted.
func (t *StalenessTracker) Added() []string { return append([]string(nil), t.added...) }

// Removed returns baseline ids no longer discovered, sorted.
func (t *StalenessTracker) Removed() []string { return append([]string(nil), t.removed...) }

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func diffSets(baseline, current map[string]struct{}) (added, removed []string) {
	for id := range current {
		if _, ok := baseline[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range baseline {
		if _, ok := current[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
