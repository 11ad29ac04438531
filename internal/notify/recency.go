package notify

import "time"

// recencySet remembers the last messages shown, bounded both by a
// suppression window and a fixed capacity with oldest-first eviction.
type recencySet struct {
	capacity int
	window   time.Duration
	entries  []recencyEntry
}

type recencyEntry struct {
	message string
	shownAt time.Time
}

func newRecencySet(capacity int, window time.Duration) *recencySet {
	if capacity <= 0 {
		capacity = 1
	}
	return &recencySet{
		capacity: capacity,
		window:   window,
	}
}

// seen reports whether the exact message was shown inside the window.
func (set *recencySet) seen(message string, now time.Time) bool {
	set.prune(now)
	for _, entry := range set.entries {
		if entry.message == message {
			return true
		}
	}
	return false
}

func (set *recencySet) add(message string, now time.Time) {
	set.prune(now)
	set.entries = append(set.entries, recencyEntry{message: message, shownAt: now})
	if len(set.entries) > set.capacity {
		set.entries = set.entries[len(set.entries)-set.capacity:]
	}
}

func (set *recencySet) prune(now time.Time) {
	threshold := now.Add(-set.window)
	pruned := set.entries[:0]
	for _, entry := range set.entries {
		if entry.shownAt.After(threshold) {
			pruned = append(pruned, entry)
		}
	}
	set.entries = pruned
}

func (set *recencySet) reset() {
	set.entries = nil
}
