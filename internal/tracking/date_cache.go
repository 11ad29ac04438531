package tracking

// dateCache memoizes fetched results under their calendar-date key.
// The contract is deliberate and uniform: a date-scoped fetch replaces
// that date's bucket, never merges into it. Buckets do not track which
// date holds which record id, so id-scoped mutations scan every bucket.
// The cache is not goroutine-safe; the owning Service serializes access.
type dateCache[T any] struct {
	buckets map[string][]T
}

func newDateCache[T any]() *dateCache[T] {
	return &dateCache[T]{buckets: make(map[string][]T)}
}

func (cache *dateCache[T]) has(date string) bool {
	_, ok := cache.buckets[date]
	return ok
}

func (cache *dateCache[T]) get(date string) ([]T, bool) {
	entries, ok := cache.buckets[date]
	if !ok {
		return nil, false
	}
	return append([]T(nil), entries...), true
}

func (cache *dateCache[T]) replace(date string, entries []T) {
	cache.buckets[date] = append([]T(nil), entries...)
}

// appendIfPresent adds the entry to an already-fetched bucket. An
// unfetched date stays absent so the next read still hits the server
// for the full day.
func (cache *dateCache[T]) appendIfPresent(date string, entry T) {
	if _, ok := cache.buckets[date]; !ok {
		return
	}
	cache.buckets[date] = append(cache.buckets[date], entry)
}

func (cache *dateCache[T]) updateAll(apply func(entry T) (T, bool)) {
	for date, entries := range cache.buckets {
		for index, entry := range entries {
			if updated, changed := apply(entry); changed {
				entries[index] = updated
			}
		}
		cache.buckets[date] = entries
	}
}

func (cache *dateCache[T]) removeAll(match func(entry T) bool) {
	for date, entries := range cache.buckets {
		filtered := entries[:0]
		for _, entry := range entries {
			if !match(entry) {
				filtered = append(filtered, entry)
			}
		}
		cache.buckets[date] = filtered
	}
}

func (cache *dateCache[T]) clear() {
	cache.buckets = make(map[string][]T)
}
