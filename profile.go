package lanegeom

import "sort"

// ProfileEntry is an element of a Profile: something that governs queries from its breakpoint onward
type ProfileEntry[T any] interface {
	comparable
	// Start returns local breakpoint of the entry
	Start() float64
	overwrite(other T)
	copy() T
}

// Profile is an s-ordered collection of entries with unique breakpoints.
// For a query s the governing entry is the one with the greatest breakpoint <= s
type Profile[T ProfileEntry[T]] struct {
	entries []T
}

// Len returns number of entries
func (profile *Profile[T]) Len() int {
	return len(profile.entries)
}

// At returns i-th entry in breakpoint order
func (profile *Profile[T]) At(i int) T {
	return profile.entries[i]
}

// Entries returns copy of entries slice (entries themselves are shared)
func (profile *Profile[T]) Entries() []T {
	out := make([]T, len(profile.entries))
	copy(out, profile.entries)
	return out
}

// Insert adds entry to the profile. If an entry with exactly the same breakpoint exists
// it is overwritten in place and returned, otherwise the new entry is stored and returned
func (profile *Profile[T]) Insert(entry T) T {
	for _, existing := range profile.entries {
		if existing.Start() == entry.Start() {
			existing.overwrite(entry)
			return existing
		}
	}
	profile.entries = append(profile.entries, entry)
	profile.sort()
	return entry
}

// Remove deletes entry by identity. Returns false if entry is not in the profile
func (profile *Profile[T]) Remove(entry T) bool {
	for i, existing := range profile.entries {
		if existing == entry {
			profile.entries = append(profile.entries[:i], profile.entries[i+1:]...)
			profile.sort()
			return true
		}
	}
	return false
}

// Clear removes all entries
func (profile *Profile[T]) Clear() {
	profile.entries = profile.entries[:0]
}

// FindIndex returns index of the entry governing s or -1 if s precedes every breakpoint
func (profile *Profile[T]) FindIndex(s float64) int {
	idx := sort.Search(len(profile.entries), func(i int) bool {
		return profile.entries[i].Start() > s
	})
	return idx - 1
}

// FindAt returns entry governing s. Second value is false when profile is empty or s precedes the first breakpoint
func (profile *Profile[T]) FindAt(s float64) (T, bool) {
	var zero T
	idx := profile.FindIndex(s)
	if idx < 0 {
		return zero, false
	}
	return profile.entries[idx], true
}

// First returns entry with the smallest breakpoint
func (profile *Profile[T]) First() (T, bool) {
	var zero T
	if len(profile.entries) == 0 {
		return zero, false
	}
	return profile.entries[0], true
}

// Next returns entry following given one
func (profile *Profile[T]) Next(entry T) (T, bool) {
	var zero T
	for i, existing := range profile.entries {
		if existing == entry && i+1 < len(profile.entries) {
			return profile.entries[i+1], true
		}
	}
	return zero, false
}

// Clone deep-copies every entry into a new profile
func (profile *Profile[T]) Clone() Profile[T] {
	out := Profile[T]{entries: make([]T, len(profile.entries))}
	for i, entry := range profile.entries {
		out.entries[i] = entry.copy()
	}
	return out
}

func (profile *Profile[T]) sort() {
	sort.SliceStable(profile.entries, func(i, j int) bool {
		return profile.entries[i].Start() < profile.entries[j].Start()
	})
}
