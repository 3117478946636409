// Package league maps human-entered league labels to provider league IDs.
package league

import "strings"

// Entry is one registry row: a display label and the provider's league ID.
type Entry struct {
	Label string
	ID    int
}

// Registry is a fixed, ordered label-to-ID mapping. It is built once at
// startup and never mutated, so it is safe for concurrent readers.
type Registry struct {
	entries []Entry
}

// NewRegistry creates a registry from entries. Iteration order is the
// declaration order of entries, not alphabetical.
func NewRegistry(entries []Entry) *Registry {
	r := &Registry{entries: make([]Entry, len(entries))}
	copy(r.entries, entries)
	return r
}

// Resolve matches a user-entered label against the registry. The match is a
// case-insensitive substring check: a registry label matches when it appears
// anywhere inside the query. When several labels match, the first by
// declaration order wins. The second return is false when nothing matches.
func (r *Registry) Resolve(label string) (int, bool) {
	query := strings.ToLower(strings.TrimSpace(label))
	if query == "" {
		return 0, false
	}
	for _, e := range r.entries {
		if strings.Contains(query, strings.ToLower(e.Label)) {
			return e.ID, true
		}
	}
	return 0, false
}

// List returns the registry labels in declaration order, for display.
func (r *Registry) List() []string {
	labels := make([]string, len(r.entries))
	for i, e := range r.entries {
		labels[i] = e.Label
	}
	return labels
}

// Entries returns a copy of the registry rows in declaration order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}
