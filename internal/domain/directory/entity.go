package directory

import "sort"

// Entry maps a terminal user id to an employee display name.
type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Directory is the employee registry. It is built once at startup and never
// mutated afterwards, so it is safe for concurrent reads.
type Directory struct {
	byID    map[int]string
	entries []Entry
}

// New builds a Directory from entries. Later duplicates of the same id win.
func New(entries []Entry) Directory {
	byID := make(map[int]string, len(entries))
	for _, e := range entries {
		byID[e.ID] = e.Name
	}
	sorted := make([]Entry, 0, len(byID))
	for id, name := range byID {
		sorted = append(sorted, Entry{ID: id, Name: name})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return Directory{byID: byID, entries: sorted}
}

// Lookup resolves a user id to a display name.
func (d Directory) Lookup(id int) (string, bool) {
	name, ok := d.byID[id]
	return name, ok
}

// Entries returns all entries in ascending id order.
func (d Directory) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Names returns all display names in ascending id order.
func (d Directory) Names() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.Name
	}
	return names
}

func (d Directory) Len() int {
	return len(d.entries)
}
