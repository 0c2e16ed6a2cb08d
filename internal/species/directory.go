package species

import "strings"

// Entry is one catalog species: its comparison key and the label exactly as
// stored in the source row.
type Entry struct {
	Key   string
	Label string
}

// Directory maps normalized keys to canonical labels and remembers
// insertion order. It is built once per request and never mutated after.
type Directory struct {
	index   map[string]int
	entries []Entry
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Add inserts label under its normalized key. Duplicate keys keep the first
// label; labels normalizing to an empty key are ignored. It reports whether
// the label was inserted.
func (d *Directory) Add(label string) bool {
	key := Normalize(label)
	if key == "" {
		return false
	}
	if _, exists := d.index[key]; exists {
		return false
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Label: label})
	return true
}

// Len returns the number of distinct species. Safe on a nil directory.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Labels returns canonical labels in insertion order.
func (d *Directory) Labels() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Label
	}
	return out
}

// Entries returns a copy of the entries in insertion order.
func (d *Directory) Entries() []Entry {
	if d == nil {
		return nil
	}
	return append([]Entry(nil), d.entries...)
}

// Match resolves a free-form label to a canonical label.
//
// An exact key hit wins. Otherwise entries are scanned in insertion order
// and the first one whose key contains, or is contained in, the label's key
// is returned. The scan stops at the first hit even when a later entry
// would be a closer match.
func (d *Directory) Match(label string) (string, bool) {
	if d.Len() == 0 {
		return "", false
	}
	key := Normalize(label)
	if key == "" {
		return "", false
	}
	if i, ok := d.index[key]; ok {
		return d.entries[i].Label, true
	}
	for _, e := range d.entries {
		if strings.Contains(key, e.Key) || strings.Contains(e.Key, key) {
			return e.Label, true
		}
	}
	return "", false
}
