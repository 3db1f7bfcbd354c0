package scan

import "slices"

// Key is a translation key: the verbatim text between the quotes of a
// translation call.
type Key = string

// KeySet is a set of translation keys compared by exact string equality.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether key is present.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Union adds every key of other to s.
func (s KeySet) Union(other KeySet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

// Len returns the number of distinct keys.
func (s KeySet) Len() int {
	return len(s)
}

// Sorted returns the keys in ascending byte order.
func (s KeySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
