package core

// Collection is an optional interface for keyed containers that carry their own
// iteration order, such as insertion-ordered maps. The renderer walks a
// Collection in the order Range reports instead of sorting its keys.
type Collection interface {
	// Kind is the tag shown in front of the size, e.g. "map" in map[3].
	Kind() string

	// Len returns the number of entries.
	Len() int

	// Range calls fn for each entry in order until fn returns false.
	Range(fn func(key, value any) bool)
}
