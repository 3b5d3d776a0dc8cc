package consoledump

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/willibrandon/consoledump/core"
)

// Ordered adapts an insertion-ordered map so that its entries are dumped in
// insertion order. Plain Go maps are dumped in sorted key order.
//
//	m := orderedmap.New[string, any]()
//	m.Set("b", 1)
//	m.Set("a", 2)
//	consoledump.Render(consoledump.Ordered(m), "", consoledump.Options{})
//
// The adapter shares the identity of m, so a map that contains itself
// through Ordered is reported as a recursion. A nil m dumps as null.
func Ordered[K comparable, V any](m *orderedmap.OrderedMap[K, V]) core.Collection {
	return (*orderedCollection[K, V])(m)
}

type orderedCollection[K comparable, V any] orderedmap.OrderedMap[K, V]

func (c *orderedCollection[K, V]) Kind() string { return "map" }

func (c *orderedCollection[K, V]) Len() int {
	if c == nil {
		return 0
	}
	return (*orderedmap.OrderedMap[K, V])(c).Len()
}

func (c *orderedCollection[K, V]) Range(fn func(key, value any) bool) {
	if c == nil {
		return
	}
	for pair := (*orderedmap.OrderedMap[K, V])(c).Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}
