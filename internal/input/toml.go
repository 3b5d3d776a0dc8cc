package input

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/willibrandon/consoledump"
)

// keySep joins the parts of a TOML key path.
const keySep = "\x00"

// decodeTOML decodes TOML. The decoder returns plain maps, so key order is
// restored from the order in which the metadata lists the keys.
func decodeTOML(data []byte) (any, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := strings.Join(key[:len(key)-1], keySep)
		child := key[len(key)-1]
		if id := parent + keySep + child; !seen[id] {
			seen[id] = true
			order[parent] = append(order[parent], child)
		}
	}

	return orderTOML(raw, nil, order), nil
}

// orderTOML rebuilds tables as ordered maps. Elements of arrays of tables
// share the key path of the array.
func orderTOML(v any, path []string, order map[string][]string) any {
	switch x := v.(type) {
	case map[string]any:
		m := orderedmap.New[any, any]()
		for _, k := range order[strings.Join(path, keySep)] {
			if val, ok := x[k]; ok {
				m.Set(k, orderTOML(val, append(slices.Clip(path), k), order))
			}
		}

		// Keys the metadata did not list, in sorted order.
		var rest []string
		for k := range x {
			if _, ok := m.Get(k); !ok {
				rest = append(rest, k)
			}
		}
		slices.Sort(rest)
		for _, k := range rest {
			m.Set(k, orderTOML(x[k], append(slices.Clip(path), k), order))
		}
		return consoledump.Ordered(m)
	case []map[string]any:
		items := make([]any, len(x))
		for i, elem := range x {
			items[i] = orderTOML(elem, path, order)
		}
		return items
	case []any:
		items := make([]any, len(x))
		for i, elem := range x {
			items[i] = orderTOML(elem, path, order)
		}
		return items
	default:
		return v
	}
}
