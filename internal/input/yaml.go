package input

import (
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/consoledump"
)

// decodeYAML decodes YAML, and therefore JSON, through the node tree so that
// mapping order survives.
func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	c := &nodeConverter{anchors: make(map[*yaml.Node]any)}
	return c.convert(&doc)
}

// nodeConverter converts yaml nodes. Aliases of the same anchor convert to
// the same value, so shared structure stays shared.
type nodeConverter struct {
	anchors map[*yaml.Node]any
}

func (c *nodeConverter) convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if v, ok := c.anchors[n.Alias]; ok {
			return v, nil
		}
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		// Decoding into any leaves timestamps as strings.
		if n.ShortTag() == "!!timestamp" {
			var t time.Time
			if err := n.Decode(&t); err == nil {
				return c.remember(n, t), nil
			}
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return c.remember(n, v), nil
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		c.remember(n, items)
		for i, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.MappingNode:
		m := orderedmap.New[any, any]()
		value := consoledump.Ordered(m)
		c.remember(n, value)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := c.key(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// key converts a mapping key. Sequence keys are not comparable and are
// keyed by their text instead.
func (c *nodeConverter) key(n *yaml.Node) (any, error) {
	k, err := c.convert(n)
	if err != nil {
		return nil, err
	}
	if items, ok := k.([]any); ok {
		return fmt.Sprint(items), nil
	}
	return k, nil
}

func (c *nodeConverter) remember(n *yaml.Node, v any) any {
	if n.Anchor != "" {
		c.anchors[n] = v
	}
	return v
}
