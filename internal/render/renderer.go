// Package render walks arbitrary values and emits them as nested, styled
// console statements.
//
// Composite values, maps, slices and pointers are tracked by identity along
// the current path, so reference cycles terminate with a recursion note. Deep
// acyclic graphs are walked to their full depth.
package render

import (
	"reflect"
	"strconv"
	"time"

	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/internal/describe"
	"github.com/willibrandon/consoledump/selflog"
)

var (
	arrowItem     = core.Literal("=>", core.StyleArrow)
	recursionItem = core.Item("recursion", core.StyleNote)
	parentItem    = core.Item("parent", core.StyleNote)
	staticItem    = core.Item("static", core.StyleNote)
	nullItem      = core.Item("null", core.StyleType)
)

// Renderer converts values into console statements.
type Renderer struct {
	describer *describe.Describer
}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{describer: describe.New()}
}

// Render emits value to e. The prefix tokens, typically a label, are prepended
// to the outermost statement only.
func (r *Renderer) Render(e core.Emitter, value any, prefix []core.LogItem) {
	s := &serializer{
		describer: r.describer,
		emitter:   e,
		visited:   make(map[identity]struct{}),
	}

	// Reflection over foreign types should never panic, but if it does the
	// statements written so far are kept and every open group is closed.
	defer func() {
		if rec := recover(); rec != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[render] panic while rendering: %v (type=%T)", rec, value)
			}
			for s.depth > 0 {
				s.groupEnd()
			}
		}
	}()

	s.serialize(value, prefix)
}

// identity is the reference identity of a pointer, map or non-empty slice.
type identity struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// serializer holds the state of a single Render call.
type serializer struct {
	describer *describe.Describer
	emitter   core.Emitter
	visited   map[identity]struct{}
	depth     int
}

func (s *serializer) log(items []core.LogItem) {
	s.emitter.Log(items)
}

func (s *serializer) group(items []core.LogItem) {
	s.emitter.Group(items)
	s.depth++
}

func (s *serializer) groupEnd() {
	s.emitter.GroupEnd()
	s.depth--
}

func (s *serializer) enter(id identity) bool {
	if _, ok := s.visited[id]; ok {
		return false
	}
	s.visited[id] = struct{}{}
	return true
}

func (s *serializer) leave(id identity) {
	delete(s.visited, id)
}

func (s *serializer) isVisited(id identity) bool {
	_, ok := s.visited[id]
	return ok
}

// serialize dispatches on the runtime kind of value.
func (s *serializer) serialize(value any, items []core.LogItem) {
	if value == nil {
		s.log(with(items, nullItem))
		return
	}

	switch x := value.(type) {
	case time.Time:
		s.log(with(items,
			core.Item(quote(describe.FormatTime(x)), core.StyleStringValue),
			core.Item("time.Time", core.StyleType)))
		return
	case time.Duration:
		s.log(with(items,
			core.Item(quote(describe.FormatDuration(x)), core.StyleStringValue),
			core.Item("time.Duration", core.StyleType)))
		return
	case core.Collection:
		if !isNil(reflect.ValueOf(value)) {
			s.collection(value, x, items)
			return
		}
	}

	v := reflect.ValueOf(value)
	if isNil(v) {
		s.log(with(items, nullItem))
		return
	}

	if describe.IsComposite(value) {
		s.composite(value, items, false)
		return
	}

	typeName := describe.TypeName(v.Type())
	switch v.Kind() {
	case reflect.Bool:
		s.scalar(items, strconv.FormatBool(v.Bool()), typeName)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.scalar(items, strconv.FormatInt(v.Int(), 10), typeName)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s.scalar(items, strconv.FormatUint(v.Uint(), 10), typeName)
	case reflect.Float32, reflect.Float64:
		s.scalar(items, strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), typeName)
	case reflect.Complex64, reflect.Complex128:
		s.scalar(items, strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()), typeName)
	case reflect.String:
		str := v.String()
		s.log(with(items,
			core.Item(quote(str), core.StyleStringValue),
			core.Item(typeName+"["+strconv.Itoa(len(str))+"]", core.StyleType)))
	case reflect.Slice:
		s.sequence(v, "slice", items)
	case reflect.Array:
		s.sequence(v, "array", items)
	case reflect.Map:
		s.mapping(v, items)
	case reflect.Pointer:
		s.pointer(v, items)
	default:
		// Channels, functions and unsafe pointers have no readable content.
		s.log(with(items, core.Item(v.Kind().String(), core.StyleType)))
	}
}

func (s *serializer) scalar(items []core.LogItem, text, typeName string) {
	s.log(with(items,
		core.Item(text, core.StyleValue),
		core.Item(typeName, core.StyleType)))
}

// pointer renders the pointee of a pointer to a non-struct value in place.
func (s *serializer) pointer(v reflect.Value, items []core.LogItem) {
	id, _ := identityOf(v)
	if !s.enter(id) {
		s.log(with(items,
			core.Item(describe.TypeName(v.Type()), core.StyleType),
			recursionItem))
		return
	}
	defer s.leave(id)

	s.serialize(v.Elem().Interface(), items)
}

// sequence renders slices and arrays with their indexes as keys.
func (s *serializer) sequence(v reflect.Value, kind string, items []core.LogItem) {
	n := v.Len()
	header := with(items, core.Item(kind+"["+strconv.Itoa(n)+"]", core.StyleType))
	if n == 0 {
		s.log(header)
		return
	}

	if id, ok := identityOf(v); ok {
		if !s.enter(id) {
			s.log(with(header, recursionItem))
			return
		}
		defer s.leave(id)
	}

	s.group(header)
	for i := 0; i < n; i++ {
		s.serialize(v.Index(i).Interface(), []core.LogItem{
			core.Item(strconv.Itoa(i), core.StyleValue),
			arrowItem,
		})
	}
	s.groupEnd()
}

// mapping renders Go maps in sorted key order.
func (s *serializer) mapping(v reflect.Value, items []core.LogItem) {
	n := v.Len()
	header := with(items, core.Item("map["+strconv.Itoa(n)+"]", core.StyleType))
	if n == 0 {
		s.log(header)
		return
	}

	id, _ := identityOf(v)
	if !s.enter(id) {
		s.log(with(header, recursionItem))
		return
	}
	defer s.leave(id)

	s.group(header)
	for _, e := range sortedEntries(v) {
		s.serialize(e.value.Interface(), []core.LogItem{keyItem(e.key), arrowItem})
	}
	s.groupEnd()
}

// collection renders a core.Collection in the order it reports.
func (s *serializer) collection(value any, c core.Collection, items []core.LogItem) {
	n := c.Len()
	header := with(items, core.Item(c.Kind()+"["+strconv.Itoa(n)+"]", core.StyleType))
	if n == 0 {
		s.log(header)
		return
	}

	if id, ok := identityOf(reflect.ValueOf(value)); ok {
		if !s.enter(id) {
			s.log(with(header, recursionItem))
			return
		}
		defer s.leave(id)
	}

	s.group(header)
	c.Range(func(key, val any) bool {
		s.serialize(val, []core.LogItem{keyItem(reflect.ValueOf(key)), arrowItem})
		return true
	})
	s.groupEnd()
}

// composite renders a struct, a pointer to a struct or a core.Describer.
// Parent levels are rendered through the same path with parent set, which
// suppresses the display string.
func (s *serializer) composite(value any, items []core.LogItem, parent bool) {
	desc := s.describer.Describe(value, parent)

	header := items
	if desc.HasDisplay {
		header = with(header, core.Item(quote(desc.Display), core.StyleStringValue))
	}
	header = with(header, core.Item(desc.TypeName, core.StyleType))

	id, hasID := identityOf(reflect.ValueOf(value))
	if hasID && s.isVisited(id) {
		s.log(with(header, recursionItem))
		return
	}

	if desc.IsEmpty() {
		s.log(header)
		return
	}

	s.group(header)
	if hasID {
		s.enter(id)
		defer s.leave(id)
	}

	for _, p := range desc.Parents {
		prefix := []core.LogItem{parentItem}
		if describe.IsComposite(p) {
			s.composite(p, prefix, true)
		} else {
			s.serialize(p, prefix)
		}
	}

	var statics []core.Member
	for _, m := range desc.Members {
		if m.Static {
			statics = append(statics, m)
			continue
		}
		s.member(m)
	}

	if len(statics) > 0 {
		s.group([]core.LogItem{staticItem})
		for _, m := range statics {
			s.member(m)
		}
		s.groupEnd()
	}

	s.groupEnd()
}

func (s *serializer) member(m core.Member) {
	prefix := make([]core.LogItem, 0, 2)
	if label := m.Visibility.String(); label != "" {
		prefix = append(prefix, core.Item(label, core.StyleNote))
	}
	prefix = append(prefix, core.Item(m.Name, core.StyleName))
	s.serialize(m.Value, prefix)
}

// identityOf returns the reference identity of v, if it has one.
func identityOf(v reflect.Value) (identity, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.UnsafePointer:
		if v.IsNil() {
			return identity{}, false
		}
		return identity{ptr: v.Pointer(), typ: v.Type()}, true
	case reflect.Slice:
		if v.Len() == 0 {
			return identity{}, false
		}
		return identity{ptr: v.Pointer(), typ: v.Type(), len: v.Len()}, true
	}
	return identity{}, false
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

func quote(s string) string {
	return "'" + s + "'"
}

// with returns a new slice holding items followed by more.
func with(items []core.LogItem, more ...core.LogItem) []core.LogItem {
	out := make([]core.LogItem, 0, len(items)+len(more))
	out = append(out, items...)
	return append(out, more...)
}
