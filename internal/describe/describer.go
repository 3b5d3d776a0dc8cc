// Package describe turns composite values into core.Description values.
//
// Structs are inspected by reflection: exported fields are public members,
// unexported fields are private members and embedded structs are parent
// levels. Types that implement core.Describer describe themselves. Static
// members come from RegisterStatics.
package describe

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/selflog"
)

// Describer builds descriptions of composite values.
type Describer struct {
	typeCache *typeCache
}

// New creates a describer backed by the shared type cache.
func New() *Describer {
	return &Describer{typeCache: globalTypeCache}
}

// IsComposite reports whether value is rendered as a composite value: a struct,
// a non-nil pointer to a struct, or a core.Describer.
func IsComposite(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.(core.Describer); ok {
		return true
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.Kind() == reflect.Struct
}

// Describe returns the description of value. For parent levels the display
// string is never looked up.
func (d *Describer) Describe(value any, parent bool) core.Description {
	if desc, ok := describeCustom(value); ok {
		if desc.TypeName == "" {
			desc.TypeName = TypeName(derefType(reflect.TypeOf(value)))
		}
		if parent {
			desc.Display, desc.HasDisplay = "", false
		}
		return desc
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return core.Description{TypeName: TypeName(reflect.TypeOf(value))}
	}

	td := d.typeCache.getOrCreate(v.Type())
	desc := core.Description{TypeName: td.TypeName}
	if !parent {
		desc.Display, desc.HasDisplay = Display(value)
	}

	v = addressable(v)
	for _, field := range td.Fields {
		fv := readable(v.Field(field.Index))
		if field.IsEmbedded {
			if p, ok := parentValue(fv); ok {
				desc.Parents = append(desc.Parents, p)
				continue
			}
		}

		visibility := core.VisibilityPrivate
		if field.IsExported {
			visibility = core.VisibilityPublic
		}
		desc.Members = append(desc.Members, core.Member{
			Name:       field.Name,
			Visibility: visibility,
			Value:      fv.Interface(),
		})
	}

	desc.Members = append(desc.Members, statics(td.Type)...)
	return desc
}

// describeCustom calls ConsoleDescription on values that implement core.Describer.
func describeCustom(value any) (desc core.Description, ok bool) {
	describer, ok := value.(core.Describer)
	if !ok {
		return core.Description{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[describe] ConsoleDescription panicked: %v (type=%T)", r, value)
			}
			desc, ok = core.Description{}, false
		}
	}()

	return describer.ConsoleDescription(), true
}

// statics returns the registered static members of t, marked static.
func statics(t reflect.Type) (members []core.Member) {
	fn, ok := staticsFor(t)
	if !ok {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[describe] statics function panicked: %v (type=%s)", r, t)
			}
			members = nil
		}
	}()

	for _, m := range fn() {
		m.Static = true
		members = append(members, m)
	}
	return members
}

// Display returns the display string of value, if it exposes one through
// fmt.Stringer or error. A panicking method counts as no display string.
func Display(value any) (s string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[describe] string conversion panicked: %v (type=%T)", r, value)
			}
			s, ok = "", false
		}
	}()

	switch x := value.(type) {
	case fmt.Stringer:
		return x.String(), true
	case error:
		return x.Error(), true
	}

	// Struct values reach pointer receiver methods through an addressable copy.
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Struct {
		return "", false
	}
	pt := reflect.PointerTo(v.Type())
	if !pt.Implements(stringerType) && !pt.Implements(errorType) {
		return "", false
	}
	return Display(addressable(v).Addr().Interface())
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// TypeName returns the package-qualified name of t, e.g.
// "github.com/willibrandon/consoledump/core.Description". Predeclared and
// unnamed types use their Go syntax, e.g. "int" or "[]string".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// parentValue reports whether an embedded field holds a parent level.
func parentValue(fv reflect.Value) (any, bool) {
	switch fv.Kind() {
	case reflect.Struct:
		return fv.Interface(), true
	case reflect.Pointer:
		if !fv.IsNil() && fv.Elem().Kind() == reflect.Struct {
			return fv.Interface(), true
		}
	}
	return nil, false
}

// addressable returns v, or an addressable copy of v, so unexported fields can be read.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// readable lifts the read-only flag from values reached through unexported fields.
func readable(f reflect.Value) reflect.Value {
	if f.CanInterface() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}
