package render

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/internal/describe"
)

// keyItem returns the token for a collection key. String keys are quoted,
// everything else is shown in its native text form.
func keyItem(key reflect.Value) core.LogItem {
	for key.Kind() == reflect.Interface {
		if key.IsNil() {
			return core.Item("null", core.StyleValue)
		}
		key = key.Elem()
	}

	switch key.Kind() {
	case reflect.Invalid:
		return core.Item("null", core.StyleValue)
	case reflect.String:
		return core.Item(quote(key.String()), core.StyleStringValue)
	case reflect.Bool:
		return core.Item(strconv.FormatBool(key.Bool()), core.StyleValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return core.Item(strconv.FormatInt(key.Int(), 10), core.StyleValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return core.Item(strconv.FormatUint(key.Uint(), 10), core.StyleValue)
	case reflect.Float32, reflect.Float64:
		return core.Item(strconv.FormatFloat(key.Float(), 'g', -1, key.Type().Bits()), core.StyleValue)
	}
	return core.Item(keyText(key), core.StyleValue)
}

// keyText formats keys of other kinds with fmt. A panicking String method
// falls back to the type name.
func keyText(key reflect.Value) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = describe.TypeName(key.Type())
		}
	}()
	if !key.CanInterface() {
		return describe.TypeName(key.Type())
	}
	return fmt.Sprint(key.Interface())
}

// mapEntry is a key and its value, read together while iterating a map.
type mapEntry struct {
	key, value reflect.Value
}

// sortedEntries returns the entries of m in a deterministic order.
//
// Keys of the same type are ordered by value: numbers numerically with NaN
// first, strings lexically, false before true, pointers and channels by
// address, structs and arrays element by element. Keys of different dynamic
// types, as found in maps with interface keys, are ordered by kind (nil, bool,
// numbers, strings, everything else) and then by type name.
//
// Values are taken from the iterator rather than looked up by key, since a
// NaN key can never be found again.
func sortedEntries(m reflect.Value) []mapEntry {
	entries := make([]mapEntry, 0, m.Len())
	iter := m.MapRange()
	for iter.Next() {
		entries = append(entries, mapEntry{key: iter.Key(), value: iter.Value()})
	}
	slices.SortStableFunc(entries, func(a, b mapEntry) int {
		return compareKeys(a.key, b.key)
	})
	return entries
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface || b.Kind() == reflect.Interface {
		return compareInterfaces(a, b)
	}

	if a.Type() != b.Type() {
		if c := cmp.Compare(kindRank(a.Kind()), kindRank(b.Kind())); c != 0 {
			return c
		}
		return cmp.Compare(a.Type().String(), b.Type().String())
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		if c := cmp.Compare(real(ac), real(bc)); c != 0 {
			return c
		}
		return cmp.Compare(imag(ac), imag(bc))
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case a.Bool():
			return 1
		default:
			return -1
		}
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return cmp.Compare(a.Pointer(), b.Pointer())
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if c := compareKeys(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if c := compareKeys(a.Index(i), b.Index(i)); c != 0 {
				return c
			}
		}
		return 0
	}
	return 0
}

func compareInterfaces(a, b reflect.Value) int {
	aNil := a.Kind() == reflect.Interface && a.IsNil()
	bNil := b.Kind() == reflect.Interface && b.IsNil()
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	return compareKeys(a, b)
}

func kindRank(k reflect.Kind) int {
	switch k {
	case reflect.Bool:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return 2
	case reflect.String:
		return 3
	default:
		return 4
	}
}
