package describe

import (
	"reflect"
	"sync"

	"github.com/willibrandon/consoledump/core"
)

// typeDescriptor caches reflection information about a struct type.
type typeDescriptor struct {
	Type     reflect.Type
	TypeName string
	Fields   []fieldDescriptor
}

// fieldDescriptor caches information about a struct field.
type fieldDescriptor struct {
	Index      int
	Name       string
	IsExported bool
	IsEmbedded bool
}

// typeCache is a thread-safe cache for type descriptors.
type typeCache struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*typeDescriptor
}

// newTypeCache creates a new type cache.
func newTypeCache() *typeCache {
	return &typeCache{
		cache: make(map[reflect.Type]*typeDescriptor),
	}
}

// get retrieves a type descriptor from the cache.
func (tc *typeCache) get(t reflect.Type) (*typeDescriptor, bool) {
	tc.mu.RLock()
	desc, ok := tc.cache[t]
	tc.mu.RUnlock()
	return desc, ok
}

// getOrCreate retrieves a type descriptor or creates it if not cached.
func (tc *typeCache) getOrCreate(t reflect.Type) *typeDescriptor {
	if desc, ok := tc.get(t); ok {
		return desc
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Double-check after acquiring write lock
	if desc, ok := tc.cache[t]; ok {
		return desc
	}

	desc := tc.createDescriptor(t)
	tc.cache[t] = desc
	return desc
}

// createDescriptor creates a type descriptor for a struct type.
func (tc *typeCache) createDescriptor(t reflect.Type) *typeDescriptor {
	desc := &typeDescriptor{
		Type:     t,
		TypeName: TypeName(t),
	}

	if t.Kind() != reflect.Struct {
		return desc
	}

	desc.Fields = make([]fieldDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Blank fields hold no state.
		if field.Name == "_" {
			continue
		}

		tag := field.Tag.Get("dump")
		if tag == "-" {
			continue
		}

		fieldDesc := fieldDescriptor{
			Index:      i,
			Name:       field.Name,
			IsExported: field.IsExported(),
			IsEmbedded: field.Anonymous,
		}
		if tag != "" {
			fieldDesc.Name = tag
		}

		desc.Fields = append(desc.Fields, fieldDesc)
	}

	return desc
}

// Global type cache instance
var globalTypeCache = newTypeCache()

// staticRegistry maps a struct type to the function reporting its static members.
var staticRegistry sync.Map // map[reflect.Type]func() []core.Member

// RegisterStatics registers fn as the source of static members for t. Pointer
// types are registered for their element type. A nil fn removes the registration.
func RegisterStatics(t reflect.Type, fn func() []core.Member) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return
	}
	if fn == nil {
		staticRegistry.Delete(t)
		return
	}
	staticRegistry.Store(t, fn)
}

func staticsFor(t reflect.Type) (func() []core.Member, bool) {
	fn, ok := staticRegistry.Load(t)
	if !ok {
		return nil, false
	}
	return fn.(func() []core.Member), true
}
