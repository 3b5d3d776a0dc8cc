package consoledump

import (
	"reflect"

	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/internal/describe"
)

// RegisterStatics registers fn as the source of the static members of T.
// Static members are shown in a nested "static" group of every dumped T,
// and only of T: types embedding T do not repeat them.
//
//	var instances atomic.Int64
//
//	consoledump.RegisterStatics[Pool](func() []core.Member {
//	    return []core.Member{{Name: "instances", Visibility: core.VisibilityPrivate, Value: instances.Load()}}
//	})
//
// fn runs on every dump of a T. Passing nil removes the registration.
func RegisterStatics[T any](fn func() []core.Member) {
	describe.RegisterStatics(reflect.TypeOf((*T)(nil)).Elem(), fn)
}
