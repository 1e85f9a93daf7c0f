package typedlog

import "reflect"

// Loggable marks a type as eligible for dispatch.
//
// The method carries no behavior. Embed Marker to satisfy it.
type Loggable interface {
	Loggable()
}

// Marker implements Loggable and is meant to be embedded.
//
//	type Garden struct {
//		typedlog.Marker
//		FlowerAmount int
//	}
type Marker struct{}

// Loggable implements Loggable.
func (Marker) Loggable() {}

// TypeID identifies a concrete type at runtime. It is comparable and
// usable as a map key; two TypeIDs are equal iff they denote the same type.
type TypeID struct {
	t reflect.Type
}

// TypeFor returns the TypeID of T.
func TypeFor[T any]() TypeID {
	return TypeID{t: reflect.TypeFor[T]()}
}

// TypeIDOf returns the TypeID of the dynamic type of v.
// The zero TypeID is returned for a nil v.
func TypeIDOf(v Loggable) TypeID {
	return TypeID{t: reflect.TypeOf(v)}
}

// IsZero reports whether id does not denote any type.
func (id TypeID) IsZero() bool { return id.t == nil }

// Type returns the underlying reflect.Type, nil for the zero TypeID.
func (id TypeID) Type() reflect.Type { return id.t }

func (id TypeID) String() string {
	if id.t == nil {
		return "<nil>"
	}
	return id.t.String()
}

// As attempts to recover the concrete T from v. It never panics.
//
// Catch-all handlers use it to return early on values they do not care about:
//
//	typedlog.PushAny(func(v typedlog.Loggable) {
//		g, ok := typedlog.As[Garden](v)
//		if !ok {
//			return
//		}
//		...
//	})
func As[T Loggable](v Loggable) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
