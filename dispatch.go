package typedlog

import (
	"reflect"

	"github.com/rs/zerolog"
)

// HandlerFunc is a type-safe handler for values of type T.
// It receives the dispatched value and must not retain it past the call.
type HandlerFunc[T Loggable] func(val T)

// AnyHandlerFunc receives every dispatched value, type-erased.
// It is responsible for returning early on values it does not care about.
type AnyHandlerFunc func(val Loggable)

// Middleware is a type-safe wrapper around a HandlerFunc.
type Middleware[T Loggable] func(next HandlerFunc[T]) HandlerFunc[T]

// AnyMiddleware is a wrapper around an AnyHandlerFunc.
type AnyMiddleware func(next AnyHandlerFunc) AnyHandlerFunc

// Registrar accepts handler registrations. It is implemented by
// HandlerRegistry and Registry.
type Registrar interface {
	registerTyped(TypeID, AnyHandlerFunc)
	registerAny(AnyHandlerFunc)
	logger() *zerolog.Logger
}

// Dispatcher routes values to handlers. It is implemented by
// HandlerRegistry, Registry and their sealed counterparts.
type Dispatcher interface {
	rangeTyped(TypeID, func(AnyHandlerFunc))
	rangeAny(func(AnyHandlerFunc))
}

// Dispatch sends v to every typed handler registered for its exact dynamic
// type, in registration order, then to every catch-all handler, in
// registration order.
//
// Dispatch never reports failure: a registry that is unavailable behaves as
// if it had no handlers. Dispatching a nil interface value does nothing.
// Handlers run on the calling goroutine.
func Dispatch[T Loggable](d Dispatcher, v T) {
	val := Loggable(v)
	if val == nil {
		return
	}

	invoke := func(h AnyHandlerFunc) { h(val) }

	d.rangeTyped(TypeIDOf(val), invoke)
	d.rangeAny(invoke)
}

// RegisterTyped appends a handler for values of type T, with optional middleware.
//
// Handlers registered earlier for T are kept; all of them run, in the order
// they were registered. Middleware is applied outermost first.
//
// T must be a concrete type. Registering for an interface type, registering
// a nil handler, or registering on an unavailable registry is a no-op.
func RegisterTyped[T Loggable](reg Registrar, handler HandlerFunc[T], middleware ...Middleware[T]) {
	id := TypeFor[T]()
	if handler == nil {
		reg.logger().Warn().Stringer("type", id).Msg("typedlog: nil handler ignored")
		return
	}
	if id.t.Kind() == reflect.Interface {
		reg.logger().Warn().Stringer("type", id).Msg("typedlog: interface type can never match a dispatched value, handler ignored")
		return
	}

	reg.registerTyped(id, wrapTypedHandler(applyMiddleware(handler, middleware...)))
}

// RegisterAny appends a handler that receives every dispatched value,
// with optional middleware applied outermost first.
func RegisterAny(reg Registrar, handler AnyHandlerFunc, middleware ...AnyMiddleware) {
	if handler == nil {
		reg.logger().Warn().Msg("typedlog: nil handler ignored")
		return
	}

	final := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		final = middleware[i](final)
	}
	reg.registerAny(final)
}

func applyMiddleware[T Loggable](base HandlerFunc[T], middleware ...Middleware[T]) HandlerFunc[T] {
	final := base
	for i := len(middleware) - 1; i >= 0; i-- {
		final = middleware[i](final)
	}
	return final
}

// wrapTypedHandler erases T. The adapter does nothing when handed a value
// of any other type.
func wrapTypedHandler[T Loggable](h HandlerFunc[T]) AnyHandlerFunc {
	return func(v Loggable) {
		val, ok := As[T](v)
		if !ok {
			return
		}
		h(val)
	}
}

// MiddlewareFunc is a simple convenience function to create middleware
// from a predicate; the handler runs only when f returns true.
func MiddlewareFunc[T Loggable](f func(T) bool) Middleware[T] {
	return func(next HandlerFunc[T]) HandlerFunc[T] {
		return func(val T) {
			if !f(val) {
				return
			}
			next(val)
		}
	}
}
