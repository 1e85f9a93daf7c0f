package typedlog

import "sync"

var defaultRegistry = sync.OnceValue(func() *Registry { return NewRegistry() })

// Default returns the process-wide Registry used by Push, PushAny and Log.
// It is created on first use and lives for the rest of the process.
func Default() *Registry { return defaultRegistry() }

// Push appends a handler for T to the default registry.
// It never overrides handlers pushed before it.
func Push[T Loggable](handler HandlerFunc[T], middleware ...Middleware[T]) {
	RegisterTyped(Default(), handler, middleware...)
}

// PushAny appends a catch-all handler to the default registry.
func PushAny(handler AnyHandlerFunc, middleware ...AnyMiddleware) {
	RegisterAny(Default(), handler, middleware...)
}

// Log dispatches v through the default registry.
func Log[T Loggable](v T) {
	Dispatch(Default(), v)
}
