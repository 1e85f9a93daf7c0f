// Package typedlog is a type-dispatching logging registry for Go.
// Handlers are registered for a concrete type, or for every Loggable value,
// and Dispatch routes a value to all handlers that match it.
package typedlog
