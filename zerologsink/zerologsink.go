// Package zerologsink adapts a zerolog.Logger into typedlog handlers.
package zerologsink

import (
	"github.com/rs/zerolog"

	"github.com/struct0x/typedlog"
)

const defaultMessage = "loggable"

// Option configures the handlers built by New and Typed.
type Option func(*config)

type config struct {
	level   zerolog.Level
	message string
}

// WithLevel sets the level events are written at. Defaults to Info.
func WithLevel(l zerolog.Level) Option { return func(c *config) { c.level = l } }

// WithMessage sets the event message. Defaults to "loggable".
func WithMessage(msg string) Option { return func(c *config) { c.message = msg } }

// New returns a catch-all handler that writes every dispatched value to l.
// Values implementing zerolog.LogObjectMarshaler are encoded with it,
// anything else goes through Interface.
func New(l zerolog.Logger, opts ...Option) typedlog.AnyHandlerFunc {
	c := config{level: zerolog.InfoLevel, message: defaultMessage}
	for _, fn := range opts {
		fn(&c)
	}

	return func(v typedlog.Loggable) {
		e := l.WithLevel(c.level)
		if e == nil {
			return
		}
		e = e.Stringer("type", typedlog.TypeIDOf(v))
		if m, ok := v.(zerolog.LogObjectMarshaler); ok {
			e = e.Object("value", m)
		} else {
			e = e.Interface("value", v)
		}
		e.Msg(c.message)
	}
}

// Typed is New for a single type T.
func Typed[T typedlog.Loggable](l zerolog.Logger, opts ...Option) typedlog.HandlerFunc[T] {
	h := New(l, opts...)
	return func(v T) { h(v) }
}
