// Package zapsink adapts a *zap.Logger into typedlog handlers.
package zapsink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/struct0x/typedlog"
)

const defaultMessage = "loggable"

// Option configures the handlers built by New and Typed.
type Option func(*config)

type config struct {
	level   zapcore.Level
	message string
}

// WithLevel sets the level entries are written at. Defaults to Info.
func WithLevel(l zapcore.Level) Option { return func(c *config) { c.level = l } }

// WithMessage sets the entry message. Defaults to "loggable".
func WithMessage(msg string) Option { return func(c *config) { c.message = msg } }

func newConfig(opts []Option) config {
	c := config{level: zapcore.InfoLevel, message: defaultMessage}
	for _, fn := range opts {
		fn(&c)
	}
	return c
}

// New returns a catch-all handler that writes every dispatched value to l,
// with the value's type under "type" and the value itself under "value".
// Values implementing zapcore.ObjectMarshaler are encoded with it.
func New(l *zap.Logger, opts ...Option) typedlog.AnyHandlerFunc {
	c := newConfig(opts)
	return func(v typedlog.Loggable) {
		ce := l.Check(c.level, c.message)
		if ce == nil {
			return
		}
		ce.Write(fields(v)...)
	}
}

// Typed is New for a single type T.
func Typed[T typedlog.Loggable](l *zap.Logger, opts ...Option) typedlog.HandlerFunc[T] {
	h := New(l, opts...)
	return func(v T) { h(v) }
}

func fields(v typedlog.Loggable) []zap.Field {
	typ := zap.Stringer("type", typedlog.TypeIDOf(v))
	if m, ok := v.(zapcore.ObjectMarshaler); ok {
		return []zap.Field{typ, zap.Object("value", m)}
	}
	return []zap.Field{typ, zap.Any("value", v)}
}
