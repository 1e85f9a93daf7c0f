package typedlog

import (
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

// typedRegistry maps a concrete type to the handlers registered for it,
// in registration order.
type typedRegistry struct {
	g guard
	h map[TypeID][]AnyHandlerFunc
}

func (r *typedRegistry) register(id TypeID, h AnyHandlerFunc) bool {
	return r.g.write(func() {
		if r.h == nil {
			r.h = make(map[TypeID][]AnyHandlerFunc)
		}
		r.h[id] = append(r.h[id], h)
	})
}

// each calls fn for every handler of id while holding the read lock.
func (r *typedRegistry) each(id TypeID, fn func(AnyHandlerFunc)) bool {
	return r.g.read(func() {
		for _, h := range r.h[id] {
			fn(h)
		}
	})
}

func (r *typedRegistry) snapshot() map[TypeID][]AnyHandlerFunc {
	var out map[TypeID][]AnyHandlerFunc
	r.g.read(func() {
		out = maps.Clone(r.h)
		for id, hs := range out {
			out[id] = slices.Clone(hs)
		}
	})
	return out
}

// catchAllRegistry holds the handlers that receive every dispatched value.
type catchAllRegistry struct {
	g guard
	h []AnyHandlerFunc
}

func (r *catchAllRegistry) register(h AnyHandlerFunc) bool {
	return r.g.write(func() {
		r.h = append(r.h, h)
	})
}

func (r *catchAllRegistry) each(fn func(AnyHandlerFunc)) bool {
	return r.g.read(func() {
		for _, h := range r.h {
			fn(h)
		}
	})
}

func (r *catchAllRegistry) snapshot() []AnyHandlerFunc {
	var out []AnyHandlerFunc
	r.g.read(func() {
		out = slices.Clone(r.h)
	})
	return out
}

// Option configures a HandlerRegistry or FactoryRegistry.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger used to report dropped registrations and
// unavailable registries. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// HandlerRegistry holds typed and catch-all handlers.
// Use NewHandlerRegistry() to create one, then RegisterTyped() and RegisterAny().
//
// The typed and catch-all registries are locked independently. Handlers run
// while the read lock of their registry is held, so a handler must not
// register handlers on the registry that is dispatching to it.
type HandlerRegistry struct {
	typed    typedRegistry
	catchAll catchAllRegistry
	log      *zerolog.Logger
}

var nopLogger = zerolog.Nop()

// NewHandlerRegistry creates a new empty HandlerRegistry.
func NewHandlerRegistry(opts ...Option) *HandlerRegistry {
	o := newOptions(opts)
	return &HandlerRegistry{log: &o.logger}
}

func (r *HandlerRegistry) registerTyped(id TypeID, h AnyHandlerFunc) {
	if !r.typed.register(id, h) {
		r.logger().Warn().Str("registry", "typed").Stringer("type", id).Msg("typedlog: registry unavailable, handler dropped")
		return
	}
	r.logger().Debug().Str("registry", "typed").Stringer("type", id).Msg("typedlog: handler registered")
}

func (r *HandlerRegistry) registerAny(h AnyHandlerFunc) {
	if !r.catchAll.register(h) {
		r.logger().Warn().Str("registry", "catch-all").Msg("typedlog: registry unavailable, handler dropped")
		return
	}
	r.logger().Debug().Str("registry", "catch-all").Msg("typedlog: handler registered")
}

func (r *HandlerRegistry) rangeTyped(id TypeID, fn func(AnyHandlerFunc)) {
	if !r.typed.each(id, fn) {
		r.logger().Debug().Str("registry", "typed").Stringer("type", id).Msg("typedlog: registry unavailable, no handlers run")
	}
}

func (r *HandlerRegistry) rangeAny(fn func(AnyHandlerFunc)) {
	if !r.catchAll.each(fn) {
		r.logger().Debug().Str("registry", "catch-all").Msg("typedlog: registry unavailable, no handlers run")
	}
}

func (r *HandlerRegistry) logger() *zerolog.Logger {
	if r.log == nil {
		return &nopLogger
	}
	return r.log
}

// Seal copies the registered handlers into a SealedHandlerRegistry.
// Registrations made after Seal are not visible to the sealed copy.
func (r *HandlerRegistry) Seal() *SealedHandlerRegistry {
	return &SealedHandlerRegistry{
		typed:    r.typed.snapshot(),
		catchAll: r.catchAll.snapshot(),
	}
}

// SealedHandlerRegistry is an immutable dispatcher with no lock overhead.
type SealedHandlerRegistry struct {
	typed    map[TypeID][]AnyHandlerFunc
	catchAll []AnyHandlerFunc
}

func (s *SealedHandlerRegistry) rangeTyped(id TypeID, fn func(AnyHandlerFunc)) {
	for _, h := range s.typed[id] {
		fn(h)
	}
}

func (s *SealedHandlerRegistry) rangeAny(fn func(AnyHandlerFunc)) {
	for _, h := range s.catchAll {
		fn(h)
	}
}

// Registry is the dispatch context most programs need: handlers plus the
// factories that turn encoded records back into Loggable values.
type Registry struct {
	*HandlerRegistry
	*FactoryRegistry
}

// NewRegistry creates an empty Registry. Options apply to both halves.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		HandlerRegistry: NewHandlerRegistry(opts...),
		FactoryRegistry: NewFactoryRegistry(opts...),
	}
}

// Seal freezes the current handlers and factories into a SealedRegistry,
// which dispatches without taking any lock.
func (r *Registry) Seal() *SealedRegistry {
	return &SealedRegistry{
		SealedHandlerRegistry: r.HandlerRegistry.Seal(),
		SealedFactoryRegistry: r.FactoryRegistry.Seal(),
	}
}

// SealedRegistry is a read-only Registry snapshot; it cannot take new handlers.
type SealedRegistry struct {
	*SealedHandlerRegistry
	*SealedFactoryRegistry
}
