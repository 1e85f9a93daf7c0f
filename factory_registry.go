package typedlog

import (
	"maps"

	"github.com/rs/zerolog"
)

// FactoryRegistry holds factories that rebuild Loggable values from encoded data.
// Use NewFactoryRegistry() to create one, then RegisterFactory().
type FactoryRegistry struct {
	g         guard
	factories map[any]factoryFuncAny
	log       *zerolog.Logger
}

// NewFactoryRegistry creates a new empty FactoryRegistry.
func NewFactoryRegistry(opts ...Option) *FactoryRegistry {
	o := newOptions(opts)
	return &FactoryRegistry{
		factories: make(map[any]factoryFuncAny),
		log:       &o.logger,
	}
}

func (r *FactoryRegistry) factoryLogger() *zerolog.Logger {
	if r.log == nil {
		return &nopLogger
	}
	return r.log
}

// registerFactory drops keys that cannot be hashed; they would panic inside
// the write lock and leave the registry unusable.
func (r *FactoryRegistry) registerFactory(key any, factory factoryFuncAny) {
	if !hashable(key) {
		r.factoryLogger().Warn().Str("registry", "factory").Type("key", key).Msg("typedlog: unhashable factory key, factory dropped")
		return
	}

	ok := r.g.write(func() {
		if r.factories == nil {
			r.factories = make(map[any]factoryFuncAny)
		}
		r.factories[key] = factory
	})
	if !ok {
		r.factoryLogger().Warn().Str("registry", "factory").Interface("key", key).Msg("typedlog: registry unavailable, factory dropped")
	}
}

// getFactory treats an unavailable registry as having no factories.
func (r *FactoryRegistry) getFactory(key any) (f factoryFuncAny, ok bool) {
	if !hashable(key) {
		return nil, false
	}
	r.g.read(func() {
		f, ok = r.factories[key]
	})
	return f, ok
}

// Seal copies the registered factories into a SealedFactoryRegistry.
func (r *FactoryRegistry) Seal() *SealedFactoryRegistry {
	var factories map[any]factoryFuncAny
	r.g.read(func() {
		factories = maps.Clone(r.factories)
	})
	return &SealedFactoryRegistry{factories: factories}
}

// SealedFactoryRegistry is an immutable factory resolver.
type SealedFactoryRegistry struct {
	factories map[any]factoryFuncAny
}

func (s *SealedFactoryRegistry) getFactory(key any) (factoryFuncAny, bool) {
	if !hashable(key) {
		return nil, false
	}
	f, ok := s.factories[key]
	return f, ok
}

// hashable reports whether key can be used in a map[any]. A comparable
// static type may still hold an interface whose dynamic value is a slice,
// map or func, so the check is done by hashing it once.
func hashable(key any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = map[any]struct{}{key: {}}
	return true
}
