package typedlog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrFactoryNotFound reports that no factory can rebuild values for a key.
var ErrFactoryNotFound = errors.New("factory not found")

// ErrDataTypeNotSupported reports encoded data of a type the factory does not decode.
var ErrDataTypeNotSupported = errors.New("data type not supported")

type factoryFuncAny func(data any) (Loggable, error)

type factoryRegistry interface {
	registerFactory(key any, factory factoryFuncAny)
}

type factoryResolver interface {
	getFactory(key any) (factoryFuncAny, bool)
}

type encodedDispatcher interface {
	factoryResolver
	Dispatcher
}

// RegisterFactory binds key to a decoder that rebuilds a T from encoded DATA.
//
// Keys are usually event names or enum values. A key whose dynamic value
// cannot be hashed is dropped. Unlike handlers, factories do not stack:
// the last registration for a key wins.
func RegisterFactory[KEY comparable, DATA any, T Loggable](reg factoryRegistry, key KEY, factory func(DATA) (T, error)) {
	reg.registerFactory(key, func(data any) (Loggable, error) {
		d, ok := data.(DATA)
		if !ok {
			var zero DATA
			return nil, fmt.Errorf("typedlog: %w: %T, got %T", ErrDataTypeNotSupported, zero, data)
		}
		return factory(d)
	})
}

// CreateLoggable rebuilds a Loggable from data with the factory bound to key,
// or fails with ErrFactoryNotFound.
func CreateLoggable[KEY comparable, DATA any](reg factoryResolver, key KEY, data DATA) (Loggable, error) {
	factory, ok := reg.getFactory(key)
	if !ok {
		return nil, fmt.Errorf("typedlog: %w for key %v", ErrFactoryNotFound, key)
	}
	return factory(data)
}

// DispatchEncoded creates a value with the factory registered for key and
// dispatches it. Only factory errors are returned; dispatch itself cannot fail.
func DispatchEncoded[KEY comparable, DATA any](reg encodedDispatcher, key KEY, data DATA) error {
	v, err := CreateLoggable(reg, key, data)
	if err != nil {
		return err
	}
	Dispatch(reg, v)
	return nil
}

// JSONFactory decodes JSON records into T.
//
//	RegisterFactory(reg, "garden", JSONFactory[Garden]())
func JSONFactory[T Loggable]() func([]byte) (T, error) {
	return func(data []byte) (T, error) {
		var v T
		return v, json.Unmarshal(data, &v)
	}
}

// TOMLFactory decodes TOML records into T.
func TOMLFactory[T Loggable]() func([]byte) (T, error) {
	return func(data []byte) (T, error) {
		var v T
		return v, toml.Unmarshal(data, &v)
	}
}

// YAMLFactory decodes YAML records into T.
func YAMLFactory[T Loggable]() func([]byte) (T, error) {
	return func(data []byte) (T, error) {
		var v T
		return v, yaml.Unmarshal(data, &v)
	}
}
