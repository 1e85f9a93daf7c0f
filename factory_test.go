package typedlog_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/struct0x/typedlog"
)

type UserCreated struct {
	typedlog.Marker `json:"-" toml:"-" yaml:"-"`

	ID   string `json:"id" toml:"id" yaml:"id"`
	Name string `json:"name" toml:"name" yaml:"name"`
}

func TestFactory_Create(t *testing.T) {
	reg := typedlog.NewFactoryRegistry()

	typedlog.RegisterFactory(reg, "user_created", func(data []byte) (UserCreated, error) {
		var e UserCreated
		return e, json.Unmarshal(data, &e)
	})

	data := []byte(`{"id": "123", "name": "John"}`)

	t.Run("standard_registry", func(t *testing.T) {
		result, err := typedlog.CreateLoggable(reg, "user_created", data)
		require.NoError(t, err)

		user, ok := typedlog.As[UserCreated](result)
		require.True(t, ok, "expected UserCreated, got %T", result)
		assert.Equal(t, "123", user.ID)
		assert.Equal(t, "John", user.Name)
	})

	t.Run("sealed_registry", func(t *testing.T) {
		result, err := typedlog.CreateLoggable(reg.Seal(), "user_created", data)
		require.NoError(t, err)
		assert.IsType(t, UserCreated{}, result)
	})
}

func TestFactoryNotFound(t *testing.T) {
	reg := typedlog.NewFactoryRegistry()

	_, err := typedlog.CreateLoggable(reg, "unknown", []byte{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, typedlog.ErrFactoryNotFound), "got %v", err)
}

func TestFactoryReplacesExisting(t *testing.T) {
	reg := typedlog.NewRegistry()

	typedlog.RegisterFactory(reg, "event", func([]byte) (UserCreated, error) {
		return UserCreated{ID: "first"}, nil
	})
	typedlog.RegisterFactory(reg, "event", func([]byte) (UserCreated, error) {
		return UserCreated{ID: "second"}, nil
	})

	result, err := typedlog.CreateLoggable(reg.Seal(), "event", []byte{})
	require.NoError(t, err)
	assert.Equal(t, "second", result.(UserCreated).ID)
}

func TestFactoryDifferentKeyTypes(t *testing.T) {
	reg := typedlog.NewRegistry()

	typedlog.RegisterFactory(reg, "string_key", func([]byte) (UserCreated, error) {
		return UserCreated{ID: "from_string"}, nil
	})
	typedlog.RegisterFactory(reg, 42, func([]byte) (Garden, error) {
		return Garden{FlowerAmount: 42}, nil
	})

	sealed := reg.Seal()

	result1, err := typedlog.CreateLoggable(sealed, "string_key", []byte{})
	require.NoError(t, err)
	assert.Equal(t, "from_string", result1.(UserCreated).ID)

	result2, err := typedlog.CreateLoggable(sealed, 42, []byte{})
	require.NoError(t, err)
	assert.Equal(t, 42, result2.(Garden).FlowerAmount)
}

func TestFactoryWrongDataType(t *testing.T) {
	reg := typedlog.NewRegistry()
	typedlog.RegisterFactory(reg, "user", typedlog.JSONFactory[UserCreated]())

	// string instead of []byte
	_, err := typedlog.CreateLoggable(reg.Seal(), "user", "not bytes")
	require.Error(t, err)
	assert.ErrorIs(t, err, typedlog.ErrDataTypeNotSupported)
}

func TestDecoderFactories(t *testing.T) {
	tests := []struct {
		name    string
		factory func([]byte) (UserCreated, error)
		data    string
	}{
		{"json", typedlog.JSONFactory[UserCreated](), `{"id": "u1", "name": "Alice"}`},
		{"toml", typedlog.TOMLFactory[UserCreated](), "id = \"u1\"\nname = \"Alice\"\n"},
		{"yaml", typedlog.YAMLFactory[UserCreated](), "id: u1\nname: Alice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := typedlog.NewRegistry()
			typedlog.RegisterFactory(reg, tt.name, tt.factory)

			result, err := typedlog.CreateLoggable(reg, tt.name, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, UserCreated{ID: "u1", Name: "Alice"}, result)
		})
	}
}

func TestDecoderFactories_InvalidData(t *testing.T) {
	for name, f := range map[string]func([]byte) (UserCreated, error){
		"json": typedlog.JSONFactory[UserCreated](),
		"toml": typedlog.TOMLFactory[UserCreated](),
		"yaml": typedlog.YAMLFactory[UserCreated](),
	} {
		_, err := f([]byte("{{not valid"))
		assert.Error(t, err, name)
	}
}

func TestDispatchEncoded(t *testing.T) {
	reg := typedlog.NewRegistry()
	rec := &recorder{}

	typedlog.RegisterFactory(reg, "garden", typedlog.JSONFactory[Garden]())
	typedlog.RegisterTyped(reg, func(g Garden) {
		rec.add("typed:" + strconv.Itoa(g.FlowerAmount))
	})
	typedlog.RegisterAny(reg, func(typedlog.Loggable) { rec.add("any") })

	require.NoError(t, typedlog.DispatchEncoded(reg, "garden", []byte(`{"flower_amount": 7}`)))
	require.NoError(t, typedlog.DispatchEncoded(reg.Seal(), "garden", []byte(`{"flower_amount": 3}`)))

	assert.Equal(t, []string{"typed:7", "any", "typed:3", "any"}, rec.get())

	err := typedlog.DispatchEncoded(reg, "missing", []byte(`{}`))
	assert.ErrorIs(t, err, typedlog.ErrFactoryNotFound)

	err = typedlog.DispatchEncoded(reg, "garden", []byte(`not json`))
	assert.Error(t, err)
	assert.Len(t, rec.get(), 4, "nothing dispatched on factory errors")
}
