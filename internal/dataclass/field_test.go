package dataclass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField_KwOnly(t *testing.T) {
	f1, err := NewField(WithKwOnly(true))
	require.NoError(t, err)
	assert.Equal(t, KwOnlyTrue, f1.KwOnly())

	f2, err := NewField(WithKwOnly(false))
	require.NoError(t, err)
	assert.Equal(t, KwOnlyFalse, f2.KwOnly())

	f3, err := NewField()
	require.NoError(t, err)
	assert.Equal(t, KwOnlyUnset, f3.KwOnly())
	assert.False(t, f3.KwOnly().IsSet())
	assert.NotEqual(t, KwOnlyTrue, f3.KwOnly())
	assert.NotEqual(t, KwOnlyFalse, f3.KwOnly())
}

func TestNewField_DefaultWrappedAsFactory(t *testing.T) {
	f, err := NewField(WithDefault(42), WithKwOnly(true))
	require.NoError(t, err)

	assert.Equal(t, KwOnlyTrue, f.KwOnly())
	require.NotNil(t, f.DefaultFactory())
	assert.Equal(t, 42, f.DefaultFactory()())
	assert.True(t, f.HasDefault())
	assert.False(t, f.HasFactory())

	v, ok := f.Default()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestNewField_NilDefaultIsADefault(t *testing.T) {
	f, err := NewField(WithDefault(nil))
	require.NoError(t, err)

	assert.True(t, f.HasDefault())
	require.NotNil(t, f.DefaultFactory())
	assert.Nil(t, f.DefaultFactory()())
}

func TestNewField_Factory(t *testing.T) {
	calls := 0
	f, err := NewField(WithDefaultFactory(func() any {
		calls++
		return []string{}
	}))
	require.NoError(t, err)

	assert.True(t, f.HasDefault())
	assert.True(t, f.HasFactory())
	_, ok := f.Default()
	assert.False(t, ok)

	f.DefaultFactory()()
	f.DefaultFactory()()
	assert.Equal(t, 2, calls)
}

func TestNewField_Required(t *testing.T) {
	f, err := NewField()
	require.NoError(t, err)

	assert.False(t, f.HasDefault())
	assert.Nil(t, f.DefaultFactory())
	assert.True(t, f.Init())
	assert.Empty(t, f.Name())
}

func TestNewField_ConflictingDefaults(t *testing.T) {
	f, err := NewField(WithDefault(1), WithDefaultFactory(func() any { return 2 }))
	assert.Nil(t, f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, errors.Is(err, ErrType))

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrConflictingDefaults, cfgErr.Code)
}

func TestMustField_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustField(WithDefault(1), WithDefaultFactory(func() any { return 2 }))
	})
}

func TestNewField_InitAndMetadata(t *testing.T) {
	md := map[string]any{"doc": "a note"}
	f, err := NewField(WithInit(false), WithMetadata(md))
	require.NoError(t, err)

	md["doc"] = "changed"

	assert.False(t, f.Init())
	v, ok := f.Metadata("doc")
	require.True(t, ok)
	assert.Equal(t, "a note", v)

	copied := f.MetadataMap()
	assert.Equal(t, map[string]any{"doc": "a note"}, copied)
	copied["doc"] = "mutated"
	v, _ = f.Metadata("doc")
	assert.Equal(t, "a note", v)

	bare := MustField()
	assert.Nil(t, bare.MetadataMap())

	_, ok = f.Metadata("missing")
	assert.False(t, ok)
}

func TestKwOnly_String(t *testing.T) {
	assert.Equal(t, "unset", KwOnlyUnset.String())
	assert.Equal(t, "true", KwOnlyTrue.String())
	assert.Equal(t, "false", KwOnlyFalse.String())
	assert.Equal(t, KwOnlyTrue, KwOnlyOf(true))
	assert.Equal(t, KwOnlyFalse, KwOnlyOf(false))
}

func TestKWOnlyMarker(t *testing.T) {
	assert.True(t, KWOnly.IsKWOnlyMarker())
	assert.False(t, Annotate("x", "int").IsKWOnlyMarker())
	assert.Equal(t, "x", Annotate("x", "int").Name())
}
