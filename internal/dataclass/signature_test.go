package dataclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramKinds(sig *Signature) map[string]ParamKind {
	kinds := make(map[string]ParamKind, sig.Len())
	for _, p := range sig.Parameters() {
		kinds[p.Name] = p.Kind
	}
	return kinds
}

func TestBuildSignature_PartitionsKeywordOnlyLast(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("v_i64", "int"),
		Declare("v_f32", "float", MustField(WithDefault(8.0), WithKwOnly(true))),
		Annotate("v_i32", "int"),
		Declare("v_str", "str", MustField(WithDefault("default"), WithKwOnly(true))),
		Annotate("v_bool", "bool"),
	})

	sig, err := BuildSignature("T", fs, SignatureOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"v_i64", "v_i32", "v_bool", "v_f32", "v_str"}, sig.Names())
	assert.Equal(t, 3, sig.PositionalCount())
	assert.Equal(t, `(v_i64, v_i32, v_bool, *, v_f32=8, v_str="default")`, sig.String())

	p, ok := sig.Lookup("v_f32")
	require.True(t, ok)
	assert.Equal(t, KeywordOnly, p.Kind)
	assert.False(t, p.Required())
	d, ok := p.Default()
	assert.True(t, ok)
	assert.Equal(t, 8.0, d)
	assert.Equal(t, "float", p.Type)
}

func TestBuildSignature_NonDefaultFollowsDefault(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("a", "int"),
		Assign("b", "int", 1),
		Annotate("c", "int"),
	})

	sig, err := BuildSignature("T", fs, SignatureOptions{})
	assert.Nil(t, sig)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrDefaultOrder, cfgErr.Code)
	assert.Equal(t, "c", cfgErr.Field)
	assert.Contains(t, err.Error(), "non-default argument")
	assert.Contains(t, err.Error(), "follows default argument")
}

func TestBuildSignature_FactoryCountsAsDefault(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Declare("items", "list", MustField(WithDefaultFactory(func() any { return []int{} }))),
		Annotate("name", "str"),
	})

	_, err := BuildSignature("T", fs, SignatureOptions{})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBuildSignature_KeywordOnlyMixesDefaults(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("a", "int"),
		KWOnly,
		Assign("b", "int", 1),
		Annotate("c", "int"),
		Declare("d", "list", MustField(WithDefaultFactory(func() any { return []int{} }))),
	})

	sig, err := BuildSignature("T", fs, SignatureOptions{})
	require.NoError(t, err)
	assert.Equal(t, "(a, *, b=1, c, d=<factory>)", sig.String())

	c, _ := sig.Lookup("c")
	assert.True(t, c.Required())
	d, _ := sig.Lookup("d")
	assert.True(t, d.HasFactory())
	_, ok := d.Default()
	assert.False(t, ok)
}

func TestBuildSignature_ClassKwOnlyForcesEveryParameter(t *testing.T) {
	base := fieldSetOf(t, []Member{Annotate("x", "int")})
	fs, err := Collect("T", []Member{
		Declare("y", "int", MustField(WithKwOnly(false))),
		Annotate("z", "int"),
		Assign("w", "int", 100),
	}, []*FieldSet{base}, true)
	require.NoError(t, err)

	sig, err := BuildSignature("T", fs, SignatureOptions{KwOnly: true})
	require.NoError(t, err)

	assert.Equal(t, 0, sig.PositionalCount())
	for name, kind := range paramKinds(sig) {
		assert.Equal(t, KeywordOnly, kind, name)
	}
	assert.Equal(t, "(*, x, y, z, w=100)", sig.String())
}

func TestBuildSignature_InitFalseExcluded(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("a", "int"),
		Declare("cache", "dict", MustField(WithInit(false), WithDefaultFactory(func() any { return map[string]any{} }))),
		Annotate("b", "int"),
	})

	sig, err := BuildSignature("T", fs, SignatureOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sig.Names())
	assert.False(t, sig.Has("cache"))
}

func TestBuildSignature_InitSubset(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("required_field", "int"),
		Assign("optional_field", "int", -1),
		Assign("note", "str", "py-default"),
	})

	sig, err := BuildSignature("T", fs, SignatureOptions{InitSubset: []string{"required_field"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"required_field"}, sig.Names())
	assert.False(t, sig.Has("optional_field"))
	assert.False(t, sig.Has("note"))
}

func TestBuildSignature_InitSubsetKeepsDeclarationOrder(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("a", "int"),
		Annotate("b", "int"),
		Annotate("c", "int"),
	})

	sig, err := BuildSignature("T", fs, SignatureOptions{InitSubset: []string{"c", "a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, sig.Names())
}

func TestBuildSignature_EmptySubset(t *testing.T) {
	fs := fieldSetOf(t, []Member{Assign("a", "int", 1)})

	sig, err := BuildSignature("T", fs, SignatureOptions{InitSubset: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 0, sig.Len())
	assert.Equal(t, "()", sig.String())
}

func TestBuildSignature_InitSubsetErrors(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("a", "int"),
		Declare("hidden", "int", MustField(WithInit(false), WithDefault(0))),
	})

	tests := []struct {
		name   string
		subset []string
		code   string
	}{
		{name: "unknown field", subset: []string{"missing"}, code: ErrUnknownSubsetField},
		{name: "init false field", subset: []string{"hidden"}, code: ErrSubsetNonInitField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSignature("T", fs, SignatureOptions{InitSubset: tt.subset})
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.code, cfgErr.Code)
		})
	}
}

func TestParameter_String(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Assign("flag", "bool", true),
		Assign("none", "any", nil),
		Assign("label", "str", "x"),
	})
	sig, err := BuildSignature("T", fs, SignatureOptions{})
	require.NoError(t, err)
	assert.Equal(t, `(flag=True, none=None, label="x")`, sig.String())
	assert.Equal(t, "positional_or_keyword", PositionalOrKeyword.String())
	assert.Equal(t, "keyword_only", KeywordOnly.String())
}

func TestParameter_DefaultString(t *testing.T) {
	fs := fieldSetOf(t, []Member{
		Annotate("a", "int"),
		Assign("b", "int", 1),
		Declare("c", "list", MustField(WithDefaultFactory(func() any { return []any{} }))),
	})
	sig, err := BuildSignature("T", fs, SignatureOptions{})
	require.NoError(t, err)

	want := map[string]string{"a": "", "b": "1", "c": "<factory>"}
	for _, p := range sig.Parameters() {
		assert.Equal(t, want[p.Name], p.DefaultString(), p.Name)
	}
}
