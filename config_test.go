// FILE: lixenwraith/stanflags/config_test.go
package stanflags

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptionsCreation tests construction defaults and functional options
func TestOptionsCreation(t *testing.T) {
	t.Run("EmptyDefaults", func(t *testing.T) {
		o := New()
		require.NotNil(t, o)
		assert.Equal(t, 0, o.StancOptions().Len())
		assert.Equal(t, 0, o.CppOptions().Len())
		header, ok := o.UserHeader()
		assert.False(t, ok)
		assert.Empty(t, header)
		assert.Empty(t, o.Compose())
	})

	t.Run("WithAllOptions", func(t *testing.T) {
		stanc := NewValues().Set("O", Int(1))
		cpp := NewValues().Set("STAN_THREADS", String("TRUE"))
		o := New(WithStancOptions(stanc), WithCppOptions(cpp), WithUserHeader("h.hpp"))

		assert.Same(t, stanc, o.StancOptions())
		assert.Same(t, cpp, o.CppOptions())
		header, ok := o.UserHeader()
		assert.True(t, ok)
		assert.Equal(t, "h.hpp", header)
	})

	t.Run("NilMappingsKeepDefaults", func(t *testing.T) {
		o := New(WithStancOptions(nil), WithCppOptions(nil))
		assert.NotNil(t, o.StancOptions())
		assert.NotNil(t, o.CppOptions())
	})

	t.Run("String", func(t *testing.T) {
		o := New(
			WithStancOptions(NewValues().Set("name", String("foo")).Set("include_paths", List("a", "b"))),
			WithCppOptions(NewValues().Set("STAN_THREADS", Bool(true))),
			WithUserHeader("/p/h.hpp"),
		)
		assert.Equal(t,
			`stanc_options={name: foo, include_paths: ["a" "b"]}, cpp_options={STAN_THREADS: true}, user_header=/p/h.hpp`,
			o.String())
	})

	t.Run("CloneIsDeep", func(t *testing.T) {
		o := New(WithStancOptions(NewValues().Set("include_paths", List("a"))))
		c := o.Clone()
		c.AddIncludePath("b")
		c.CppOptions().Set("X", Int(1))

		val, _ := o.StancOptions().Get("include_paths")
		list, _ := val.AsList()
		assert.Equal(t, []string{"a"}, list)
		assert.False(t, o.CppOptions().Has("X"))
	})
}

// TestValuesOrdering tests insertion-order semantics of Values
func TestValuesOrdering(t *testing.T) {
	v := NewValues().
		Set("b", Int(1)).
		Set("a", Int(2)).
		Set("c", Int(3))
	assert.Equal(t, []string{"b", "a", "c"}, v.Keys())

	// Overwrite keeps position
	v.Set("b", Int(10))
	assert.Equal(t, []string{"b", "a", "c"}, v.Keys())
	got, ok := v.Get("b")
	require.True(t, ok)
	assert.True(t, got.Equal(Int(10)))

	// Delete then re-add moves to the end
	v.Delete("b")
	v.Set("b", Int(1))
	assert.Equal(t, []string{"a", "c", "b"}, v.Keys())

	v.Delete("missing")
	assert.Equal(t, 3, v.Len())

	var zero Values
	zero.Set("x", Bool(true))
	assert.True(t, zero.Has("x"))
}

// TestValueOf tests conversion from decoded Go values
func TestValueOf(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected Value
		wantErr  bool
	}{
		{"Bool", true, Bool(true), false},
		{"Int", 3, Int(3), false},
		{"Int64", int64(-2), Int(-2), false},
		{"Uint8", uint8(7), Int(7), false},
		{"UintOverflow", ^uint64(0), Value{}, true},
		{"String", "foo", String("foo"), false},
		{"Float", 1.5, String("1.5"), false},
		{"JSONInteger", json.Number("4"), Int(4), false},
		{"JSONFloat", json.Number("4.5"), String("4.5"), false},
		{"StringSlice", []string{"a", "b"}, List("a", "b"), false},
		{"AnySlice", []any{"a", "b"}, List("a", "b"), false},
		{"AnySliceMixed", []any{"a", 1}, Value{}, true},
		{"Nil", nil, Value{}, true},
		{"Map", map[string]any{}, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedValue)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v (%s), got %v (%s)", tt.expected, tt.expected.Kind(), got, got.Kind())
		})
	}
}

// TestValueRendering tests how values appear on the make command line
func TestValueRendering(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "TRUE", String("TRUE").String())
	assert.Equal(t, "a,b", List("a", "b").String())
	assert.Equal(t, "", Value{}.String())
	assert.False(t, Value{}.IsValid())

	assert.Equal(t, []string{"a"}, List("a").Interface())
	assert.Equal(t, int64(1), Int(1).Interface())
}

// TestParseValue tests string interpretation for env and CLI input
func TestParseValue(t *testing.T) {
	assert.True(t, parseValue("true").Equal(Bool(true)))
	assert.True(t, parseValue("false").Equal(Bool(false)))
	assert.True(t, parseValue("TRUE").Equal(String("TRUE")))
	assert.True(t, parseValue("12").Equal(Int(12)))
	assert.True(t, parseValue("-1").Equal(Int(-1)))
	assert.True(t, parseValue(`"12"`).Equal(String("12")))
	assert.True(t, parseValue("a,b").Equal(String("a,b")))
}
