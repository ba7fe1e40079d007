// FILE: lixenwraith/stanflags/decode_test.go
package stanflags

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFillValues(t *testing.T) {
	t.Run("OrderThenSortedRemainder", func(t *testing.T) {
		dst := NewValues()
		data := map[string]any{"z": 1, "b": true, "a": "x", "m": []any{"p", "q"}}
		require.NoError(t, fillValues(dst, data, []string{"m", "z", "missing", "m"}))

		assert.Equal(t, []string{"m", "z", "a", "b"}, dst.Keys())
		val, _ := dst.Get("m")
		list, isList := val.AsList()
		require.True(t, isList)
		assert.Equal(t, []string{"p", "q"}, list)
	})

	t.Run("UnsupportedValue", func(t *testing.T) {
		err := fillValues(NewValues(), map[string]any{"nested": map[string]any{"a": 1}}, nil)
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	})
}

func TestJSONObjectKeys(t *testing.T) {
	keys, err := jsonObjectKeys(json.RawMessage(`{"b": {"x": 1}, "a": [1, 2], "c": null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	keys, err = jsonObjectKeys(nil)
	require.NoError(t, err)
	assert.Nil(t, keys)

	keys, err = jsonObjectKeys(json.RawMessage(`[1, 2]`))
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestYAMLMappingKeys(t *testing.T) {
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("zeta: 1\nalpha: [a]\nmid: {k: v}\n"), &root))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, yamlMappingKeys(root.Content[0]))

	var scalar yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("just text"), &scalar))
	assert.Nil(t, yamlMappingKeys(scalar.Content[0]))
}

func TestOrderedDocument(t *testing.T) {
	t.Run("TOMLKeyOrder", func(t *testing.T) {
		doc, err := parseTOML([]byte("[cpp_options]\nZ = 1\nA = 2\n\n[stanc_options]\nname = \"m\"\nO = 1\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "O"}, doc.stancKeys)
		assert.Equal(t, []string{"Z", "A"}, doc.cppKeys)
	})

	t.Run("JSONNumbers", func(t *testing.T) {
		doc, err := parseJSON([]byte(`{"cpp_options": {"OPENCL_DEVICE_ID": 3, "SCALE": 1.5}}`))
		require.NoError(t, err)

		o, err := doc.options()
		require.NoError(t, err)
		device, _ := o.CppOptions().Get("OPENCL_DEVICE_ID")
		assert.True(t, device.Equal(Int(3)))
		scale, _ := o.CppOptions().Get("SCALE")
		assert.Equal(t, KindString, scale.Kind())
		assert.Equal(t, "1.5", scale.String())
	})

	t.Run("UnknownTopLevelKey", func(t *testing.T) {
		doc, err := parseYAML([]byte("stanc_options:\n  O: 1\nlinker_options:\n  foo: 1\n"))
		require.NoError(t, err)
		_, err = doc.options()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "linker_options")
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		doc, err := parseYAML([]byte("user_header: funcs.hpp\n"))
		require.NoError(t, err)
		o, err := doc.options()
		require.NoError(t, err)
		header, ok := o.UserHeader()
		assert.True(t, ok)
		assert.Equal(t, "funcs.hpp", header)
		assert.Zero(t, o.StancOptions().Len())
	})
}
