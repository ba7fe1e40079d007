// FILE: lixenwraith/stanflags/decode.go
package stanflags

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// fileDocument is the shape of a compiler options file.
type fileDocument struct {
	UserHeader   string         `toml:"user_header"`
	StancOptions map[string]any `toml:"stanc_options"`
	CppOptions   map[string]any `toml:"cpp_options"`
}

// orderedDocument pairs the decoded document data with the key order of each
// option section as it appeared in the source file.
type orderedDocument struct {
	data      map[string]any
	stancKeys []string
	cppKeys   []string
}

// options decodes the document and builds CompilerOptions in file order.
func (d orderedDocument) options(opts ...Option) (*CompilerOptions, error) {
	var doc fileDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		TagName:     "toml",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(d.data); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	o := New(opts...)
	if err := fillValues(o.stanc, doc.StancOptions, d.stancKeys); err != nil {
		return nil, fmt.Errorf("%s: %w", sectionStanc, err)
	}
	if err := fillValues(o.cpp, doc.CppOptions, d.cppKeys); err != nil {
		return nil, fmt.Errorf("%s: %w", sectionCpp, err)
	}
	o.userHeader = doc.UserHeader
	return o, nil
}

// fillValues copies data into dst following order. Keys missing from order
// are appended in sorted order.
func fillValues(dst *Values, data map[string]any, order []string) error {
	seen := make(map[string]bool, len(order))
	keys := make([]string, 0, len(data))
	for _, k := range order {
		if _, ok := data[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range data {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	for _, k := range keys {
		if err := dst.SetAny(k, data[k]); err != nil {
			return err
		}
	}
	return nil
}

// parseTOML decodes TOML, taking section key order from the decoder metadata.
func parseTOML(data []byte) (orderedDocument, error) {
	doc := orderedDocument{data: make(map[string]any)}
	md, err := toml.Decode(string(data), &doc.data)
	if err != nil {
		return doc, err
	}
	for _, key := range md.Keys() {
		if len(key) != 2 {
			continue
		}
		switch key[0] {
		case sectionStanc:
			doc.stancKeys = append(doc.stancKeys, key[1])
		case sectionCpp:
			doc.cppKeys = append(doc.cppKeys, key[1])
		}
	}
	return doc, nil
}

// parseJSON decodes JSON with json.Number values, walking section tokens for key order.
func parseJSON(data []byte) (orderedDocument, error) {
	doc := orderedDocument{data: make(map[string]any)}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Preserve integer precision
	if err := decoder.Decode(&doc.data); err != nil {
		return doc, err
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return doc, err
	}
	var err error
	if doc.stancKeys, err = jsonObjectKeys(sections[sectionStanc]); err != nil {
		return doc, fmt.Errorf("%s: %w", sectionStanc, err)
	}
	if doc.cppKeys, err = jsonObjectKeys(sections[sectionCpp]); err != nil {
		return doc, fmt.Errorf("%s: %w", sectionCpp, err)
	}
	return doc, nil
}

// jsonObjectKeys returns the keys of a JSON object in document order.
// A missing or non-object value yields no keys.
func jsonObjectKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil
	}

	var keys []string
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := decoder.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// parseYAML decodes YAML, reading section key order from the node tree.
func parseYAML(data []byte) (orderedDocument, error) {
	doc := orderedDocument{data: make(map[string]any)}
	if err := yaml.Unmarshal(data, &doc.data); err != nil {
		return doc, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return doc, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return doc, nil
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		switch top.Content[i].Value {
		case sectionStanc:
			doc.stancKeys = yamlMappingKeys(top.Content[i+1])
		case sectionCpp:
			doc.cppKeys = yamlMappingKeys(top.Content[i+1])
		}
	}
	return doc, nil
}

// yamlMappingKeys returns the keys of a mapping node in document order.
func yamlMappingKeys(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
