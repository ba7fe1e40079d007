// File: lixenwraith/stanflags/values.go
package stanflags

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Values is an insertion-ordered mapping from option name to Value.
// Overwriting a key keeps its position; deleting and re-adding moves it to the end.
// The zero value is ready to use.
type Values struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewValues creates an empty Values.
func NewValues() *Values {
	return &Values{m: orderedmap.New[string, Value]()}
}

// Set stores val under key and returns the receiver for chaining.
func (v *Values) Set(key string, val Value) *Values {
	if v.m == nil {
		v.m = orderedmap.New[string, Value]()
	}
	v.m.Set(key, val)
	return v
}

// SetAny converts raw with ValueOf and stores it under key.
func (v *Values) SetAny(key string, raw any) error {
	val, err := ValueOf(raw)
	if err != nil {
		return fmt.Errorf("option %q: %w", key, err)
	}
	v.Set(key, val)
	return nil
}

// Get returns the value stored under key.
func (v *Values) Get(key string) (Value, bool) {
	if v == nil || v.m == nil {
		return Value{}, false
	}
	return v.m.Get(key)
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (v *Values) Delete(key string) {
	if v == nil || v.m == nil {
		return
	}
	v.m.Delete(key)
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	if v == nil || v.m == nil {
		return nil
	}
	keys := make([]string, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of entries.
func (v *Values) Len() int {
	if v == nil || v.m == nil {
		return 0
	}
	return v.m.Len()
}

// Clone returns a deep copy.
func (v *Values) Clone() *Values {
	out := NewValues()
	if v == nil || v.m == nil {
		return out
	}
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value.clone())
	}
	return out
}

// String renders the mapping as {key: value, ...} in insertion order.
func (v *Values) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range v.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		val, _ := v.Get(k)
		if val.Kind() == KindList {
			fmt.Fprintf(&sb, "%s: %q", k, val.list)
		} else {
			fmt.Fprintf(&sb, "%s: %s", k, val.String())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
