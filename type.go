// File: lixenwraith/stanflags/type.go
package stanflags

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnsupportedValue is returned when a Go value has no Value representation.
var ErrUnsupportedValue = errors.New("unsupported option value")

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a single option value: a bool, an int64, a string or an ordered list of strings.
// The zero Value is invalid.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	list []string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list Value holding a copy of items.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was constructed with one of the Value constructors.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsBool returns the boolean held by v, if any.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer held by v, if any.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsString returns the string held by v, if any.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns a copy of the list held by v, if any.
func (v Value) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string{}, v.list...), true
}

// Equal reports whether v and other hold the same variant and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	}
	return true
}

// String renders v the way it appears on a make command line.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Interface returns v as a plain Go value (bool, int64, string or []string).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindString:
		return v.s
	case KindList:
		return append([]string{}, v.list...)
	default:
		return nil
	}
}

// clone returns a Value that shares no memory with v.
func (v Value) clone() Value {
	if v.kind == KindList {
		return List(v.list...)
	}
	return v
}

// ValueOf converts a decoded Go value into a Value.
// Accepts booleans, all integer types, floats, strings, json.Number and string lists.
func ValueOf(raw any) (Value, error) {
	if raw == nil {
		return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedValue)
	}

	switch val := raw.(type) {
	case Value:
		return val.clone(), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		return String(val.String()), nil
	case []string:
		return List(val...), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: list element %d has type %T, expected string", ErrUnsupportedValue, idx, elem)
			}
			items = append(items, s)
		}
		return List(items...), nil
	}

	// Use reflection for broader compatibility with numeric types
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: unsigned integer %d overflows int64", ErrUnsupportedValue, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return String(strconv.FormatFloat(v.Float(), 'f', -1, 64)), nil
	case reflect.String:
		return String(v.String()), nil
	}

	return Value{}, fmt.Errorf("%w: type %T", ErrUnsupportedValue, raw)
}

// parseValue interprets a raw string from the environment or the command line.
// Only exact true/false and base-10 integers are converted; everything else stays a string.
func parseValue(s string) Value {
	if s == "true" {
		return Bool(true)
	}
	if s == "false" {
		return Bool(false)
	}

	// Remove quotes if present
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return String(s[1 : len(s)-1])
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}

	return String(s)
}
