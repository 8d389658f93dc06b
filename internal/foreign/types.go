// Package foreign models natively-defined object types: named typed slots
// backed by opaque storage, addressed through a slot-assignment interface.
package foreign

import (
	"fmt"
	"math"
)

// SlotKind represents the storage kind of a native slot
type SlotKind int

const (
	KindAny SlotKind = iota
	KindBool
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindString
)

// String returns the string representation of the slot kind
func (k SlotKind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

func (k SlotKind) zero() any {
	switch k {
	case KindBool:
		return false
	case KindInt32:
		return int32(0)
	case KindInt64:
		return int64(0)
	case KindFloat32:
		return float32(0)
	case KindFloat64:
		return float64(0)
	case KindString:
		return ""
	default:
		return nil
	}
}

// ParseSlotKind converts a string to a SlotKind
func ParseSlotKind(s string) (SlotKind, error) {
	switch s {
	case "", "any":
		return KindAny, nil
	case "bool":
		return KindBool, nil
	case "int32":
		return KindInt32, nil
	case "int64", "int":
		return KindInt64, nil
	case "float32":
		return KindFloat32, nil
	case "float64", "float":
		return KindFloat64, nil
	case "string", "str":
		return KindString, nil
	default:
		return 0, fmt.Errorf("unknown slot kind: %s", s)
	}
}

// Slot describes one named, typed storage cell of a native type
type Slot struct {
	Name string
	Kind SlotKind
}

// Coerce converts v into the slot's storage representation.
// Integers widen to floats; nothing converts to or from bool.
func (s Slot) Coerce(v any) (any, error) {
	switch s.Kind {
	case KindAny:
		return v, nil
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindString:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case KindInt64:
		if i, ok := asInt64(v); ok {
			return i, nil
		}
	case KindInt32:
		if i, ok := asInt64(v); ok {
			if i < math.MinInt32 || i > math.MaxInt32 {
				return nil, fmt.Errorf("slot %s: value %d overflows int32", s.Name, i)
			}
			return int32(i), nil
		}
	case KindFloat64:
		if f, ok := asFloat64(v); ok {
			return f, nil
		}
	case KindFloat32:
		if f, ok := asFloat64(v); ok {
			return float32(f), nil
		}
	}
	return nil, fmt.Errorf("slot %s: cannot store %T as %s", s.Name, v, s.Kind)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		if i, ok := asInt64(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// TypeInfo declares a native type: its key, optional parent and own slots
type TypeInfo struct {
	Key    string
	Parent string
	Slots  []Slot

	// PostInit runs after every field of a new object has been assigned,
	// the way a native constructor body would. Derived types do not
	// inherit it.
	PostInit func(*Object) error
}
