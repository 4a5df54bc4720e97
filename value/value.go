// Package value defines the core runtime value types (bool, int, string)
// produced and consumed by the filter virtual machine, providing common
// interfaces instead of reflection.
package value

var (
	NilValueVal      = NewNilValue()
	BoolValueTrue    = BoolValue{v: true}
	BoolValueFalse   = BoolValue{v: false}
	EmptyStringValue = NewStringValue("")

	// force types to implement the Value interface
	_ Value = (*BoolValue)(nil)
	_ Value = (*IntValue)(nil)
	_ Value = (*StringValue)(nil)
	_ Value = (*NilValue)(nil)
)

type (
	// Value is the tagged-union interface over runtime values. Values are
	// transient: created during one evaluation, never persisted.
	Value interface {
		// Is this a nil/empty?  Empty string counts as nil.
		Nil() bool
		Value() interface{}
		ToString() string
		Type() ValueType
	}
	// NumericValue types can be represented as an int64.
	NumericValue interface {
		Int() int64
	}
)

type (
	BoolValue struct {
		v bool
	}
	IntValue struct {
		v int64
	}
	StringValue struct {
		v string
	}
	NilValue struct{}
)

// NewValue creates a Value from a native Go value. Only the types the
// filter language can express are accepted; anything else maps to nil.
func NewValue(goVal interface{}) Value {
	switch val := goVal.(type) {
	case nil:
		return NilValueVal
	case Value:
		return val
	case bool:
		return NewBoolValue(val)
	case int:
		return NewIntValue(int64(val))
	case int32:
		return NewIntValue(int64(val))
	case int64:
		return NewIntValue(val)
	case uint8:
		return NewIntValue(int64(val))
	case uint16:
		return NewIntValue(int64(val))
	case uint32:
		return NewIntValue(int64(val))
	case uint64:
		return NewIntValue(int64(val))
	case string:
		return NewStringValue(val)
	default:
		return NilValueVal
	}
}

func NewNilValue() NilValue {
	return NilValue{}
}

func (m NilValue) Nil() bool          { return true }
func (m NilValue) Type() ValueType    { return NilType }
func (m NilValue) Value() interface{} { return nil }
func (m NilValue) ToString() string   { return "" }

// Equal compares two values under the same-type-only rule: a pair of
// strings compares by ordinal equality, a pair of ints numerically, a pair
// of bools by identity. Mismatched types are never equal; there is no
// implicit coercion.
func Equal(l, r Value) bool {
	if l == nil || r == nil {
		return false
	}
	switch lv := l.(type) {
	case StringValue:
		if rv, ok := r.(StringValue); ok {
			return lv.Val() == rv.Val()
		}
	case IntValue:
		if rv, ok := r.(IntValue); ok {
			return lv.Val() == rv.Val()
		}
	case BoolValue:
		if rv, ok := r.(BoolValue); ok {
			return lv.Val() == rv.Val()
		}
	}
	return false
}

// Compare orders two same-typed values, returning -1, 0, or 1 and whether
// the pair is orderable at all. Strings order ordinally, ints numerically.
// Bools and mismatched types are not orderable.
func Compare(l, r Value) (int, bool) {
	switch lv := l.(type) {
	case StringValue:
		rv, ok := r.(StringValue)
		if !ok {
			return 0, false
		}
		switch {
		case lv.Val() < rv.Val():
			return -1, true
		case lv.Val() > rv.Val():
			return 1, true
		}
		return 0, true
	case IntValue:
		rv, ok := r.(IntValue)
		if !ok {
			return 0, false
		}
		switch {
		case lv.Val() < rv.Val():
			return -1, true
		case lv.Val() > rv.Val():
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ValueToBool coerces a value to a boolean for control flow. Anything that
// is not a BoolValue is false.
func ValueToBool(v Value) bool {
	if bv, ok := v.(BoolValue); ok {
		return bv.Val()
	}
	return false
}

// ValueToString returns the string payload of a StringValue.
func ValueToString(v Value) (string, bool) {
	if sv, ok := v.(StringValue); ok {
		return sv.Val(), true
	}
	return "", false
}
