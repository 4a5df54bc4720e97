package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValue(t *testing.T) {
	assert.Equal(t, NewIntValue(16), NewValue(16))
	assert.Equal(t, NewIntValue(16), NewValue(int64(16)))
	assert.Equal(t, NewIntValue(16), NewValue(uint32(16)))
	assert.Equal(t, NewStringValue("eth0"), NewValue("eth0"))
	assert.Equal(t, BoolValueTrue, NewValue(true))
	assert.Equal(t, NilValueVal, NewValue(nil))
	// unsupported native types map to nil
	assert.Equal(t, NilValueVal, NewValue(3.14))
}

func TestValueBasics(t *testing.T) {
	v := NewStringValue("eth0")
	assert.Equal(t, StringType, v.Type())
	assert.Equal(t, "eth0", v.ToString())
	assert.False(t, v.Nil())
	assert.True(t, EmptyStringValue.Nil())

	iv := NewIntValue(-3)
	assert.Equal(t, IntType, iv.Type())
	assert.Equal(t, "-3", iv.ToString())
	assert.Equal(t, int64(-3), iv.Int())

	assert.Equal(t, "true", NewBoolValue(true).ToString())
	assert.True(t, NewNilValue().Nil())
}

func TestEqualSameTypeOnly(t *testing.T) {
	assert.True(t, Equal(NewStringValue("a"), NewStringValue("a")))
	assert.False(t, Equal(NewStringValue("a"), NewStringValue("b")))
	assert.True(t, Equal(NewIntValue(16), NewIntValue(16)))
	assert.False(t, Equal(NewIntValue(16), NewIntValue(17)))
	assert.True(t, Equal(BoolValueTrue, BoolValueTrue))
	assert.False(t, Equal(BoolValueTrue, BoolValueFalse))

	// no implicit coercion across types
	assert.False(t, Equal(NewStringValue("16"), NewIntValue(16)))
	assert.False(t, Equal(NewIntValue(1), BoolValueTrue))
	assert.False(t, Equal(NewStringValue("true"), BoolValueTrue))
	assert.False(t, Equal(nil, NewIntValue(1)))
	assert.False(t, Equal(NilValueVal, NilValueVal))
}

func TestCompare(t *testing.T) {
	cmp, ok := Compare(NewIntValue(1), NewIntValue(2))
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)
	cmp, ok = Compare(NewStringValue("b"), NewStringValue("a"))
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)
	cmp, ok = Compare(NewStringValue("a"), NewStringValue("a"))
	assert.True(t, ok)
	assert.Equal(t, 0, cmp)

	// bools and mismatched pairs are not orderable
	_, ok = Compare(BoolValueTrue, BoolValueFalse)
	assert.False(t, ok)
	_, ok = Compare(NewIntValue(1), NewStringValue("1"))
	assert.False(t, ok)
}

func TestCoercions(t *testing.T) {
	assert.True(t, ValueToBool(BoolValueTrue))
	assert.False(t, ValueToBool(BoolValueFalse))
	assert.False(t, ValueToBool(NewIntValue(1)), "non-boolean is false")
	assert.False(t, ValueToBool(nil))

	s, ok := ValueToString(NewStringValue("x"))
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = ValueToString(NewIntValue(1))
	assert.False(t, ok)
}

func TestValueTypes(t *testing.T) {
	assert.Equal(t, "string", StringType.String())
	assert.Equal(t, "int", IntType.String())
	assert.True(t, IntType.IsNumeric())
	assert.False(t, StringType.IsNumeric())
	assert.Equal(t, NewIntValue(0), IntType.Zero())
	assert.Equal(t, BoolValueFalse, BoolType.Zero())
}
