package value

import "strconv"

func NewBoolValue(v bool) BoolValue {
	if v {
		return BoolValueTrue
	}
	return BoolValueFalse
}

func (m BoolValue) Nil() bool          { return false }
func (m BoolValue) Type() ValueType    { return BoolType }
func (m BoolValue) Value() interface{} { return m.v }
func (m BoolValue) Val() bool          { return m.v }
func (m BoolValue) ToString() string   { return strconv.FormatBool(m.v) }
