package value

import "strconv"

func NewIntValue(v int64) IntValue {
	return IntValue{v: v}
}

func (m IntValue) Nil() bool          { return false }
func (m IntValue) Type() ValueType    { return IntType }
func (m IntValue) Value() interface{} { return m.v }
func (m IntValue) Val() int64         { return m.v }
func (m IntValue) Int() int64         { return m.v }
func (m IntValue) ToString() string   { return strconv.FormatInt(m.v, 10) }
