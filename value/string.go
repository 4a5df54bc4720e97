package value

func NewStringValue(v string) StringValue {
	return StringValue{v: v}
}

func (m StringValue) Nil() bool          { return len(m.v) == 0 }
func (m StringValue) Type() ValueType    { return StringType }
func (m StringValue) Value() interface{} { return m.v }
func (m StringValue) Val() string        { return m.v }
func (m StringValue) ToString() string   { return m.v }
