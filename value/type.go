package value

// ValueType is the DataType system, ie string, int, bool.
type ValueType uint8

const (
	// Enum values for the type system, DO NOT CHANGE the numbers, do not use iota
	NilType    ValueType = 0
	IntType    ValueType = 11
	BoolType   ValueType = 12
	StringType ValueType = 20
)

var typeToStr = map[ValueType]string{
	NilType:    "nil",
	IntType:    "int",
	BoolType:   "bool",
	StringType: "string",
}

func (m ValueType) String() string {
	if s, ok := typeToStr[m]; ok {
		return s
	}
	return "invalid"
}

func (m ValueType) IsNumeric() bool {
	return m == IntType
}

func (m ValueType) Zero() Value {
	switch m {
	case NilType:
		return NewNilValue()
	case IntType:
		return NewIntValue(0)
	case BoolType:
		return BoolValueFalse
	case StringType:
		return EmptyStringValue
	}
	return nil
}
