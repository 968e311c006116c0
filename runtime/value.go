package runtime

import "strconv"

// ValueKind tags the runtime representation of an interpreted value.
type ValueKind int8

// Kinds of runtime values. All values are primitive and copied on
// assignment and on parameter passing (value semantics only).
const (
	Undefined ValueKind = iota
	IntegerType
	RealType
	BooleanType
)

func (k ValueKind) String() string {
	switch k {
	case IntegerType:
		return "integer"
	case RealType:
		return "real"
	case BooleanType:
		return "boolean"
	}
	return "undefined"
}

// Value is a tagged union over the primitive types of the interpreted
// language. The zero Value is of kind Undefined; reading one is an error the
// interpreter reports.
type Value struct {
	Kind ValueKind
	i    int64
	r    float64
	b    bool
}

// IntValue wraps an integer.
func IntValue(n int64) Value {
	return Value{Kind: IntegerType, i: n}
}

// RealValue wraps a real.
func RealValue(f float64) Value {
	return Value{Kind: RealType, r: f}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{Kind: BooleanType, b: b}
}

// ZeroValue returns the defined default for a type name: 0, 0.0 or false.
// Declared variables are pre-bound to their zero value before any statement
// of the owning block runs.
func ZeroValue(typeName string) Value {
	switch typeName {
	case "integer":
		return IntValue(0)
	case "real":
		return RealValue(0)
	case "boolean":
		return BoolValue(false)
	}
	return Value{}
}

// IsNumeric is a predicate: integer or real?
func (v Value) IsNumeric() bool {
	return v.Kind == IntegerType || v.Kind == RealType
}

// Int returns the integer payload. Valid for kind IntegerType only.
func (v Value) Int() int64 {
	return v.i
}

// Real returns the value widened to a float64. Valid for numeric kinds.
func (v Value) Real() float64 {
	if v.Kind == IntegerType {
		return float64(v.i)
	}
	return v.r
}

// Bool returns the boolean payload. Valid for kind BooleanType only.
func (v Value) Bool() bool {
	return v.b
}

func (v Value) String() string {
	switch v.Kind {
	case IntegerType:
		return strconv.FormatInt(v.i, 10)
	case RealType:
		return strconv.FormatFloat(v.r, 'g', -1, 64)
	case BooleanType:
		return strconv.FormatBool(v.b)
	}
	return "<undefined>"
}
