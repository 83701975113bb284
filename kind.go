package mkjson

import "strconv"

// Kind is an enum for the JSON types a Value can hold.
type Kind uint8

// Kinds to compare values with. The zero value signals invalid.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindRaw
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindRaw:
		return "Raw"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// isContainer reports whether k is Array or Object.
func (k Kind) isContainer() bool {
	return k == KindArray || k == KindObject
}
