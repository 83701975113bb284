package mkjson

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrNotArrayOrObject is returned or raised by methods that only work on
// containers when they are called on a scalar Value.
var ErrNotArrayOrObject = errors.New("not array or object")

// Value is one node of a tree describing a JSON document.
// Depending on its kind it holds a different payload:
//     Kind	Payload
//     Invalid	nil
//     Null	nil
//     Bool	bool
//     Integer	int64
//     Uint	uint64
//     Float	float64 or sciFloat
//     String	string, or nil when absent
//     Raw	rawFragment
//     Array	[]Value
//     Object	[]Member
//
// The zero Value is Invalid and fails to serialize.
type Value struct {
	kind  Kind
	value interface{}
}

// Member is a key/value pair of an Object. Keys need not be unique.
type Member struct {
	Key   string
	Value Value
}

// sciFloat marks a float that is always written in exponent form.
type sciFloat float64

// rawFragment is pre-encoded JSON inserted verbatim.
type rawFragment string

// M is shorthand for Member{Key: key, Value: v}.
func M(key string, v Value) Member { return Member{Key: key, Value: v} }

// Str returns a String value.
func Str(s string) Value { return Value{kind: KindString, value: s} }

// StrPtr returns a String value holding *s, or an absent String that
// serializes as null when s is nil.
func StrPtr(s *string) Value {
	if s == nil {
		return Absent()
	}
	return Str(*s)
}

// Absent returns a String value without content. It serializes as null,
// never as "null" or "".
func Absent() Value { return Value{kind: KindString} }

// Int returns an Integer value.
func Int(i int64) Value { return Value{kind: KindInt, value: i} }

// Uint returns an unsigned Integer value.
func Uint(u uint64) Value { return Value{kind: KindUint, value: u} }

// Float returns a Float value written in the shortest form that parses
// back to f. NaN and infinities fail to serialize.
func Float(f float64) Value { return Value{kind: KindFloat, value: f} }

// SciFloat returns a Float value that is always written in exponent form,
// e.g. 1.5e+06.
func SciFloat(f float64) Value { return Value{kind: KindFloat, value: sciFloat(f)} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, value: b} }

// Null returns the JSON null.
func Null() Value { return Value{kind: KindNull} }

// Raw returns a value whose bytes are written as they are.
//
// The caller guarantees that raw is one valid JSON value; unless the
// ValidateRaw option is set nothing checks this, and malformed raw content
// yields malformed output. An empty fragment always fails.
func Raw(raw []byte) Value { return Value{kind: KindRaw, value: rawFragment(raw)} }

// RawString is like Raw for strings.
func RawString(raw string) Value { return Value{kind: KindRaw, value: rawFragment(raw)} }

// Arr returns an Array holding vv in order.
func Arr(vv ...Value) Value {
	if vv == nil {
		vv = []Value{}
	}
	return Value{kind: KindArray, value: vv}
}

// Obj returns an Object holding mm in order.
func Obj(mm ...Member) Value {
	if mm == nil {
		mm = []Member{}
	}
	return Value{kind: KindObject, value: mm}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is a String without content.
func (v Value) IsAbsent() bool {
	return v.kind == KindString && v.value == nil
}

// Len gives the number of elements of an array or members of an object.
// It is 0 for Invalid and 1 for any other scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.value.([]Value))
	case KindObject:
		return len(v.value.([]Member))
	case KindInvalid:
		return 0
	default:
		return 1
	}
}

// Elems returns the elements of an Array. It panics for other kinds.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		panic(errors.Wrapf(ErrNotArrayOrObject, "Elems on %s", v.kind))
	}
	return v.value.([]Value)
}

// Members returns the members of an Object. It panics for other kinds.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		panic(errors.Wrapf(ErrNotArrayOrObject, "Members on %s", v.kind))
	}
	return v.value.([]Member)
}

// Append adds vv to the end of the Array v.
// It panics if v is not an Array.
func (v *Value) Append(vv ...Value) {
	if v.kind != KindArray {
		panic(errors.Wrapf(ErrNotArrayOrObject, "v is %s", v.kind))
	}
	v.value = append(v.value.([]Value), vv...)
}

// Add appends a member to the Object v. Existing members with the same
// key are kept. It panics if v is not an Object.
func (v *Value) Add(key string, m Value) {
	if v.kind != KindObject {
		panic(errors.Wrapf(ErrNotArrayOrObject, "v is %s", v.kind))
	}
	v.value = append(v.value.([]Member), Member{key, m})
}

// Get returns the value specified by name, a dotted path of object keys
// and array indices. The empty name returns v itself. For duplicate keys
// the first member wins.
func (v Value) Get(name string) (Value, bool) {
	if name == "" {
		return v, true
	}
	key, rest := name, ""
	if i := strings.IndexByte(name, '.'); i >= 0 {
		key, rest = name[:i], name[i+1:]
	}
	switch v.kind {
	case KindObject:
		for _, m := range v.value.([]Member) {
			if m.Key == key {
				return m.Value.Get(rest)
			}
		}
	case KindArray:
		i, err := strconv.Atoi(key)
		if err != nil {
			return Value{}, false
		}
		vv := v.value.([]Value)
		if i < 0 || i >= len(vv) {
			return Value{}, false
		}
		return vv[i].Get(rest)
	}
	return Value{}, false
}

// Interface creates the Go representation of v.
// Like encoding/json the possible underlying types are:
//     Object    map[string]interface{} (the last duplicate key wins)
//     Array     []interface{}
//     String    string, or nil when absent
//     Integer   int64
//     Uint      uint64
//     Float     float64
//     Bool      bool
//     Raw       json.RawMessage
//     Null      nil
func (v Value) Interface() (interface{}, error) {
	if !assertValueType(v) {
		return nil, errors.Errorf("internal type mismatch; want %s, got %T",
			v.kind, v.value)
	}
	switch v.kind {
	case KindInvalid:
		return nil, errors.Wrap(ErrMalformedInput, "invalid value")
	case KindFloat:
		if f, ok := v.value.(sciFloat); ok {
			return float64(f), nil
		}
		return v.value, nil
	case KindRaw:
		return gojson.RawMessage(v.value.(rawFragment)), nil
	case KindObject:
		m := make(map[string]interface{}, v.Len())
		for _, f := range v.value.([]Member) {
			itf, err := f.Value.Interface()
			if err != nil {
				return nil, err
			}
			m[f.Key] = itf
		}
		return m, nil
	case KindArray:
		s := make([]interface{}, 0, v.Len())
		for _, f := range v.value.([]Value) {
			itf, err := f.Interface()
			if err != nil {
				return nil, err
			}
			s = append(s, itf)
		}
		return s, nil
	default:
		return v.value, nil
	}
}

// String formats v as JSON with no whitespace. It returns the empty string
// if v can not be serialized.
func (v Value) String() string {
	data, err := Marshal(v, Compact())
	if err != nil {
		return ""
	}
	return string(data)
}

// MarshalJSON implements the json.Marshaler interface for Value.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// Equal compares the values and all their children. Member order and
// duplicate keys are significant, an absent String differs from every
// present one and Floats compare by value regardless of notation.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindArray:
		an, bn := a.value.([]Value), b.value.([]Value)
		if len(an) != len(bn) {
			return false
		}
		for i := range an {
			if !Equal(an[i], bn[i]) {
				return false
			}
		}
		return true
	case KindObject:
		an, bn := a.value.([]Member), b.value.([]Member)
		if len(an) != len(bn) {
			return false
		}
		for i := range an {
			if an[i].Key != bn[i].Key || !Equal(an[i].Value, bn[i].Value) {
				return false
			}
		}
		return true
	case KindFloat:
		return floatOf(a.value) == floatOf(b.value)
	default:
		return a.value == b.value
	}
}

func floatOf(x interface{}) float64 {
	if f, ok := x.(sciFloat); ok {
		return float64(f)
	}
	return x.(float64)
}

func assertValueType(v Value) bool {
	switch v.value.(type) {
	case nil:
		return v.kind == KindNull || v.kind == KindInvalid || v.kind == KindString
	case bool:
		return v.kind == KindBool
	case int64:
		return v.kind == KindInt
	case uint64:
		return v.kind == KindUint
	case float64, sciFloat:
		return v.kind == KindFloat
	case string:
		return v.kind == KindString
	case rawFragment:
		return v.kind == KindRaw
	case []Value:
		return v.kind == KindArray
	case []Member:
		return v.kind == KindObject
	default:
		return false
	}
}

var (
	marshalerType = reflect.TypeOf((*gojson.Marshaler)(nil)).Elem()
	valueType     = reflect.TypeOf(Value{})
)

// ValueOf reads in a Go value and generates a Value tree from it.
// Struct fields follow the encoding/json tag conventions for names, "-",
// omitempty and string. Map keys are sorted. Types implementing
// json.Marshaler are encoded by it and inserted as Raw fragments; a
// pointer receiver is used when the value is addressable.
func ValueOf(val interface{}) (Value, error) {
	return valueOf(reflect.ValueOf(val), nil, DefaultMaxDepth)
}

func valueOf(v reflect.Value, path []string, depth int) (Value, error) {
	if !v.IsValid() {
		return Null(), nil
	}
	if depth < 0 {
		return Value{}, newBuildError(ErrTooDeep, path, "Go value nests too deep")
	}
	if v.Type() == valueType {
		return v.Interface().(Value), nil
	}
	if v.Kind() != reflect.Ptr && v.CanAddr() && reflect.PtrTo(v.Type()).Implements(marshalerType) {
		v = v.Addr()
	}
	if v.Type().Implements(marshalerType) {
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return Null(), nil
		}
		data, err := gojson.Marshal(v.Interface())
		if err != nil {
			return Value{}, newBuildError(ErrMalformedInput, path, "%s", err)
		}
		return Raw(data), nil
	}
	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(v.Uint()), nil
	case reflect.Float32:
		return Float(widenFloat32(float32(v.Float()))), nil
	case reflect.Float64:
		return Float(v.Float()), nil
	case reflect.String:
		return Str(v.String()), nil
	case reflect.Slice:
		if v.IsNil() {
			return Null(), nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return Str(string(v.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		vv := make([]Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			m, err := valueOf(v.Index(i), append(path, strconv.Itoa(i)), depth-1)
			if err != nil {
				return Value{}, err
			}
			vv = append(vv, m)
		}
		return Arr(vv...), nil
	case reflect.Map:
		if v.IsNil() {
			return Null(), nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return Value{}, newBuildError(ErrMalformedInput, path,
				"unsupported map key type %s", v.Type().Key())
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		mm := make([]Member, 0, len(keys))
		for _, key := range keys {
			m, err := valueOf(v.MapIndex(key), append(path, key.String()), depth-1)
			if err != nil {
				return Value{}, err
			}
			mm = append(mm, Member{key.String(), m})
		}
		return Obj(mm...), nil
	case reflect.Struct:
		return structOf(v, path, depth)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return Null(), nil
		}
		return valueOf(v.Elem(), path, depth-1)
	default:
		return Value{}, newBuildError(ErrMalformedInput, path, "invalid type %s", v.Kind())
	}
}

func structOf(v reflect.Value, path []string, depth int) (Value, error) {
	t := v.Type()
	mm := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		elemT := t.Field(i)
		if r, _ := utf8.DecodeRuneInString(elemT.Name); !unicode.IsUpper(r) {
			continue
		}
		tags := strings.Split(elemT.Tag.Get("json"), ",")
		if len(tags) == 1 && tags[0] == "-" {
			continue
		}
		key := tags[0]
		if key == "" {
			key = elemT.Name
		}
		omitempty, stringify := false, false
		for _, tag := range tags[1:] {
			switch tag {
			case "omitempty":
				omitempty = true
			case "string":
				stringify = true
			}
		}
		field := v.Field(i)
		if omitempty && isEmptyValue(field) {
			continue
		}
		m, err := valueOf(field, append(path, key), depth-1)
		if err != nil {
			return Value{}, err
		}
		if stringify && quotable(elemT.Type) {
			m = stringified(m)
		}
		mm = append(mm, Member{key, m})
	}
	return Obj(mm...), nil
}

// quotable reports whether the ",string" tag option applies to a field of
// type t: scalars and pointers to them.
func quotable(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// stringified applies the ",string" tag option. Scalars are written into
// a string and strings are quoted a second time.
func stringified(v Value) Value {
	switch v.kind {
	case KindBool, KindInt, KindUint, KindFloat:
		return Str(v.String())
	case KindString:
		if v.IsAbsent() {
			return v
		}
		return Str(v.String())
	default:
		return v
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// widenFloat32 converts f to the float64 closest to its shortest decimal
// form, so 0.1f is written as 0.1 and not 0.10000000149011612.
func widenFloat32(f float32) float64 {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return float64(f)
	}
	w, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return w
}
