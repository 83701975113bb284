package mkjson

import (
	"strconv"
)

// Tag selects the type of an Entry and the shape of its payload.
type Tag uint8

// Entry tags. The zero Tag is not a valid tag.
const (
	TagString Tag = iota + 1
	TagInt
	TagUint
	TagFloat
	TagSciFloat
	TagBool
	TagNull
	TagObject
	TagArray
	TagRaw
)

// String generates a readable form of a tag meant for debugging.
func (t Tag) String() string {
	switch t {
	case TagString:
		return "string"
	case TagInt:
		return "int"
	case TagUint:
		return "uint"
	case TagFloat:
		return "float"
	case TagSciFloat:
		return "sci-float"
	case TagBool:
		return "bool"
	case TagNull:
		return "null"
	case TagObject:
		return "object"
	case TagArray:
		return "array"
	case TagRaw:
		return "raw"
	default:
		return "tag-" + strconv.Itoa(int(t))
	}
}

// Entry describes one member of an object or one element of an array.
//
// The Payload shape depends on Tag:
//     TagString	string, []byte, *string; nil or a nil *string is absent
//     TagInt	int, int8, int16, int32, int64
//     TagUint	uint, uint8, uint16, uint32, uint64, uintptr
//     TagFloat	float32, float64
//     TagSciFloat	float32, float64
//     TagBool	bool
//     TagNull	nil
//     TagObject	Nested or *Nested
//     TagArray	Nested or *Nested
//     TagRaw	string or []byte holding valid JSON
//
// Key is the member name inside objects and must be empty inside arrays.
// An Ignore entry is checked and counted but not written.
type Entry struct {
	Tag     Tag
	Key     string
	Payload interface{}
	Ignore  bool
}

// Nested is the payload of TagObject and TagArray entries: a declared
// count followed by exactly that many entries.
type Nested struct {
	Count   int
	Entries []Entry
}

// S returns a string entry.
func S(key, s string) Entry { return Entry{Tag: TagString, Key: key, Payload: s} }

// SP returns a string entry that is absent, and written as null, when s
// is nil.
func SP(key string, s *string) Entry { return Entry{Tag: TagString, Key: key, Payload: s} }

// I returns an integer entry.
func I(key string, i int64) Entry { return Entry{Tag: TagInt, Key: key, Payload: i} }

// U returns an unsigned integer entry.
func U(key string, u uint64) Entry { return Entry{Tag: TagUint, Key: key, Payload: u} }

// F returns a float entry.
func F(key string, f float64) Entry { return Entry{Tag: TagFloat, Key: key, Payload: f} }

// E returns a float entry written in exponent form.
func E(key string, f float64) Entry { return Entry{Tag: TagSciFloat, Key: key, Payload: f} }

// B returns a bool entry.
func B(key string, b bool) Entry { return Entry{Tag: TagBool, Key: key, Payload: b} }

// N returns a null entry.
func N(key string) Entry { return Entry{Tag: TagNull, Key: key} }

// O returns a nested object entry with declared members.
func O(key string, declared int, entries ...Entry) Entry {
	return Entry{Tag: TagObject, Key: key, Payload: Nested{declared, entries}}
}

// A returns a nested array entry with declared elements.
func A(key string, declared int, entries ...Entry) Entry {
	return Entry{Tag: TagArray, Key: key, Payload: Nested{declared, entries}}
}

// R returns a raw entry. See Raw for the contract on raw.
func R(key, raw string) Entry { return Entry{Tag: TagRaw, Key: key, Payload: raw} }

// Skip returns a copy of e that is counted but not written.
func (e Entry) Skip() Entry {
	e.Ignore = true
	return e
}

// entryDecoder turns descriptor lists into Value trees.
type entryDecoder struct {
	path     []string
	maxDepth int
}

// container checks a declared count against entries and decodes them into
// an Array or Object value.
func (d *entryDecoder) container(kind Kind, declared int, entries []Entry, depth int) (Value, error) {
	if !kind.isContainer() {
		return Value{}, newBuildError(ErrMalformedInput, d.path,
			"container kind must be Object or Array, got %s", kind)
	}
	if d.maxDepth > 0 && depth > d.maxDepth {
		return Value{}, newBuildError(ErrTooDeep, d.path, "more than %d levels", d.maxDepth)
	}
	if declared != len(entries) {
		return Value{}, newBuildError(ErrMalformedInput, d.path,
			"declared %d entries, got %d", declared, len(entries))
	}
	var vv []Value
	var mm []Member
	for i, en := range entries {
		name := strconv.Itoa(i)
		if kind == KindObject {
			name = en.Key
		} else if en.Key != "" {
			d.path = append(d.path, name)
			err := newBuildError(ErrMalformedInput, d.path,
				"array entry with key %q", en.Key)
			d.path = d.path[:len(d.path)-1]
			return Value{}, err
		}
		d.path = append(d.path, name)
		v, err := d.entry(en, depth)
		d.path = d.path[:len(d.path)-1]
		if err != nil {
			return Value{}, err
		}
		if en.Ignore {
			continue
		}
		if kind == KindObject {
			mm = append(mm, Member{en.Key, v})
		} else {
			vv = append(vv, v)
		}
	}
	if kind == KindObject {
		return Obj(mm...), nil
	}
	return Arr(vv...), nil
}

func (d *entryDecoder) entry(en Entry, depth int) (Value, error) {
	switch en.Tag {
	case TagString:
		switch p := en.Payload.(type) {
		case nil:
			return Absent(), nil
		case string:
			return Str(p), nil
		case []byte:
			if p == nil {
				return Absent(), nil
			}
			return Str(string(p)), nil
		case *string:
			return StrPtr(p), nil
		}
	case TagInt:
		switch p := en.Payload.(type) {
		case int:
			return Int(int64(p)), nil
		case int8:
			return Int(int64(p)), nil
		case int16:
			return Int(int64(p)), nil
		case int32:
			return Int(int64(p)), nil
		case int64:
			return Int(p), nil
		}
	case TagUint:
		switch p := en.Payload.(type) {
		case uint:
			return Uint(uint64(p)), nil
		case uint8:
			return Uint(uint64(p)), nil
		case uint16:
			return Uint(uint64(p)), nil
		case uint32:
			return Uint(uint64(p)), nil
		case uint64:
			return Uint(p), nil
		case uintptr:
			return Uint(uint64(p)), nil
		}
	case TagFloat, TagSciFloat:
		var f float64
		switch p := en.Payload.(type) {
		case float32:
			f = widenFloat32(p)
		case float64:
			f = p
		default:
			return Value{}, d.payloadErr(en)
		}
		if en.Tag == TagSciFloat {
			return SciFloat(f), nil
		}
		return Float(f), nil
	case TagBool:
		if b, ok := en.Payload.(bool); ok {
			return Bool(b), nil
		}
	case TagNull:
		if en.Payload == nil {
			return Null(), nil
		}
	case TagObject, TagArray:
		var n Nested
		switch p := en.Payload.(type) {
		case Nested:
			n = p
		case *Nested:
			if p == nil {
				return Value{}, d.payloadErr(en)
			}
			n = *p
		default:
			return Value{}, d.payloadErr(en)
		}
		kind := KindObject
		if en.Tag == TagArray {
			kind = KindArray
		}
		return d.container(kind, n.Count, n.Entries, depth+1)
	case TagRaw:
		switch p := en.Payload.(type) {
		case string:
			return RawString(p), nil
		case []byte:
			return Raw(p), nil
		}
	default:
		return Value{}, newBuildError(ErrMalformedInput, d.path, "unknown tag %s", en.Tag)
	}
	return Value{}, d.payloadErr(en)
}

func (d *entryDecoder) payloadErr(en Entry) error {
	return newBuildError(ErrMalformedInput, d.path,
		"payload %T does not fit %s entry", en.Payload, en.Tag)
}
