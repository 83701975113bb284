package mkjson

import (
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"
	"github.com/valyala/bytebufferpool"
)

// bufPool recycles output buffers between calls. A buffer never leaves
// the call that took it; callers always get a copy.
var bufPool bytebufferpool.Pool

// encoder appends one document to buf. The first error sticks and turns
// every later write into a no-op.
type encoder struct {
	buf   *bytebufferpool.ByteBuffer
	cfg   *config
	path  []string
	depth int
	err   error
}

// Marshal returns the JSON encoding of v. Scalars are valid documents of
// their own.
func Marshal(v Value, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	return encode(&cfg, func(e *encoder) { e.value(v) })
}

// MarshalIndent is like Marshal with the Indent option applied.
func MarshalIndent(v Value, prefix, indent string, opts ...Option) ([]byte, error) {
	opts = append(append([]Option(nil), opts...), Indent(prefix, indent))
	return Marshal(v, opts...)
}

// encode runs fn on a pooled buffer and hands out a copy of the result.
// On failure the buffer is reset and returned without anything escaping.
func encode(cfg *config, fn func(*encoder)) ([]byte, error) {
	e := &encoder{buf: bufPool.Get(), cfg: cfg}
	defer bufPool.Put(e.buf)
	if cfg.initialSize > cap(e.buf.B) {
		e.buf.B = make([]byte, 0, cfg.initialSize)
	}
	fn(e)
	if e.err != nil {
		return nil, e.err
	}
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.B)
	return out, nil
}

func (e *encoder) fail(err error, format string, args ...interface{}) {
	if e.err == nil {
		e.err = newBuildError(err, e.path, format, args...)
	}
}

// reserve reports whether n more bytes fit below the MaxBytes limit.
func (e *encoder) reserve(n int) bool {
	if e.err != nil {
		return false
	}
	if e.cfg.maxBytes > 0 && e.buf.Len()+n > e.cfg.maxBytes {
		e.fail(ErrAllocation, "document exceeds %d bytes", e.cfg.maxBytes)
		return false
	}
	return true
}

func (e *encoder) writeByte(c byte) {
	if e.reserve(1) {
		e.buf.B = append(e.buf.B, c)
	}
}

func (e *encoder) writeString(s string) {
	if e.reserve(len(s)) {
		e.buf.B = append(e.buf.B, s...)
	}
}

// writeQuoted writes s as a complete JSON string literal.
func (e *encoder) writeQuoted(s string) {
	if !e.reserve(escapedLen(s) + 2) {
		return
	}
	e.buf.B = append(e.buf.B, '"')
	e.buf.B = AppendEscaped(e.buf.B, s)
	e.buf.B = append(e.buf.B, '"')
}

func (e *encoder) newline() {
	e.writeByte('\n')
	e.writeString(e.cfg.prefix)
	for i := 0; i < e.depth; i++ {
		e.writeString(e.cfg.indent)
	}
}

func (e *encoder) value(v Value) {
	if e.err != nil {
		return
	}
	if !assertValueType(v) {
		e.fail(ErrMalformedInput, "internal type mismatch; want %s, got %T", v.kind, v.value)
		return
	}
	switch v.kind {
	case KindNull:
		e.writeString("null")
	case KindBool:
		if v.value.(bool) {
			e.writeString("true")
			return
		}
		e.writeString("false")
	case KindInt:
		e.number(strconv.AppendInt(make([]byte, 0, 24), v.value.(int64), 10))
	case KindUint:
		e.number(strconv.AppendUint(make([]byte, 0, 24), v.value.(uint64), 10))
	case KindFloat:
		e.float(v.value)
	case KindString:
		if v.value == nil {
			e.writeString("null")
			return
		}
		e.writeQuoted(v.value.(string))
	case KindRaw:
		e.raw(string(v.value.(rawFragment)))
	case KindArray:
		e.array(v.value.([]Value))
	case KindObject:
		e.object(v.value.([]Member))
	default:
		e.fail(ErrMalformedInput, "value of unknown kind %s", v.kind)
	}
}

func (e *encoder) number(b []byte) {
	if e.reserve(len(b)) {
		e.buf.B = append(e.buf.B, b...)
	}
}

// float writes f the way encoding/json does: shortest round-trip digits,
// exponent form only for very small or very large magnitudes.
func (e *encoder) float(x interface{}) {
	f, sci := floatOf(x), false
	if _, ok := x.(sciFloat); ok {
		sci = true
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.fail(ErrMalformedInput, "unsupported float value %v", f)
		return
	}
	e.number(appendFloat(make([]byte, 0, 32), f, sci))
}

func appendFloat(b []byte, f float64, sci bool) []byte {
	if sci {
		return strconv.AppendFloat(b, f, 'e', -1, 64)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

func (e *encoder) raw(s string) {
	if len(s) == 0 {
		e.fail(ErrMalformedInput, "empty raw fragment")
		return
	}
	if e.cfg.validateRaw && !gojson.Valid([]byte(s)) {
		e.fail(ErrMalformedInput, "raw fragment is not valid JSON")
		return
	}
	e.writeString(s)
}

// enter increases the nesting depth and reports whether it is allowed.
func (e *encoder) enter() bool {
	e.depth++
	if e.cfg.maxDepth > 0 && e.depth > e.cfg.maxDepth {
		e.fail(ErrTooDeep, "more than %d levels", e.cfg.maxDepth)
		return false
	}
	return true
}

func (e *encoder) separator(i int) {
	if i > 0 {
		e.writeByte(',')
		if !e.cfg.indented() {
			e.writeString(e.cfg.commaSep)
		}
	}
	if e.cfg.indented() {
		e.newline()
	}
}

func (e *encoder) closing(n int, c byte) {
	e.depth--
	if n > 0 && e.cfg.indented() {
		e.newline()
	}
	e.writeByte(c)
}

func (e *encoder) array(vv []Value) {
	if !e.enter() {
		return
	}
	e.writeByte('[')
	for i, v := range vv {
		e.separator(i)
		e.path = append(e.path, strconv.Itoa(i))
		e.value(v)
		e.path = e.path[:len(e.path)-1]
		if e.err != nil {
			return
		}
	}
	e.closing(len(vv), ']')
}

func (e *encoder) object(mm []Member) {
	if !e.enter() {
		return
	}
	e.writeByte('{')
	for i, m := range mm {
		e.separator(i)
		e.writeQuoted(m.Key)
		e.writeByte(':')
		e.writeString(e.cfg.colonSep)
		e.path = append(e.path, m.Key)
		e.value(m.Value)
		e.path = e.path[:len(e.path)-1]
		if e.err != nil {
			return
		}
	}
	e.closing(len(mm), '}')
}
