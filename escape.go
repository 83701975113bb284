package mkjson

// hex holds the lowercase digits used for \u00xx escapes.
const hex = "0123456789abcdef"

// escapeTable maps every byte that has to be rewritten inside a JSON
// string to its short escape letter. Bytes below 0x20 without a short
// form map to 'u'. A zero entry means the byte is copied as is.
var escapeTable = func() (t [256]byte) {
	for c := 0; c < 0x20; c++ {
		t[c] = 'u'
	}
	t['"'] = '"'
	t['\\'] = '\\'
	t['\b'] = 'b'
	t['\t'] = 't'
	t['\n'] = 'n'
	t['\f'] = 'f'
	t['\r'] = 'r'
	return t
}()

// AppendEscaped appends the body of a JSON string literal holding s to dst
// and returns the extended slice. The surrounding quotes are not written.
//
// s is treated as raw bytes: bytes at or above 0x20 other than '"' and '\'
// are copied unchanged, so valid UTF-8 stays intact and invalid UTF-8 is
// passed through rather than rejected.
func AppendEscaped(dst []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		e := escapeTable[s[i]]
		if e == 0 {
			continue
		}
		dst = append(dst, s[start:i]...)
		if e == 'u' {
			dst = append(dst, '\\', 'u', '0', '0', hex[s[i]>>4], hex[s[i]&0x0f])
		} else {
			dst = append(dst, '\\', e)
		}
		start = i + 1
	}
	return append(dst, s[start:]...)
}

// Escape returns the escaped form of s. See AppendEscaped.
func Escape(s string) string {
	if !NeedsEscape(s) {
		return s
	}
	return string(AppendEscaped(make([]byte, 0, len(s)+len(s)/4+6), s))
}

// EscapeBytes is like Escape for byte slices. The result never aliases b.
func EscapeBytes(b []byte) []byte {
	return AppendEscaped(make([]byte, 0, len(b)+len(b)/4+6), string(b))
}

// NeedsEscape reports whether Escape would change s.
func NeedsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if escapeTable[s[i]] != 0 {
			return true
		}
	}
	return false
}

// escapedLen returns len(Escape(s)) without building the result.
func escapedLen(s string) int {
	n := len(s)
	for i := 0; i < len(s); i++ {
		switch escapeTable[s[i]] {
		case 0:
		case 'u':
			n += 5
		default:
			n++
		}
	}
	return n
}
