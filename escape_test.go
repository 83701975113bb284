package mkjson

import (
	"strings"
	"testing"
	"testing/quick"

	gojson "github.com/goccy/go-json"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		have, want string
	}{
		{``, ``},
		{`plain`, `plain`},
		{`value with "quotes"`, `value with \"quotes\"`},
		{`C:\Windows\System32`, `C:\\Windows\\System32`},
		{"line1\nline2", `line1\nline2`},
		{"\tindented", `\tindented`},
		{"\x01\x02\b\t\n\f\r\x1f", `\u0001\u0002\b\t\n\f\r\u001f`},
		{"\x00", `\u0000`},
		{"\x0b\x0e\x1a", `\u000b\u000e\u001a`},
		{"\x7f", "\x7f"},
		{"/", "/"},
		{"USB Hub (中文)", "USB Hub (中文)"},
		{"\xff\xfe", "\xff\xfe"},
		{`\\?\USB#VID_2109`, `\\\\?\\USB#VID_2109`},
	}
	for _, test := range tests {
		if got := Escape(test.have); got != test.want {
			t.Errorf("Escape(%q): got %s, want %s", test.have, got, test.want)
		}
		if got := string(EscapeBytes([]byte(test.have))); got != test.want {
			t.Errorf("EscapeBytes(%q): got %s, want %s", test.have, got, test.want)
		}
		if got := escapedLen(test.have); got != len(test.want) {
			t.Errorf("escapedLen(%q): got %d, want %d", test.have, got, len(test.want))
		}
		if NeedsEscape(test.have) != (test.have != test.want) {
			t.Errorf("NeedsEscape(%q) = %v", test.have, NeedsEscape(test.have))
		}
	}
}

func TestEscapeEveryByte(t *testing.T) {
	short := map[byte]string{
		'"': `\"`, '\\': `\\`, '\b': `\b`, '\t': `\t`, '\n': `\n`, '\f': `\f`, '\r': `\r`,
	}
	for c := 0; c < 256; c++ {
		b := byte(c)
		got := Escape(string([]byte{b}))
		switch want, ok := short[b]; {
		case ok:
			if got != want {
				t.Errorf("byte %#02x: got %s, want %s", b, got, want)
			}
		case b < 0x20:
			want := `\u00` + string(hex[b>>4]) + string(hex[b&0x0f])
			if got != want {
				t.Errorf("byte %#02x: got %s, want %s", b, got, want)
			}
		default:
			if got != string([]byte{b}) {
				t.Errorf("byte %#02x: got %q, want it unchanged", b, got)
			}
		}
	}
}

func TestAppendEscapedKeepsPrefix(t *testing.T) {
	dst := []byte(`{"k":"`)
	got := string(AppendEscaped(dst, "a\"b"))
	if got != `{"k":"a\"b` {
		t.Errorf("got %s", got)
	}
}

// wellEscaped reports whether s holds no raw quote, no control byte and
// only complete escape sequences.
func wellEscaped(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			if i+1 >= len(s) {
				return false
			}
			i++
			switch s[i] {
			case '"', '\\', 'b', 't', 'n', 'f', 'r':
			case 'u':
				if i+4 >= len(s) || s[i+1:i+3] != "00" ||
					!strings.ContainsRune(hex, rune(s[i+3])) ||
					!strings.ContainsRune(hex, rune(s[i+4])) {
					return false
				}
				i += 4
			default:
				return false
			}
		case c == '"', c < 0x20:
			return false
		}
	}
	return true
}

func TestEscapeProperties(t *testing.T) {
	escaped := func(b []byte) bool {
		s := Escape(string(b))
		return wellEscaped(s) && len(s) >= len(b)
	}
	if err := quick.Check(escaped, nil); err != nil {
		t.Error(err)
	}

	untouched := func(b []byte) bool {
		clean := make([]byte, 0, len(b))
		for _, c := range b {
			if c >= 0x20 && c != '"' && c != '\\' {
				clean = append(clean, c)
			}
		}
		return Escape(string(clean)) == string(clean)
	}
	if err := quick.Check(untouched, nil); err != nil {
		t.Error(err)
	}

	roundTrip := func(s string) bool {
		var got string
		err := gojson.Unmarshal([]byte(`"`+Escape(s)+`"`), &got)
		return err == nil && got == s
	}
	if err := quick.Check(roundTrip, nil); err != nil {
		t.Error(err)
	}
}

func TestEscapeLongInput(t *testing.T) {
	long := strings.Repeat(`"\`, 512)[:1023]
	got := Escape(long)
	if len(got) != 2046 {
		t.Errorf("want 2046 bytes, got %d", len(got))
	}
	if !wellEscaped(got) {
		t.Error("long string not escaped")
	}
}
