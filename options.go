package mkjson

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is
// given.
const DefaultMaxDepth = 512

// Option configures a single Marshal or Build call.
type Option func(*config)

type config struct {
	maxDepth    int
	maxBytes    int
	initialSize int
	validateRaw bool

	// layout, see Indent
	prefix   string
	indent   string
	commaSep string
	colonSep string
}

func newConfig(opts []Option) config {
	c := config{
		maxDepth: DefaultMaxDepth,
		commaSep: " ",
		colonSep: " ",
	}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// MaxDepth bounds how deep arrays and objects may nest. The top-level
// container has depth 1. Values below 1 disable the limit.
func MaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// MaxBytes bounds the size of the produced document. A document that would
// grow past n bytes fails with ErrAllocation. Values below 1 disable the
// limit.
func MaxBytes(n int) Option {
	return func(c *config) { c.maxBytes = n }
}

// InitialSize preallocates n bytes for the output buffer.
func InitialSize(n int) Option {
	return func(c *config) { c.initialSize = n }
}

// ValidateRaw makes the serializer check every Raw fragment and reject
// fragments that are not valid JSON with ErrMalformedInput. Without it Raw
// content is trusted.
func ValidateRaw(on bool) Option {
	return func(c *config) { c.validateRaw = on }
}

// Indent writes every array element and object member on its own line,
// starting with prefix followed by one copy of indent per nesting level.
func Indent(prefix, indent string) Option {
	return func(c *config) {
		c.prefix = prefix
		c.indent = indent
	}
}

// Compact drops the spaces written after commas and after the colon of
// object members.
func Compact() Option {
	return func(c *config) {
		c.commaSep = ""
		c.colonSep = ""
	}
}

func (c *config) indented() bool {
	return c.prefix != "" || c.indent != ""
}
