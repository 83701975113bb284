package mkjson

// Build serializes declared entries into a JSON object or array, depending
// on kind. It fails with ErrMalformedInput when declared differs from the
// number of entries, at any nesting level, when a tag is unknown or when a
// payload does not fit its tag.
//
// The returned slice belongs to the caller and is one complete document.
// On failure it is nil.
func Build(kind Kind, declared int, entries ...Entry) ([]byte, error) {
	return BuildWith(nil, kind, declared, entries...)
}

// BuildWith is like Build with options.
func BuildWith(opts []Option, kind Kind, declared int, entries ...Entry) ([]byte, error) {
	cfg := newConfig(opts)
	d := &entryDecoder{maxDepth: cfg.maxDepth}
	v, err := d.container(kind, declared, entries, 1)
	if err != nil {
		return nil, err
	}
	return encode(&cfg, func(e *encoder) { e.value(v) })
}

// Valid reports whether v can be serialized with the given options.
func Valid(v Value, opts ...Option) bool {
	cfg := newConfig(opts)
	_, err := encode(&cfg, func(e *encoder) { e.value(v) })
	return err == nil
}
