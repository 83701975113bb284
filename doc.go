/*
Package mkjson builds JSON text from typed entries.

A document is described either as a tree of Values built with the
constructors in this package or, closer to the wire, as a flat list of
tagged Entry descriptors together with a declared count:

	data, err := mkjson.Build(mkjson.KindObject, 2,
		mkjson.S("name", "USB Hub"),
		mkjson.I("port", 3),
	)

Every successful call returns one complete document in a new slice owned
by the caller. Every failed call returns nil and an error; no partial
output is ever handed out.

Strings are escaped byte by byte: quotes, backslashes and control
characters are rewritten, everything else, including multi-byte UTF-8, is
copied verbatim. Control characters without a short form are written as
\u00xx with lowercase hex digits.

mkjson only produces JSON. It never parses it.
*/
package mkjson // import "github.com/d1ced/mkjson"
