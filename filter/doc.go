/*
Package filter contains event consumers which rebuild source text from the
lexical events of a parse, dropping content on the way:

▪ CommentRemoval reconstructs the input without its comments

▪ Minify additionally collapses runs of whitespace into single blanks

Both are ordinary token handlers and may be driven by any entry point of
package tokenize; RemoveComments and Minified are one-call conveniences for
the common case.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package filter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uparse.filter'.
func tracer() tracing.Trace {
	return tracing.Select("uparse.filter")
}
