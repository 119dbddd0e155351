/*
Package tokview/main provides an interactive command line tool for
inspecting the token stream of the uparse tokenizer. Users enter a line of
text and get the resulting lexical events printed one per row, together
with their codepoint indexes. It serves as a sandbox for experiments with
comment delimiters and word-character whitelists.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uparse.tokenize'
func tracer() tracing.Trace {
	return tracing.Select("uparse.tokenize")
}
