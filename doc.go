/*
Package uparse is a low-level, callback-driven lexical tokenizer.

uparse converts a stream of Unicode codepoints, either an in-memory string
or an incrementally read character stream, into a sequence of lexical
events: words, quoted strings, escape sequences, grouping delimiters,
separators, control characters, arbitrary punctuation, comments and
errors. It is intended to sit underneath higher-level grammars (a CSS
tokenizer, say) that need fine-grained access to raw lexical structure
without committing to any particular grammar. Package structure is
as follows:

■ tokenize: Package tokenize is the engine: Unicode-category driven
classification, comment-delimiter matching with backtracking, quote
scanning, string- and reader-backed sequence drivers.

■ filter: Package filter contains convenience event consumers which
reconstruct source text while dropping comments, optionally collapsing
whitespace.

The base package contains the handler contracts, error kinds and
character-check predicates which are used throughout the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package uparse
