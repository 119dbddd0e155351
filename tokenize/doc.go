/*
Package tokenize produces lexical tokens from a string or a character
stream, and processes them through a caller-provided handler.

The tokens produced are:

▪ words, containing letters, digits, marks, format characters, connector
punctuation and any codepoint accepted by the configured character check

▪ quoted text, within single or double quotes

▪ grouping characters {}[]()

▪ separators

▪ escaped characters: anything after a backslash, unless within quoted text

▪ control characters

▪ other characters, emitted standalone

▪ comments, if a comment-supporting entry point is used

A TokenProducer drives exactly one pass per call over a finite source,
classifying one codepoint at a time by its Unicode general category. A
moderate level of control over a running parse can be achieved with the
uparse.TokenControl object handed to the handler's TokenStart callback.

Entry points that read from a stream enforce a resource ceiling (one
Gigabyte of codepoints unless configured otherwise) and abort with
ErrCharacterLimit when an input exceeds it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tokenize
