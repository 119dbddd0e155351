package filter

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/uparse"
	"github.com/npillmayer/uparse/tokenize"
)

// CommentRemoval is a token handler which reconstructs the parsed source,
// leaving out the comments. Lexical errors are ignored, parsing continues.
type CommentRemoval struct {
	buf    strings.Builder
	lastCp rune
}

var _ uparse.TokenHandler = (*CommentRemoval)(nil)

// NewCommentRemoval creates a handler, pre-sizing the output for
// capacityHint bytes.
func NewCommentRemoval(capacityHint int) *CommentRemoval {
	h := &CommentRemoval{}
	if capacityHint > 0 {
		h.buf.Grow(capacityHint)
	}
	return h
}

// String gives the reconstructed text.
func (h *CommentRemoval) String() string {
	return h.buf.String()
}

// Reset empties the output for reuse.
func (h *CommentRemoval) Reset() {
	h.buf.Reset()
	h.lastCp = 0
}

// LastCodepoint gives the codepoint written most recently, 0 initially.
func (h *CommentRemoval) LastCodepoint() rune {
	return h.lastCp
}

func (h *CommentRemoval) append(cp rune) error {
	h.buf.WriteRune(cp)
	h.lastCp = cp
	return nil
}

func (h *CommentRemoval) appendString(s string) error {
	h.buf.WriteString(s)
	for _, cp := range s { // remember the last codepoint
		h.lastCp = cp
	}
	return nil
}

func (h *CommentRemoval) Word(index int, word string) error {
	return h.appendString(word)
}

func (h *CommentRemoval) Separator(index int, cp rune) error {
	return h.append(cp)
}

func (h *CommentRemoval) Quoted(index int, quoted string, quote rune) error {
	h.buf.WriteRune(quote)
	h.buf.WriteString(quoted)
	return h.append(quote)
}

func (h *CommentRemoval) QuotedWithControl(index int, quoted string, quote rune) error {
	return h.Quoted(index, quoted, quote)
}

func (h *CommentRemoval) LeftParenthesis(index int) error   { return h.append('(') }
func (h *CommentRemoval) RightParenthesis(index int) error  { return h.append(')') }
func (h *CommentRemoval) LeftSquareBracket(index int) error { return h.append('[') }
func (h *CommentRemoval) RightSquareBracket(index int) error {
	return h.append(']')
}
func (h *CommentRemoval) LeftCurlyBracket(index int) error  { return h.append('{') }
func (h *CommentRemoval) RightCurlyBracket(index int) error { return h.append('}') }

func (h *CommentRemoval) StartPunctuation(index int, cp rune) error {
	return h.append(cp)
}

func (h *CommentRemoval) EndPunctuation(index int, cp rune) error {
	return h.append(cp)
}

func (h *CommentRemoval) Character(index int, cp rune) error {
	return h.append(cp)
}

func (h *CommentRemoval) Escaped(index int, cp rune) error {
	h.buf.WriteRune('\\')
	return h.append(cp)
}

func (h *CommentRemoval) Commented(index int, class int, comment string) error {
	// that's the point
	return nil
}

func (h *CommentRemoval) EndOfStream(length int) error {
	return nil
}

func (h *CommentRemoval) TokenStart(ctl uparse.TokenControl) error {
	return nil
}

func (h *CommentRemoval) Control(index int, cp rune) error {
	return h.append(cp)
}

func (h *CommentRemoval) QuotedNewline(index int, cp rune) error {
	return h.append(cp)
}

func (h *CommentRemoval) Error(index int, code uparse.ErrorCode, context string) error {
	tracer().Infof("ignoring lexical error at %d: %s", index, code)
	return nil
}

// RemoveComments gives text back without the comments delimited by any of
// the opening/closing pairs.
func RemoveComments(text string, opening, closing []string) (string, error) {
	h := NewCommentRemoval(len(text))
	tp := tokenize.NewTokenProducer(h)
	if err := tp.ParseMultiComment(strings.NewReader(text), opening, closing); err != nil {
		return "", err
	}
	return h.String(), nil
}
