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

// Minify is a token handler which reconstructs the parsed source without
// comments and with runs of whitespace collapsed into single blanks. It is
// meant to be driven with collapsed separator handling, see Minified.
type Minify struct {
	CommentRemoval
}

var _ uparse.TokenHandler = (*Minify)(nil)

// NewMinify creates a handler, pre-sizing the output for capacityHint
// bytes.
func NewMinify(capacityHint int) *Minify {
	h := &Minify{}
	if capacityHint > 0 {
		h.buf.Grow(capacityHint)
	}
	return h
}

func (h *Minify) Separator(index int, cp rune) error {
	if h.LastCodepoint() != ' ' {
		return h.CommentRemoval.Separator(index, cp)
	}
	return nil
}

// Control folds control characters into blanks.
func (h *Minify) Control(index int, cp rune) error {
	return h.Separator(index, ' ')
}

// Minified gives text back without comments and with whitespace collapsed.
func Minified(text string, opening, closing []string) (string, error) {
	h := NewMinify(len(text))
	tp := tokenize.NewTokenProducer(h, tokenize.HandleAllSeparators(false))
	if err := tp.ParseMultiComment(strings.NewReader(text), opening, closing); err != nil {
		return "", err
	}
	return h.String(), nil
}
