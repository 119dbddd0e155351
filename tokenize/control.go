package tokenize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"io"

	"github.com/npillmayer/uparse"
)

// tokenControl is the uparse.TokenControl surface of a running parse. It is
// handed to the control handler's TokenStart callback.
type tokenControl struct {
	s *sequencer
}

var _ uparse.TokenControl = (*tokenControl)(nil)

func (tc *tokenControl) EnableAllComments() {
	if tc.s.mgr != nil {
		tc.s.mgr.enableAll()
	}
}

func (tc *tokenControl) DisableAllComments() {
	if tc.s.mgr != nil {
		tc.s.mgr.disableAll()
	}
}

func (tc *tokenControl) EnableComments(class int) {
	if tc.s.mgr != nil {
		tc.s.mgr.enable(class)
	}
}

func (tc *tokenControl) DisableComments(class int) {
	if tc.s.mgr != nil {
		tc.s.mgr.disable(class)
	}
}

func (tc *tokenControl) SetAcceptNewlineEndingQuote(accept bool) {
	tc.s.tp.acceptNewlineEndingQuote = accept
}

func (tc *tokenControl) SetAcceptEofEndingQuoted(accept bool) {
	tc.s.tp.acceptEofEndingQuoted = accept
}

func (tc *tokenControl) SetExternalLocationHandling(enable bool) {
	tc.s.externalControlHandling = enable
}

// SkipNextCodepoint consumes the next raw codepoint, bypassing normal
// processing.
func (tc *tokenControl) SkipNextCodepoint() (rune, error) {
	cp, ok, err := tc.s.src.nextCodepoint()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, io.EOF
	}
	tc.s.previdx = tc.s.rootIndex + 1
	return cp, nil
}

func (tc *tokenControl) MarkStreamSupported() bool {
	return tc.s.src.markSupported()
}

func (tc *tokenControl) MarkStream(readAheadLimit int) error {
	return tc.s.src.mark(readAheadLimit)
}

func (tc *tokenControl) ResetStream() error {
	return tc.s.src.resetMark()
}

func (tc *tokenControl) SetLocationTo(loc uparse.Locator) {
	loc.SetLocation(tc.s.line, tc.s.rootIndex-tc.s.prevlinelength)
}

func (tc *tokenControl) SetLocationToIndex(loc uparse.Locator, index int) {
	loc.SetLocation(tc.s.line, index-tc.s.prevlinelength)
}

func (tc *tokenControl) ContentHandler() uparse.ContentHandler {
	return tc.s.tp.content
}

func (tc *tokenControl) SetContentHandler(h uparse.ContentHandler) {
	tc.s.tp.content = h
}

func (tc *tokenControl) ControlHandler() uparse.ControlHandler {
	return tc.s.tp.control
}

func (tc *tokenControl) SetControlHandler(h uparse.ControlHandler) {
	tc.s.tp.control = h
}

func (tc *tokenControl) ErrorHandler() uparse.ErrorHandler {
	return tc.s.tp.errors
}

func (tc *tokenControl) SetErrorHandler(h uparse.ErrorHandler) {
	tc.s.tp.errors = h
}

// SetTokenHandler swaps all three handler roles at once.
func (tc *tokenControl) SetTokenHandler(h uparse.TokenHandler) {
	tc.s.tp.content = h
	tc.s.tp.control = h
	tc.s.tp.errors = h
}
