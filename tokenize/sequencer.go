package tokenize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/uparse"
)

// prevType is the classification outcome of the previous codepoint.
type prevType int8

const (
	ptInitial prevType = iota
	ptSeparator
	ptWord
	ptPendingWChar // accepted by the character check only, merge still pending
	ptControl
	ptConsumedOther
)

// source is the per-source-kind backend of a sequencer. It owns the forward
// cursor and the word accumulation, which for string input is a window into
// the input and for stream input is a growing buffer.
type source interface {
	// currentSequence gives the contents of the word currently being formed.
	currentSequence() string

	// resetCurrentSequence empties the current sequence.
	resetCurrentSequence()

	// nextCodepoint advances the cursor and returns the codepoint at the new
	// position, leaving rootIndex at the index of the returned codepoint.
	// ok is false once the input is exhausted; rootIndex then equals the
	// total codepoint count.
	nextCodepoint() (cp rune, ok bool, err error)

	// checkResourceUsage enforces the character limit, if any.
	checkResourceUsage() error

	// accumulate records a word constituent. A no-op for string input.
	accumulate(cp rune)

	// flushWord emits the word in progress, ending just before index end.
	// A single codepoint accepted by the character check only is emitted as
	// a standalone character instead. No-op if no word is in progress.
	flushWord(end int) error

	// errorContext gives a bounded snippet of the source around index.
	errorContext(index int) string

	markSupported() bool
	mark(readAheadLimit int) error
	resetMark() error
}

// sequencer is the state shared by both source kinds: the parse position,
// the classification state, line bookkeeping and the comment matcher. The
// sub-scanners for quoted text and comment bodies operate directly on this
// state, they are not independent parsers.
type sequencer struct {
	tp  *TokenProducer
	src source
	mgr *commentMatcher // nil if comments are not recognized
	ctl *tokenControl

	prevtype       prevType
	rootIndex      int // index of the codepoint being classified
	previdx        int // start of the in-progress token, previdx <= rootIndex
	line           int
	prevlinelength int // index of the last line terminator seen
	sawCRPendingLF bool

	externalControlHandling bool
}

func (s *sequencer) init(tp *TokenProducer, mgr *commentMatcher) {
	s.tp = tp
	s.mgr = mgr
	s.rootIndex = -1
	s.line = 1
	s.prevlinelength = -1
	s.externalControlHandling = true
	s.ctl = &tokenControl{s: s}
}

func (s *sequencer) content() uparse.ContentHandler  { return s.tp.content }
func (s *sequencer) controls() uparse.ControlHandler { return s.tp.control }
func (s *sequencer) errorh() uparse.ErrorHandler     { return s.tp.errors }

// --- uparse.Sequence --------------------------------------------------------

var _ uparse.Sequence = (*sequencer)(nil)

// CurrentSequence is part of the uparse.Sequence interface.
func (s *sequencer) CurrentSequence() string {
	return s.src.currentSequence()
}

// IsPreviousWhitelisted is part of the uparse.Sequence interface.
func (s *sequencer) IsPreviousWhitelisted() bool {
	return s.prevtype == ptPendingWChar
}

// TokenControl is part of the uparse.Sequence interface.
func (s *sequencer) TokenControl() uparse.TokenControl {
	return s.ctl
}

// ResetCurrentSequence is part of the uparse.Sequence interface.
func (s *sequencer) ResetCurrentSequence() {
	s.src.resetCurrentSequence()
}

// --- Main loop --------------------------------------------------------------

// run is the parse loop, shared by both source kinds. With nocomment set,
// codepoints bypass the comment matcher entirely.
func (s *sequencer) run(nocomment bool) error {
	if err := s.controls().TokenStart(s.ctl); err != nil {
		return err
	}
	swallowLF := false
	for {
		cp, ok, err := s.src.nextCodepoint()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if swallowLF {
			swallowLF = false
			if cp == 10 {
				// LF immediately after a CR-terminated comment closing
				s.previdx = s.rootIndex + 1
				continue
			}
		}
		act, err := s.process(cp, nocomment)
		if err != nil {
			return err
		}
		if act == actComment && s.mgr.closingEndsWith(13) {
			swallowLF = true
		}
	}
	return s.finish()
}

// finish flushes a pending word and lookahead, then signals the end of the
// stream. rootIndex equals the total codepoint count here.
func (s *sequencer) finish() error {
	var hold []rune
	if s.mgr != nil {
		hold = s.mgr.hold
	}
	start := s.rootIndex - len(hold)
	if err := s.src.flushWord(start); err != nil {
		return err
	}
	// a partially matched comment opening is delivered as plain characters
	for i, hcp := range hold {
		if err := s.content().Character(start+i, hcp); err != nil {
			return err
		}
	}
	return s.content().EndOfStream(s.rootIndex)
}

// process classifies one codepoint and accounts for word accumulation.
func (s *sequencer) process(cp rune, nocomment bool) (commentAction, error) {
	act, err := s.processCodePoint(cp, nocomment)
	if err != nil {
		return act, err
	}
	if act == actPassed && s.isWordPreviousCodepoint() {
		s.src.accumulate(cp)
	}
	return act, nil
}

// processCodePoint classifies one codepoint by Unicode category and emits
// the resulting events. Unless nocomment is set, the codepoint is first
// offered to the comment matcher, which may buffer it as a tentative
// opening (actPending) or consume a whole comment (actComment).
func (s *sequencer) processCodePoint(cp rune, nocomment bool) (commentAction, error) {
	if err := s.src.checkResourceUsage(); err != nil {
		return actPassed, err
	}
	if !nocomment && s.mgr != nil {
		act, err := s.verifyComment(cp)
		if act != actPassed || err != nil {
			return act, err
		}
	}
	switch {
	case unicode.In(cp, unicode.Zs, unicode.Zl, unicode.Zp):
		if s.tp.handleAllSeparators || s.prevtype != ptSeparator {
			if err := s.checkPreviousWord(); err != nil {
				return actPassed, err
			}
			if err := s.content().Separator(s.rootIndex, cp); err != nil {
				return actPassed, err
			}
			s.prevtype = ptSeparator
		}
		s.previdx = s.rootIndex + 1

	case unicode.In(cp, unicode.L, unicode.Nd, unicode.Nl, unicode.No,
		unicode.Pc, unicode.M, unicode.Cf):
		s.prevtype = ptWord

	case unicode.Is(unicode.Cc, cp):
		if err := s.checkPreviousWord(); err != nil {
			return actPassed, err
		}
		s.prevtype = ptControl
		if err := s.handleControl(cp); err != nil {
			return actPassed, err
		}
		s.previdx = s.rootIndex + 1

	case unicode.Is(unicode.Ps, cp):
		if s.tp.charCheck.AllowedInWord(cp, s) {
			s.prevtype = ptPendingWChar
			break
		}
		if err := s.checkPreviousWord(); err != nil {
			return actPassed, err
		}
		var err error
		switch cp {
		case '(':
			err = s.content().LeftParenthesis(s.rootIndex)
		case '[':
			err = s.content().LeftSquareBracket(s.rootIndex)
		case '{':
			err = s.content().LeftCurlyBracket(s.rootIndex)
		default:
			err = s.content().StartPunctuation(s.rootIndex, cp)
		}
		if err != nil {
			return actPassed, err
		}
		s.updatePrev()

	case unicode.Is(unicode.Pe, cp):
		if s.tp.charCheck.AllowedInWord(cp, s) {
			s.prevtype = ptPendingWChar
			break
		}
		if err := s.checkPreviousWord(); err != nil {
			return actPassed, err
		}
		var err error
		switch cp {
		case ')':
			err = s.content().RightParenthesis(s.rootIndex)
		case ']':
			err = s.content().RightSquareBracket(s.rootIndex)
		case '}':
			err = s.content().RightCurlyBracket(s.rootIndex)
		default:
			err = s.content().EndPunctuation(s.rootIndex, cp)
		}
		if err != nil {
			return actPassed, err
		}
		s.updatePrev()

	case unicode.Is(unicode.Po, cp):
		if s.tp.charCheck.AllowedInWord(cp, s) {
			s.prevtype = ptPendingWChar
			break
		}
		if err := s.checkPreviousWord(); err != nil {
			return actPassed, err
		}
		if cp == '"' || cp == '\'' {
			if err := s.quoted(cp); err != nil {
				return actPassed, err
			}
		} else if cp == '\\' {
			ncp, ok, err := s.src.nextCodepoint()
			if err != nil {
				return actPassed, err
			}
			if err := s.src.checkResourceUsage(); err != nil {
				return actPassed, err
			}
			if ok {
				err = s.content().Escaped(s.rootIndex, ncp)
			} else {
				err = s.reportError(s.rootIndex-1, uparse.ErrLastCharBackslash)
			}
			if err != nil {
				return actPassed, err
			}
		} else {
			if err := s.content().Character(s.rootIndex, cp); err != nil {
				return actPassed, err
			}
		}
		s.updatePrev()

	case unicode.In(cp, unicode.Sk, unicode.Sm, unicode.Sc, unicode.Pd,
		unicode.Pi, unicode.Pf, unicode.So, unicode.Cs):
		if s.tp.charCheck.AllowedInWord(cp, s) {
			s.prevtype = ptPendingWChar
			break
		}
		if err := s.checkPreviousWord(); err != nil {
			return actPassed, err
		}
		if err := s.content().Character(s.rootIndex, cp); err != nil {
			return actPassed, err
		}
		s.updatePrev()

	default:
		// unassigned and private-use codepoints are emitted standalone
		if err := s.checkPreviousWord(); err != nil {
			return actPassed, err
		}
		if err := s.content().Character(s.rootIndex, cp); err != nil {
			return actPassed, err
		}
		s.updatePrev()
	}
	return actPassed, nil
}

func (s *sequencer) updatePrev() {
	s.previdx = s.rootIndex + 1
	s.prevtype = ptConsumedOther
}

// checkPreviousWord flushes a word left in progress by the previous
// codepoint, if any.
func (s *sequencer) checkPreviousWord() error {
	if !s.isWordPreviousCodepoint() {
		return nil
	}
	if err := s.src.flushWord(s.rootIndex); err != nil {
		return err
	}
	s.src.resetCurrentSequence()
	return nil
}

// isWordPreviousCodepoint reports whether a word is in progress.
func (s *sequencer) isWordPreviousCodepoint() bool {
	return s.prevtype == ptWord || s.prevtype == ptPendingWChar
}

// --- Control handling -------------------------------------------------------

// handleControl routes a control codepoint. With external control handling
// enabled (the default) every control codepoint is forwarded unfiltered to
// the control handler. Otherwise LF, FF and TAB become separators, CR and
// CRLF advance the line counter, other low ASCII controls are reported as
// errors, and the non-ASCII remainder is forwarded.
func (s *sequencer) handleControl(cp rune) error {
	if s.externalControlHandling {
		return s.controls().Control(s.rootIndex, cp)
	}
	switch cp {
	case 10: // LF
		if err := s.content().Separator(s.rootIndex, 10); err != nil {
			return err
		}
		if !s.sawCRPendingLF {
			s.line++
			s.prevlinelength = s.rootIndex
		} else {
			s.sawCRPendingLF = false
			if s.rootIndex-s.prevlinelength == 1 {
				s.prevlinelength++
			} else {
				return s.errorh().Error(s.rootIndex, uparse.ErrUnexpectedControl,
					fmt.Sprintf("unexpected codepoint: U+%04X", cp))
			}
		}
	case 12: // FF
		if err := s.content().Separator(s.rootIndex, 10); err != nil {
			return err
		}
		if !s.sawCRPendingLF {
			s.line++
		} else {
			s.sawCRPendingLF = false
			if s.rootIndex-s.prevlinelength != 1 {
				s.line++
			}
		}
		s.prevlinelength = s.rootIndex
	case 13: // CR
		s.line++
		s.prevlinelength = s.rootIndex
		s.sawCRPendingLF = true
	case 9: // TAB
		return s.content().Separator(s.rootIndex, 9)
	default:
		if cp < 0x80 {
			return s.errorh().Error(s.rootIndex, uparse.ErrUnexpectedControl,
				fmt.Sprintf("unexpected codepoint: U+%04X", cp))
		}
		return s.controls().Control(s.rootIndex, cp)
	}
	return nil
}

func (s *sequencer) reportError(index int, code uparse.ErrorCode) error {
	tracer().Debugf("lexical error at %d: %s", index, code)
	return s.errorh().Error(index, code, s.src.errorContext(index))
}

func isoControl(cp rune) bool {
	return cp >= 0 && cp <= 0x1f || cp >= 0x7f && cp <= 0x9f
}
