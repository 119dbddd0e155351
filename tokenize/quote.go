package tokenize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/uparse"
)

// quoted scans a quoted string starting at the current codepoint, which is
// the opening quote. Bodies containing unescaped control characters go
// through QuotedWithControl instead of Quoted; both report the index of the
// opening quote.
func (s *sequencer) quoted(quoteCp rune) error {
	openIdx := s.rootIndex
	body, emit, err := s.quotedSequence(quoteCp)
	if err != nil {
		return err
	}
	if emit {
		return s.content().Quoted(openIdx, body, quoteCp)
	}
	return nil
}

// quotedSequence consumes the body of a quoted string up to the closing
// quote, leaving rootIndex at the closing quote. emit is false if the body
// was already delivered through QuotedWithControl, or if the quote ended
// prematurely and leniency is off.
//
// Inside the body, a backslash escapes the quote character, and a
// backslash before a line terminator continues the string on the next
// line: the backslash is dropped and the terminator folds into a single
// '\n'. A backslash pair stands for itself. An unescaped line terminator
// ends the quote with an error.
func (s *sequencer) quotedSequence(qcp rune) (string, bool, error) {
	openIdx := s.rootIndex
	body := make([]rune, 0, 32)
	containsControls := false
	lastEscapedCR := false
	var prevcp rune = -1
	for {
		ncp, ok, err := s.src.nextCodepoint()
		if err != nil {
			return "", false, err
		}
		if !ok {
			break
		}
		if err := s.src.checkResourceUsage(); err != nil {
			return "", false, err
		}
		switch {
		case ncp == qcp:
			if prevcp != '\\' {
				if containsControls {
					err := s.content().QuotedWithControl(openIdx, string(body), qcp)
					return "", false, err
				}
				return string(body), true, nil
			}
			body = append(body, qcp)
		case ncp == 10 || ncp == 12 || ncp == 13:
			if prevcp != '\\' {
				if ncp != 10 || !lastEscapedCR {
					if err := s.errorh().Error(s.rootIndex, uparse.ErrUnexpectedEndQuoted,
						string(body)); err != nil {
						return "", false, err
					}
					if err := s.handleControl(ncp); err != nil {
						return "", false, err
					}
					if s.tp.acceptNewlineEndingQuote {
						return string(body), true, nil
					}
					return "", false, nil
				}
			} else {
				// line continuation, drop the backslash
				body = body[:len(body)-1]
				if err := s.controls().QuotedNewline(s.rootIndex, ncp); err != nil {
					return "", false, err
				}
			}
			if !lastEscapedCR {
				body = append(body, '\n')
			}
			lastEscapedCR = ncp == 13
			prevcp = ncp
			continue
		case isoControl(ncp):
			body = append(body, ncp)
			containsControls = true
		default:
			body = append(body, ncp)
			if ncp == '\\' && prevcp == '\\' {
				// the pair escapes itself, neutralize for the next round
				ncp = 'A'
			}
		}
		prevcp = ncp
		lastEscapedCR = false
	}
	// EOF before the closing quote
	if s.tp.acceptEofEndingQuoted {
		if !containsControls {
			return string(body), true, nil
		}
		err := s.content().QuotedWithControl(openIdx, string(body), qcp)
		return "", false, err
	}
	err := s.errorh().Error(s.rootIndex, uparse.ErrUnexpectedEndQuoted, string(body))
	return "", false, err
}
