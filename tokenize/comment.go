package tokenize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"github.com/npillmayer/uparse"
)

// commentAction is the outcome of offering a codepoint to the comment
// matcher.
type commentAction int8

const (
	// actPassed: no comment delimiter involved, classify normally.
	actPassed commentAction = iota
	// actPending: buffered as part of a tentative opening delimiter.
	actPending
	// actComment: a full comment was consumed, including its closing.
	actComment
)

// commentMatcher matches comment-opening delimiters incrementally. Several
// delimiter pairs may be registered; the pair index is the comment class
// reported with the Commented event. While an opening is partially matched,
// the consumed codepoints sit in hold, to be replayed as ordinary content
// should the match fail.
type commentMatcher struct {
	opening  [][]rune
	closing  [][]rune
	disabled []bool
	index    int // codepoints of opening[class] matched so far
	class    int
	hold     []rune
}

// newCommentMatcher validates and compiles comment delimiter pairs.
// closing[i] closes the comment opened by opening[i]. Delimiters must be
// non-empty and may not contain a backslash.
func newCommentMatcher(opening []string, closing []string) (*commentMatcher, error) {
	if len(opening) == 0 || len(opening) != len(closing) {
		return nil, errors.New("unmatched comment delimiter pairs")
	}
	m := &commentMatcher{
		opening:  make([][]rune, len(opening)),
		closing:  make([][]rune, len(closing)),
		disabled: make([]bool, len(opening)),
		hold:     make([]rune, 0, 8),
	}
	for i := range opening {
		o, c := []rune(opening[i]), []rune(closing[i])
		if len(o) == 0 || len(c) == 0 {
			return nil, errors.New("empty comment delimiter")
		}
		if containsRune(o, '\\') || containsRune(c, '\\') {
			return nil, errors.New("backslash is not an allowed comment delimiter character")
		}
		m.opening[i], m.closing[i] = o, c
	}
	return m, nil
}

func (m *commentMatcher) closingEndsWith(cp rune) bool {
	c := m.closing[m.class]
	return c[len(c)-1] == cp
}

func (m *commentMatcher) enableAll() {
	for i := range m.disabled {
		m.disabled[i] = false
	}
}

func (m *commentMatcher) disableAll() {
	for i := range m.disabled {
		m.disabled[i] = true
	}
}

func (m *commentMatcher) enable(class int) {
	if class >= 0 && class < len(m.disabled) {
		m.disabled[class] = false
	}
}

func (m *commentMatcher) disable(class int) {
	if class >= 0 && class < len(m.disabled) {
		m.disabled[class] = true
	}
}

// verifyComment offers cp to the comment matcher. On a full opening match
// the entire comment is consumed here, including the word preceding it and
// the comment body up to the closing delimiter.
func (s *sequencer) verifyComment(cp rune) (commentAction, error) {
	m := s.mgr
	if m.index == 0 {
		return s.tryCommentStart(cp)
	}
	if !m.disabled[m.class] && m.opening[m.class][m.index] == cp {
		m.index++
		m.hold = append(m.hold, cp)
		if m.index == len(m.opening[m.class]) {
			return actComment, s.beginComment()
		}
		return actPending, nil
	}
	// The tentative opening just failed. Another registered opening may
	// share the buffered prefix; the first registered one wins.
	for i := range m.opening {
		if i == m.class || m.disabled[i] {
			continue
		}
		if len(m.opening[i]) > m.index && runesEqual(m.opening[i][:m.index], m.hold) &&
			m.opening[i][m.index] == cp {
			m.class = i
			m.index++
			m.hold = append(m.hold, cp)
			if m.index == len(m.opening[i]) {
				return actComment, s.beginComment()
			}
			return actPending, nil
		}
	}
	// No opening fits any longer: the lookahead becomes ordinary content,
	// and cp itself may still start a fresh opening.
	if err := s.replayHold(); err != nil {
		return actPassed, err
	}
	return s.tryCommentStart(cp)
}

// tryCommentStart begins a tentative opening match with cp, or passes it
// through.
func (s *sequencer) tryCommentStart(cp rune) (commentAction, error) {
	m := s.mgr
	for i := range m.opening {
		if m.disabled[i] || m.opening[i][0] != cp {
			continue
		}
		m.class = i
		m.index = 1
		m.hold = append(m.hold[:0], cp)
		if len(m.opening[i]) == 1 {
			return actComment, s.beginComment()
		}
		return actPending, nil
	}
	return actPassed, nil
}

// replayHold reprocesses the buffered lookahead as ordinary codepoints, at
// their original indexes, with comment matching switched off.
func (s *sequencer) replayHold() error {
	m := s.mgr
	hold := append([]rune(nil), m.hold...)
	m.index = 0
	m.hold = m.hold[:0]
	saved := s.rootIndex
	for i, hcp := range hold {
		s.rootIndex = saved - len(hold) + i
		if _, err := s.process(hcp, true); err != nil {
			s.rootIndex = saved
			return err
		}
	}
	s.rootIndex = saved
	return nil
}

// beginComment is entered with rootIndex at the last codepoint of a fully
// matched opening delimiter. It flushes a preceding word, consumes the
// comment body and emits the Commented event.
func (s *sequencer) beginComment() error {
	m := s.mgr
	start := s.rootIndex - len(m.opening[m.class]) + 1
	if s.isWordPreviousCodepoint() {
		if err := s.src.flushWord(start); err != nil {
			return err
		}
	}
	m.index = 0
	m.hold = m.hold[:0]
	s.previdx = s.rootIndex + 1
	body, err := s.commentedSequence()
	if err != nil {
		return err
	}
	tracer().Debugf("comment class %d at %d: %q", m.class, start, body)
	if err := s.content().Commented(start, m.class, body); err != nil {
		return err
	}
	s.src.resetCurrentSequence()
	s.previdx = s.rootIndex + 1
	s.prevtype = ptInitial
	return nil
}

// commentedSequence consumes the comment body up to the closing delimiter
// of the matched class, leaving rootIndex at the closing's last codepoint.
// Among overlapping candidates the shortest valid body wins. An EOF before
// the closing delimiter is an error, unless the closing ends with a line
// feed, which the end of input legitimately stands in for.
func (s *sequencer) commentedSequence() (string, error) {
	m := s.mgr
	closing := m.closing[m.class]
	body := make([]rune, 0, 64)
	lastCpCR := false
	closeIdx := 0
	for {
		ncp, ok, err := s.src.nextCodepoint()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if err := s.src.checkResourceUsage(); err != nil {
			return "", err
		}
		if ncp == 10 || ncp == 12 || ncp == 13 {
			if ncp != 10 || !lastCpCR {
				if s.externalControlHandling {
					if err := s.controls().Control(s.rootIndex, ncp); err != nil {
						return "", err
					}
				}
				s.line++
				s.prevlinelength = s.rootIndex
			}
			lastCpCR = ncp == 13
		} else {
			lastCpCR = false
		}
		if closing[closeIdx] == ncp {
			closeIdx++
			if closeIdx == len(closing) {
				return string(body), nil
			}
			continue
		}
		if closeIdx != 0 {
			var emit []rune
			emit, closeIdx = closingResync(closing, closeIdx, ncp)
			body = append(body, emit...)
			continue
		}
		body = append(body, ncp)
	}
	if !m.closingEndsWith(10) {
		if err := s.reportError(s.rootIndex, uparse.ErrUnexpectedEndCommented); err != nil {
			return "", err
		}
	}
	return string(body), nil
}

// closingResync realigns a partially matched closing delimiter after a
// mismatch: the longest closing prefix still pending is kept, the rest
// belongs to the comment body.
func closingResync(closing []rune, closeIdx int, cp rune) (emit []rune, newIdx int) {
	tent := make([]rune, 0, closeIdx+1)
	tent = append(tent, closing[:closeIdx]...)
	tent = append(tent, cp)
	for k := len(tent) - 1; k > 0; k-- {
		if runesEqual(closing[:k], tent[len(tent)-k:]) {
			return tent[:len(tent)-k], k
		}
	}
	return tent, 0
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsRune(rs []rune, cp rune) bool {
	for _, r := range rs {
		if r == cp {
			return true
		}
	}
	return false
}
