package tokenize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// stringSequencer parses a string held in memory. The word in progress is
// a window [previdx, rootIndex) into the input, no accumulation buffer is
// needed. Mark/reset is always supported.
type stringSequencer struct {
	sequencer
	input     []rune
	markIndex int
}

var _ source = (*stringSequencer)(nil)

func newStringSequencer(tp *TokenProducer, s string, mgr *commentMatcher) *stringSequencer {
	ss := &stringSequencer{input: []rune(s)}
	ss.init(tp, mgr)
	ss.src = ss
	return ss
}

func (p *stringSequencer) parse() error {
	return p.run(true)
}

func (p *stringSequencer) parseComments() error {
	return p.run(false)
}

// --- source -----------------------------------------------------------------

func (p *stringSequencer) currentSequence() string {
	i, j := p.previdx, p.rootIndex
	if i < 0 {
		i = 0
	}
	if j > len(p.input) {
		j = len(p.input)
	}
	if i >= j {
		return ""
	}
	return string(p.input[i:j])
}

func (p *stringSequencer) resetCurrentSequence() {
	p.previdx = p.rootIndex
}

func (p *stringSequencer) nextCodepoint() (rune, bool, error) {
	p.rootIndex++
	if p.rootIndex >= len(p.input) {
		p.rootIndex = len(p.input)
		return 0, false, nil
	}
	return p.input[p.rootIndex], true, nil
}

func (p *stringSequencer) checkResourceUsage() error {
	// in-memory input is already paid for
	return nil
}

func (p *stringSequencer) accumulate(cp rune) {}

func (p *stringSequencer) flushWord(end int) error {
	if end > len(p.input) {
		end = len(p.input)
	}
	if end <= p.previdx {
		return nil
	}
	seq := p.input[p.previdx:end]
	if len(seq) == 1 && p.IsPreviousWhitelisted() {
		// an isolated whitelisted codepoint is no word
		return p.content().Character(p.previdx, seq[0])
	}
	return p.content().Word(p.previdx, string(seq))
}

func (p *stringSequencer) errorContext(index int) string {
	begin := index - 16
	if begin < 0 {
		begin = 0
	}
	end := index + 16
	if end > len(p.input) {
		end = len(p.input)
	}
	if begin >= end {
		return ""
	}
	return string(p.input[begin:end])
}

func (p *stringSequencer) markSupported() bool {
	return true
}

func (p *stringSequencer) mark(readAheadLimit int) error {
	p.markIndex = p.rootIndex
	return nil
}

func (p *stringSequencer) resetMark() error {
	p.rootIndex = p.markIndex
	return nil
}
