package tokenize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/uparse"
)

// readerSequencer parses a character stream. Word constituents accumulate
// in a buffer as the stream cannot be revisited; the configured character
// limit guards against unbounded input.
type readerSequencer struct {
	sequencer
	in     io.RuneReader
	buffer []rune
	eof    bool
}

var _ source = (*readerSequencer)(nil)

func newReaderSequencer(tp *TokenProducer, r io.Reader, mgr *commentMatcher) (*readerSequencer, error) {
	rr, err := runeReaderFor(r)
	if err != nil {
		return nil, err
	}
	rs := &readerSequencer{
		in:     rr,
		buffer: make([]rune, 0, tp.bufferCapacity),
	}
	rs.init(tp, mgr)
	rs.src = rs
	return rs, nil
}

func (p *readerSequencer) parse() error {
	return p.run(true)
}

func (p *readerSequencer) parseComments() error {
	return p.run(false)
}

// --- source -----------------------------------------------------------------

func (p *readerSequencer) currentSequence() string {
	return string(p.buffer)
}

func (p *readerSequencer) resetCurrentSequence() {
	p.buffer = p.buffer[:0]
}

func (p *readerSequencer) nextCodepoint() (rune, bool, error) {
	if p.eof {
		return 0, false, nil
	}
	cp, _, err := p.in.ReadRune()
	if err == io.EOF {
		p.eof = true
		p.rootIndex++
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	p.rootIndex++
	return cp, true, nil
}

func (p *readerSequencer) checkResourceUsage() error {
	if p.rootIndex > p.tp.characterIndexLimit {
		tracer().Errorf("stream exceeds %d codepoints, aborting", p.tp.characterIndexLimit)
		return fmt.Errorf("%w: %d", ErrCharacterLimit, p.tp.characterIndexLimit)
	}
	return nil
}

func (p *readerSequencer) accumulate(cp rune) {
	p.buffer = append(p.buffer, cp)
}

func (p *readerSequencer) flushWord(end int) error {
	if len(p.buffer) == 0 {
		return nil
	}
	if len(p.buffer) == 1 && p.IsPreviousWhitelisted() {
		// an isolated whitelisted codepoint is no word
		return p.content().Character(p.previdx, p.buffer[0])
	}
	return p.content().Word(p.previdx, string(p.buffer))
}

// errorContext gives the accumulation buffer: a stream cannot be revisited
// for a proper excerpt.
func (p *readerSequencer) errorContext(index int) string {
	return string(p.buffer)
}

// Mark/reset requires the stream itself to cooperate. A stream wrapped for
// rune decoding cannot reposition, since buffered codepoints would go stale.
func (p *readerSequencer) markSupported() bool {
	_, ok := p.in.(uparse.MarkableReader)
	return ok
}

func (p *readerSequencer) mark(readAheadLimit int) error {
	if mr, ok := p.in.(uparse.MarkableReader); ok {
		return mr.Mark(readAheadLimit)
	}
	return errors.New("tokenize: stream does not support mark/reset")
}

func (p *readerSequencer) resetMark() error {
	if mr, ok := p.in.(uparse.MarkableReader); ok {
		if err := mr.Reset(); err != nil {
			return err
		}
		p.eof = false
		return nil
	}
	return errors.New("tokenize: stream does not support mark/reset")
}
