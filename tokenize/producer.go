package tokenize

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uparse"
)

// tracer traces with key 'uparse.tokenize'.
func tracer() tracing.Trace {
	return tracing.Select("uparse.tokenize")
}

// characterLimitDefault bounds stream parsing to one Gigabyte of codepoints.
const characterLimitDefault = 0x40000000

// bufferCapacityDefault is the initial capacity of the accumulation buffer
// for stream sources.
const bufferCapacityDefault = 256

// ErrCharacterLimit is returned (wrapped) when a stream source exceeds the
// configured character limit. The parse is aborted and no EndOfStream event
// is delivered.
var ErrCharacterLimit = errors.New("exceeded maximum allowed stream size")

// TokenProducer tokenizes strings or streams, handing lexical events to a
// caller-provided handler. A single producer may run any number of parses,
// one at a time; handlers and leniency settings carry over between parses.
type TokenProducer struct {
	content uparse.ContentHandler
	control uparse.ControlHandler
	errors  uparse.ErrorHandler

	charCheck                uparse.CharacterCheck
	handleAllSeparators      bool
	acceptNewlineEndingQuote bool
	acceptEofEndingQuoted    bool
	characterIndexLimit      int
	bufferCapacity           int
}

// NewTokenProducer creates a producer with the given handler, which serves
// all three handler roles until any of them is swapped through the
// uparse.TokenControl surface.
func NewTokenProducer(handler uparse.TokenHandler, opts ...Option) *TokenProducer {
	tp := &TokenProducer{
		content:             handler,
		control:             handler,
		errors:              handler,
		charCheck:           uparse.DisallowAll{},
		handleAllSeparators: true,
		characterIndexLimit: characterLimitDefault,
		bufferCapacity:      bufferCapacityDefault,
	}
	for _, opt := range opts {
		opt(tp)
	}
	return tp
}

// --- Producer options -------------------------------------------------------

// Option configures a TokenProducer.
type Option func(tp *TokenProducer)

// AllowInWords sets a whitelist of codepoints to be merged into words even
// though they are not categorical word constituents.
func AllowInWords(allowInWords []rune) Option {
	return func(tp *TokenProducer) {
		tp.charCheck = uparse.NewWhitelist(allowInWords)
	}
}

// CharacterChecker sets a custom word-character predicate.
func CharacterChecker(check uparse.CharacterCheck) Option {
	return func(tp *TokenProducer) {
		if check == nil {
			check = uparse.DisallowAll{}
		}
		tp.charCheck = check
	}
}

// CharacterLimit sets the maximum number of codepoints a stream parse may
// consume before aborting with ErrCharacterLimit.
func CharacterLimit(limit int) Option {
	return func(tp *TokenProducer) {
		tp.characterIndexLimit = limit
	}
}

// HandleAllSeparators controls the handling of consecutive separators.
// If set (the default), every separator codepoint triggers a Separator
// event. Otherwise runs of separators collapse into a single event at the
// run's first index.
func HandleAllSeparators(all bool) Option {
	return func(tp *TokenProducer) {
		tp.handleAllSeparators = all
	}
}

// AcceptNewlineEndingQuote lets quoted text terminated by an unescaped
// newline still be delivered through the Quoted event, albeit an error is
// reported in any case.
func AcceptNewlineEndingQuote(accept bool) Option {
	return func(tp *TokenProducer) {
		tp.acceptNewlineEndingQuote = accept
	}
}

// AcceptEofEndingQuoted lets quoted text terminated by the end of the input
// still be delivered through the Quoted event, albeit an error is reported
// in any case.
func AcceptEofEndingQuoted(accept bool) Option {
	return func(tp *TokenProducer) {
		tp.acceptEofEndingQuoted = accept
	}
}

// BufferCapacity sets the initial capacity of the accumulation buffer used
// by stream sources. Default is 256.
func BufferCapacity(capacity int) Option {
	return func(tp *TokenProducer) {
		if capacity > 0 {
			tp.bufferCapacity = capacity
		}
	}
}

// --- Entry points -----------------------------------------------------------

// Parse tokenizes a string, without any comment handling.
func (tp *TokenProducer) Parse(s string) error {
	tracer().Debugf("parsing string of %d bytes", len(s))
	ss := newStringSequencer(tp, s, nil)
	return ss.parse()
}

// ParseComment tokenizes a string, accounting for the given comment syntax,
// e.g. ("/*", "*/"). Delimiters may not contain a backslash.
func (tp *TokenProducer) ParseComment(s string, open string, close string) error {
	m, err := newCommentMatcher([]string{open}, []string{close})
	if err != nil {
		return err
	}
	ss := newStringSequencer(tp, s, m)
	return ss.parseComments()
}

// ParseReader tokenizes the contents of a character stream without any
// comment handling.
func (tp *TokenProducer) ParseReader(r io.Reader) error {
	rs, err := newReaderSequencer(tp, r, nil)
	if err != nil {
		return err
	}
	return rs.parse()
}

// ParseReaderComment tokenizes a character stream with a single comment
// layout.
func (tp *TokenProducer) ParseReaderComment(r io.Reader, open string, close string) error {
	m, err := newCommentMatcher([]string{open}, []string{close})
	if err != nil {
		return err
	}
	rs, err := newReaderSequencer(tp, r, m)
	if err != nil {
		return err
	}
	return rs.parseComments()
}

// ParseMultiComment tokenizes a character stream with multiple comment
// layouts. closing[i] closes the comment opened by opening[i]; the slices
// must have equal lengths. On ambiguous openings the first registered
// delimiter wins.
func (tp *TokenProducer) ParseMultiComment(r io.Reader, opening []string, closing []string) error {
	m, err := newCommentMatcher(opening, closing)
	if err != nil {
		return err
	}
	rs, err := newReaderSequencer(tp, r, m)
	if err != nil {
		return err
	}
	return rs.parseComments()
}

func runeReaderFor(r io.Reader) (io.RuneReader, error) {
	if r == nil {
		return nil, fmt.Errorf("tokenize: nil character stream")
	}
	if rr, ok := r.(io.RuneReader); ok {
		return rr, nil
	}
	return bufio.NewReader(r), nil
}
