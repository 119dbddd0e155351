package uparse

import "fmt"

// --- Error kinds ------------------------------------------------------------

// ErrorCode identifies a reported, recoverable lexical error. Errors of this
// kind are delivered through an ErrorHandler together with the fault index
// and a bounded context snippet; parsing continues afterwards.
type ErrorCode byte

const (
	// ErrUnexpectedEndQuoted reports a quoted string terminated by an
	// unescaped newline or by the end of the input.
	ErrUnexpectedEndQuoted ErrorCode = iota + 1
	// ErrLastCharBackslash reports a backslash as the last codepoint of
	// the input, with nothing left to escape.
	ErrLastCharBackslash
	// ErrUnexpectedEndCommented reports a comment terminated by the end of
	// the input instead of its closing delimiter.
	ErrUnexpectedEndCommented
	// ErrUnexpectedControl reports a low ASCII control character which is
	// neither TAB, LF, FF nor CR.
	ErrUnexpectedControl
)

func (code ErrorCode) String() string {
	switch code {
	case ErrUnexpectedEndQuoted:
		return "unexpected end of quoted text"
	case ErrLastCharBackslash:
		return "backslash at end of input"
	case ErrUnexpectedEndCommented:
		return "unexpected end of comment"
	case ErrUnexpectedControl:
		return "unexpected control character"
	}
	return fmt.Sprintf("error code %d", byte(code))
}

// --- Handler contracts ------------------------------------------------------

// ContentHandler receives the content events of a parse. Indexes are
// codepoint offsets into the source.
//
// Every callback may return a non-nil error, which aborts the parse
// immediately: the engine performs no further callbacks and propagates the
// error to the caller of the parse entry point.
type ContentHandler interface {
	// Word is called with a word token spanning [index, index+len(word)).
	Word(index int, word string) error

	// Separator is called for a separator codepoint (Unicode Zs/Zl/Zp, or
	// TAB/LF/FF mapped by internal control handling).
	Separator(index int, cp rune) error

	// Quoted is called with the body of a quoted string. index is the
	// offset of the opening quote; quote is the quote codepoint.
	Quoted(index int, quoted string, quote rune) error

	// QuotedWithControl is called instead of Quoted when the body contains
	// one or more unescaped control characters.
	QuotedWithControl(index int, quoted string, quote rune) error

	// Grouping delimiters.
	LeftParenthesis(index int) error
	RightParenthesis(index int) error
	LeftSquareBracket(index int) error
	RightSquareBracket(index int) error
	LeftCurlyBracket(index int) error
	RightCurlyBracket(index int) error

	// StartPunctuation and EndPunctuation receive Unicode Ps/Pe codepoints
	// other than the six ASCII grouping delimiters.
	StartPunctuation(index int, cp rune) error
	EndPunctuation(index int, cp rune) error

	// Character receives any codepoint emitted standalone.
	Character(index int, cp rune) error

	// Escaped receives the single codepoint following a backslash outside
	// of quoted text. index is the offset of the escaped codepoint.
	Escaped(index int, cp rune) error

	// Commented is called with the body of a comment (delimiters stripped).
	// index is the offset of the opening delimiter, class identifies which
	// registered delimiter pair matched.
	Commented(index int, class int, comment string) error

	// EndOfStream is called exactly once after the last token, with the
	// total number of codepoints consumed.
	EndOfStream(length int) error
}

// ControlHandler receives the control and meta events of a parse.
type ControlHandler interface {
	// TokenStart is called once before any other event, handing the
	// in-band control surface to the handler.
	TokenStart(ctl TokenControl) error

	// Control receives control codepoints, either unfiltered (external
	// location handling) or the non-ASCII remainder of internal handling.
	Control(index int, cp rune) error

	// QuotedNewline receives a line terminator that was escaped by a
	// backslash inside a quoted string (line continuation).
	QuotedNewline(index int, cp rune) error
}

// ErrorHandler receives recoverable lexical errors. context is a bounded
// snippet of the source around the fault (for string sources up to 16
// codepoints before and after; for stream sources the current accumulation
// buffer).
type ErrorHandler interface {
	Error(index int, code ErrorCode, context string) error
}

// TokenHandler is the unified handler contract: the three roles in one
// object. A parse is constructed from a TokenHandler; the individual roles
// may then be swapped independently through TokenControl.
type TokenHandler interface {
	ContentHandler
	ControlHandler
	ErrorHandler
}

// --- In-band control surface ------------------------------------------------

// Locator receives a line/column location, 1-based.
type Locator interface {
	SetLocation(line, column int)
}

// TokenControl is the in-band control surface of a running parse. It is
// handed to the control handler's TokenStart callback and stays valid for
// the duration of that parse.
type TokenControl interface {
	// Comment class switches. Class indexes follow registration order.
	EnableAllComments()
	DisableAllComments()
	EnableComments(class int)
	DisableComments(class int)

	// Quote termination leniency, see the corresponding producer options.
	SetAcceptNewlineEndingQuote(accept bool)
	SetAcceptEofEndingQuoted(accept bool)

	// SetExternalLocationHandling bypasses internal control handling:
	// every control codepoint is forwarded unfiltered to the control
	// handler, leaving line/column bookkeeping to the handler.
	SetExternalLocationHandling(enable bool)

	// SkipNextCodepoint consumes the next raw codepoint, bypassing normal
	// processing. It returns the codepoint, or io.EOF at end of input.
	SkipNextCodepoint() (rune, error)

	// Mark/reset of the underlying source. Always supported for string
	// sources; delegated to the stream for reader sources.
	MarkStreamSupported() bool
	MarkStream(readAheadLimit int) error
	ResetStream() error

	// SetLocationTo resolves the current position (or an absolute index)
	// into a line/column location.
	SetLocationTo(loc Locator)
	SetLocationToIndex(loc Locator, index int)

	// Handler role access and swapping, effective from the next event.
	ContentHandler() ContentHandler
	SetContentHandler(h ContentHandler)
	ControlHandler() ControlHandler
	SetControlHandler(h ControlHandler)
	ErrorHandler() ErrorHandler
	SetErrorHandler(h ErrorHandler)
	SetTokenHandler(h TokenHandler)
}

// MarkableReader is an optional interface for reader sources. A stream
// implementing it (besides io.RuneReader) supports the mark/reset calls of
// the TokenControl surface; Reset repositions the stream to the last mark.
type MarkableReader interface {
	Mark(readAheadLimit int) error
	Reset() error
}

// --- Sequence access --------------------------------------------------------

// Sequence is basic access to the current sequence of a running parse. It
// is intended to be consumed by CharacterCheck implementations.
type Sequence interface {
	// CurrentSequence gives the contents of the word currently being formed.
	CurrentSequence() string

	// IsPreviousWhitelisted reports whether the previous codepoint was
	// added to the current word solely because a CharacterCheck accepted
	// it (as opposed to being a categorical word constituent).
	IsPreviousWhitelisted() bool

	// TokenControl gives the control surface of this parse.
	TokenControl() TokenControl

	// ResetCurrentSequence empties the current sequence.
	ResetCurrentSequence()
}

// CharacterCheck decides whether a codepoint that is not categorically a
// word constituent may still be merged into the word being formed.
type CharacterCheck interface {
	AllowedInWord(cp rune, seq Sequence) bool
}
