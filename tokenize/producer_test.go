package tokenize

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uparse"
)

func TestParseWordsAndSeparators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	tp := NewTokenProducer(sink, AllowInWords([]rune{'-', '.'}))
	input := "(display: table-cell) and (display: list-item)"
	if err := tp.Parse(input); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:lparen",
		"1:word(display)",
		"8:char(:)",
		"9:sep(32)",
		"10:word(table-cell)",
		"20:rparen",
		"21:sep(32)",
		"22:word(and)",
		"25:sep(32)",
		"26:lparen",
		"27:word(display)",
		"34:char(:)",
		"35:sep(32)",
		"36:word(list-item)",
		"45:rparen",
		"eos(46)",
	})
}

func TestParseLeadingSeparator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(" a"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:sep(32)", "1:word(a)", "eos(2)"})
}

func TestParseNonASCIIIndexes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	// indexes count codepoints, not bytes
	for _, entry := range []func(*TokenProducer) error{
		func(tp *TokenProducer) error { return tp.Parse("año 2026") },
		func(tp *TokenProducer) error { return tp.ParseReader(strings.NewReader("año 2026")) },
	} {
		sink := &eventSink{}
		if err := entry(NewTokenProducer(sink)); err != nil {
			t.Fatal(err)
		}
		expectEvents(t, sink, []string{
			"0:word(año)", "3:sep(32)", "4:word(2026)", "eos(8)",
		})
	}
}

func TestParsePunctuation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse("a[b]{c}"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(a)", "1:lbracket", "2:word(b)", "3:rbracket",
		"4:lbrace", "5:word(c)", "6:rbrace", "eos(7)",
	})
}

func TestParseStartEndPunctuation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse("「a」"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:startp(「)", "1:word(a)", "2:endp(」)", "eos(3)",
	})
}

func TestParseIsolatedWhitelistedChar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	tp := NewTokenProducer(sink, AllowInWords([]rune{'-'}))
	if err := tp.Parse("- a"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:char(-)", "1:sep(32)", "2:word(a)", "eos(3)"})
	//
	sink = &eventSink{}
	tp = NewTokenProducer(sink, AllowInWords([]rune{'-'}))
	if err := tp.Parse("f-g:"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:word(f-g)", "3:char(:)", "eos(4)"})
}

func TestParseCollapsedSeparators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	tp := NewTokenProducer(sink, HandleAllSeparators(false))
	if err := tp.Parse("a  b  c"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(a)", "1:sep(32)", "3:word(b)", "4:sep(32)", "6:word(c)", "eos(7)",
	})
}

func TestParseEscaped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(`content: \64`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(content)", "7:char(:)", "8:sep(32)", "10:esc(6)", "11:word(4)", "eos(12)",
	})
}

func TestParseBackslashAtEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(`abc\`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:word(abc)", "3:err(2)", "eos(4)"})
}

func TestParseQuoted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(`a "b c" d`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(a)", "1:sep(32)", "2:quoted(b c)", "7:sep(32)", "8:word(d)", "eos(9)",
	})
}

func TestParseQuotedEscapedQuote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(`"a\"b"`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{`0:quoted(a\"b)`, "eos(6)"})
}

func TestParseQuotedDoubleBackslash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	// a backslash pair stands for itself and must not escape the closing
	// quote
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(`"a\\"`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{`0:quoted(a\\)`, "eos(5)"})
}

func TestParseQuotedNewline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	// an unescaped newline terminates the quote with an error and is then
	// handed to control handling
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse("only \"screen\nand"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(only)", "4:sep(32)", "12:err(1)", "12:ctrl(10)", "13:word(and)", "eos(16)",
	})
	//
	sink = &eventSink{}
	tp := NewTokenProducer(sink, AcceptNewlineEndingQuote(true))
	if err := tp.Parse("only \"screen\nand"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(only)", "4:sep(32)", "12:err(1)", "12:ctrl(10)", "5:quoted(screen)",
		"13:word(and)", "eos(16)",
	})
}

func TestParseQuotedEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse(`"abc`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"4:err(1)", "eos(4)"})
	//
	sink = &eventSink{}
	tp := NewTokenProducer(sink, AcceptEofEndingQuoted(true))
	if err := tp.Parse(`"abc`); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:quoted(abc)", "eos(4)"})
}

func TestParseQuotedLineContinuation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse("\"ab\\\ncd\""); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"4:qnl(10)", "0:quoted(ab\ncd)", "eos(8)"})
}

func TestParseQuotedWithControl(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse("\"a\x01b\""); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:quotedc(a\x01b)", "eos(5)"})
}

func TestParseControlExternal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	// by default every control codepoint goes to the control handler
	sink := &eventSink{}
	if err := NewTokenProducer(sink).Parse("only\nscreen"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(only)", "4:ctrl(10)", "5:word(screen)", "eos(11)",
	})
	//
	sink = &eventSink{}
	if err := NewTokenProducer(sink).Parse("a\tb"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{"0:word(a)", "1:ctrl(9)", "2:word(b)", "eos(3)"})
}

func TestParseControlInternal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	location := &recordedLocation{}
	sink := &eventSink{}
	sink.onStart = func(ctl uparse.TokenControl) {
		ctl.SetExternalLocationHandling(false)
	}
	sink.onEvent = func(h *eventSink, ev string) {
		if ev == "eos(5)" {
			h.control.SetLocationTo(location)
		}
	}
	if err := NewTokenProducer(sink).Parse("ab\ncd"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(ab)", "2:sep(10)", "3:word(cd)", "eos(5)",
	})
	if location.line != 2 || location.column != 3 {
		t.Errorf("expected location 2:3, have %d:%d", location.line, location.column)
	}
}

func TestParseControlInternalCRLF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	// a CRLF pair advances the line count once, with the LF mapped to a
	// separator
	location := &recordedLocation{}
	sink := &eventSink{}
	sink.onStart = func(ctl uparse.TokenControl) {
		ctl.SetExternalLocationHandling(false)
	}
	sink.onEvent = func(h *eventSink, ev string) {
		if ev == "eos(6)" {
			h.control.SetLocationTo(location)
		}
	}
	if err := NewTokenProducer(sink).Parse("ab\r\ncd"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(ab)", "3:sep(10)", "4:word(cd)", "eos(6)",
	})
	if location.line != 2 || location.column != 3 {
		t.Errorf("expected location 2:3, have %d:%d", location.line, location.column)
	}
}

type recordedLocation struct {
	line, column int
}

func (l *recordedLocation) SetLocation(line, column int) {
	l.line, l.column = line, column
}

func TestParseReaderBasic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	if err := NewTokenProducer(sink).ParseReader(strings.NewReader("hello world")); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, sink, []string{
		"0:word(hello)", "5:sep(32)", "6:word(world)", "eos(11)",
	})
}

func TestParseReaderCharacterLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	tp := NewTokenProducer(sink, CharacterLimit(20))
	err := tp.ParseReader(strings.NewReader("abcdefghijklmnopqrstuvwxyz1234"))
	if !errors.Is(err, ErrCharacterLimit) {
		t.Fatalf("expected character limit error, have %v", err)
	}
	// the parse aborts hard: not even an EndOfStream event
	if len(sink.events) != 0 {
		t.Errorf("expected no events after abort, have %v", sink.events)
	}
}

func TestParseReaderCharacterLimitEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	// codepoints consumed by an escape count against the ceiling too
	sink := &eventSink{}
	tp := NewTokenProducer(sink, CharacterLimit(2))
	err := tp.ParseReader(strings.NewReader(`\a\b\c`))
	if !errors.Is(err, ErrCharacterLimit) {
		t.Fatalf("expected character limit error, have %v", err)
	}
	expectEvents(t, sink, []string{"1:esc(a)"})
}

func TestSkipNextCodepoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	var skipped rune
	sink.onStart = func(ctl uparse.TokenControl) {
		skipped, _ = ctl.SkipNextCodepoint()
	}
	if err := NewTokenProducer(sink).Parse("abc"); err != nil {
		t.Fatal(err)
	}
	if skipped != 'a' {
		t.Errorf("expected to have skipped 'a', have %q", skipped)
	}
	expectEvents(t, sink, []string{"1:word(bc)", "eos(3)"})
}

func TestSwapContentHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	second := &eventSink{}
	first := &eventSink{}
	first.onEvent = func(h *eventSink, ev string) {
		if ev == "0:word(a)" {
			h.control.SetContentHandler(second)
		}
	}
	if err := NewTokenProducer(first).Parse("a b"); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, first, []string{"0:word(a)"})
	expectEvents(t, second, []string{"1:sep(32)", "2:word(b)", "eos(3)"})
}

func TestMarkResetString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	didReset := false
	sink.onStart = func(ctl uparse.TokenControl) {
		if !ctl.MarkStreamSupported() {
			t.Error("expected mark/reset support for string input")
		}
		if err := ctl.MarkStream(0); err != nil {
			t.Error(err)
		}
	}
	sink.onEvent = func(h *eventSink, ev string) {
		if ev == "1:sep(32)" && !didReset {
			didReset = true
			if err := h.control.ResetStream(); err != nil {
				t.Error(err)
			}
		}
	}
	if err := NewTokenProducer(sink).Parse("a b"); err != nil {
		t.Fatal(err)
	}
	// the first two events repeat after the rewind
	expectEvents(t, sink, []string{
		"0:word(a)", "1:sep(32)", "0:word(a)", "1:sep(32)", "2:word(b)", "eos(3)",
	})
}

func TestMarkResetReaderUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uparse.tokenize")
	defer teardown()
	//
	sink := &eventSink{}
	supported := true
	sink.onStart = func(ctl uparse.TokenControl) {
		supported = ctl.MarkStreamSupported()
	}
	if err := NewTokenProducer(sink).ParseReader(strings.NewReader("a")); err != nil {
		t.Fatal(err)
	}
	if supported {
		t.Error("expected plain readers to not support mark/reset")
	}
}
