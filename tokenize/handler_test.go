package tokenize

import (
	"fmt"
	"testing"

	"github.com/npillmayer/uparse"
)

// eventSink collects every lexical event as a compact string, keeping the
// order of delivery. Tests compare the collected log against an expected
// one.
type eventSink struct {
	events  []string
	control uparse.TokenControl
	onStart func(ctl uparse.TokenControl)
	onEvent func(h *eventSink, ev string)
}

var _ uparse.TokenHandler = (*eventSink)(nil)

func (h *eventSink) add(format string, args ...interface{}) error {
	ev := fmt.Sprintf(format, args...)
	h.events = append(h.events, ev)
	if h.onEvent != nil {
		h.onEvent(h, ev)
	}
	return nil
}

func (h *eventSink) Word(index int, word string) error {
	return h.add("%d:word(%s)", index, word)
}

func (h *eventSink) Separator(index int, cp rune) error {
	return h.add("%d:sep(%d)", index, cp)
}

func (h *eventSink) Quoted(index int, quoted string, quote rune) error {
	return h.add("%d:quoted(%s)", index, quoted)
}

func (h *eventSink) QuotedWithControl(index int, quoted string, quote rune) error {
	return h.add("%d:quotedc(%s)", index, quoted)
}

func (h *eventSink) LeftParenthesis(index int) error  { return h.add("%d:lparen", index) }
func (h *eventSink) RightParenthesis(index int) error { return h.add("%d:rparen", index) }
func (h *eventSink) LeftSquareBracket(index int) error {
	return h.add("%d:lbracket", index)
}
func (h *eventSink) RightSquareBracket(index int) error {
	return h.add("%d:rbracket", index)
}
func (h *eventSink) LeftCurlyBracket(index int) error  { return h.add("%d:lbrace", index) }
func (h *eventSink) RightCurlyBracket(index int) error { return h.add("%d:rbrace", index) }

func (h *eventSink) StartPunctuation(index int, cp rune) error {
	return h.add("%d:startp(%c)", index, cp)
}

func (h *eventSink) EndPunctuation(index int, cp rune) error {
	return h.add("%d:endp(%c)", index, cp)
}

func (h *eventSink) Character(index int, cp rune) error {
	return h.add("%d:char(%c)", index, cp)
}

func (h *eventSink) Escaped(index int, cp rune) error {
	return h.add("%d:esc(%c)", index, cp)
}

func (h *eventSink) Commented(index int, class int, comment string) error {
	return h.add("%d:comment%d(%s)", index, class, comment)
}

func (h *eventSink) EndOfStream(length int) error {
	return h.add("eos(%d)", length)
}

func (h *eventSink) TokenStart(ctl uparse.TokenControl) error {
	h.control = ctl
	if h.onStart != nil {
		h.onStart(ctl)
	}
	return nil
}

func (h *eventSink) Control(index int, cp rune) error {
	return h.add("%d:ctrl(%d)", index, cp)
}

func (h *eventSink) QuotedNewline(index int, cp rune) error {
	return h.add("%d:qnl(%d)", index, cp)
}

func (h *eventSink) Error(index int, code uparse.ErrorCode, context string) error {
	return h.add("%d:err(%d)", index, code)
}

// expectEvents compares the collected event log against the expected one.
func expectEvents(t *testing.T, sink *eventSink, expected []string) {
	t.Helper()
	t.Logf("------+----------------------------")
	for i, ev := range sink.events {
		t.Logf(" %4d | %s", i, ev)
	}
	t.Logf("------+----------------------------")
	if len(sink.events) != len(expected) {
		t.Errorf("expected %d events, have %d", len(expected), len(sink.events))
	}
	for i, ev := range expected {
		if i >= len(sink.events) {
			t.Errorf("event #%d missing, expected %s", i, ev)
			continue
		}
		if sink.events[i] != ev {
			t.Errorf("event #%d: expected %s, have %s", i, ev, sink.events[i])
		}
	}
}
