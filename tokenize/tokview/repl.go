package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/uparse"
	"github.com/npillmayer/uparse/filter"
	"github.com/npillmayer/uparse/tokenize"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive CLI where users may enter lines of text to
// be tokenized. Every lexical event is printed as one row. Comment
// delimiters and a word-character whitelist may be set with flags.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	open := flag.String("open", "/*", "Comment opening delimiter(s), comma separated")
	close := flag.String("close", "*/", "Comment closing delimiter(s), comma separated")
	allow := flag.String("allow", "-", "Codepoints allowed inside words")
	minify := flag.Bool("minify", false, "Additionally print a minified version of the input")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to tokview")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	opening := strings.Split(*open, ",")
	closing := strings.Split(*close, ",")
	if len(opening) != len(closing) {
		tracer().Errorf("unmatched comment delimiter pairs")
		os.Exit(2)
	}
	view := &Viewer{
		opening: opening,
		closing: closing,
		minify:  *minify,
		tp: tokenize.NewTokenProducer(&displayHandler{},
			tokenize.AllowInWords([]rune(*allow))),
	}
	//
	repl, err := readline.New("tokview> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	view.repl = repl
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		view.line(input)
	}
	tracer().Infof("Quit with <ctrl>D")
	view.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Viewer is our interactive session object.
type Viewer struct {
	opening []string
	closing []string
	minify  bool
	tp      *tokenize.TokenProducer
	repl    *readline.Instance
}

// REPL reads lines of text until EOF and tokenizes each one.
func (v *Viewer) REPL() {
	for {
		line, err := v.repl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		v.line(line)
	}
	pterm.Info.Println("Good bye!")
}

// line tokenizes one line of input and prints the resulting events.
func (v *Viewer) line(input string) {
	pterm.Printf(" index | %-12s | content\n", "event")
	pterm.Println("-------+--------------+---------------")
	err := v.tp.ParseMultiComment(strings.NewReader(input), v.opening, v.closing)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if v.minify {
		min, err := filter.Minified(input, v.opening, v.closing)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		pterm.Info.Printf("minified: %s\n", min)
	}
}

// displayHandler prints every lexical event as a table row.
type displayHandler struct{}

var _ uparse.TokenHandler = (*displayHandler)(nil)

func row(index int, kind string, format string, args ...interface{}) error {
	pterm.Printf(" %5d | %-12s | %s\n", index, kind, fmt.Sprintf(format, args...))
	return nil
}

func (h *displayHandler) Word(index int, word string) error {
	return row(index, "word", "%s", word)
}

func (h *displayHandler) Separator(index int, cp rune) error {
	return row(index, "separator", "U+%04X", cp)
}

func (h *displayHandler) Quoted(index int, quoted string, quote rune) error {
	return row(index, "quoted", "%c%s%c", quote, quoted, quote)
}

func (h *displayHandler) QuotedWithControl(index int, quoted string, quote rune) error {
	return row(index, "quoted+ctrl", "%c%q%c", quote, quoted, quote)
}

func (h *displayHandler) LeftParenthesis(index int) error {
	return row(index, "group", "(")
}

func (h *displayHandler) RightParenthesis(index int) error {
	return row(index, "group", ")")
}

func (h *displayHandler) LeftSquareBracket(index int) error {
	return row(index, "group", "[")
}

func (h *displayHandler) RightSquareBracket(index int) error {
	return row(index, "group", "]")
}

func (h *displayHandler) LeftCurlyBracket(index int) error {
	return row(index, "group", "{")
}

func (h *displayHandler) RightCurlyBracket(index int) error {
	return row(index, "group", "}")
}

func (h *displayHandler) StartPunctuation(index int, cp rune) error {
	return row(index, "punct-start", "%c", cp)
}

func (h *displayHandler) EndPunctuation(index int, cp rune) error {
	return row(index, "punct-end", "%c", cp)
}

func (h *displayHandler) Character(index int, cp rune) error {
	return row(index, "character", "%c", cp)
}

func (h *displayHandler) Escaped(index int, cp rune) error {
	return row(index, "escaped", "\\%c", cp)
}

func (h *displayHandler) Commented(index int, class int, comment string) error {
	return row(index, "comment", "#%d %q", class, comment)
}

func (h *displayHandler) EndOfStream(length int) error {
	return row(length, "eos", "")
}

func (h *displayHandler) TokenStart(ctl uparse.TokenControl) error {
	return nil
}

func (h *displayHandler) Control(index int, cp rune) error {
	return row(index, "control", "U+%04X", cp)
}

func (h *displayHandler) QuotedNewline(index int, cp rune) error {
	return row(index, "quoted-nl", "U+%04X", cp)
}

func (h *displayHandler) Error(index int, code uparse.ErrorCode, context string) error {
	pterm.Error.Printf(" %5d | %s (%q)\n", index, code, context)
	return nil
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}
