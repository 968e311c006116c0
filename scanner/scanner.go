/*
Package scanner produces a lazy stream of tokens from Pascal source text.

The scanner is backed by a lexmachine DFA. Keywords are recognized
case-insensitively and canonicalized to lower-case, comments between
'{' and '}' are skipped, and integer/real literals are valued during
scanning. The token stream is a single forward pass; clients get exactly
one token of non-consuming lookahead via Peek.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strconv"
	"strings"

	"github.com/npillmayer/pasc"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'pasc.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pasc.scanner")
}

// Tokenizer is the scanner interface consumed by the parser. NextToken
// advances the input; Peek returns the upcoming token without consuming it.
// The first scanning error is terminal: every subsequent call returns it
// again.
type Tokenizer interface {
	NextToken() (pasc.Token, error)
	Peek() (pasc.Token, error)
}

// LMAdapter wraps a compiled lexmachine DFA for the Pascal token set.
// One adapter may produce any number of scanners.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewAdapter creates a lexmachine adapter for Pascal input.
// It will return an error if compiling the DFA failed.
func NewAdapter() (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	initPatterns(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*Scanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &Scanner{}, err
	}
	return &Scanner{scanner: s}, nil
}

// ScanString is a convenience helper: it compiles the DFA and wraps input in
// a ready-to-use scanner.
func ScanString(input string) (*Scanner, error) {
	lm, err := NewAdapter()
	if err != nil {
		return nil, err
	}
	return lm.Scanner(input)
}

// --- Token patterns --------------------------------------------------------

// Literal tokens, mapped to their categories. Longest match wins, therefore
// ":=" shadows ":" and "<=", "<>" shadow "<".
var literals = map[string]pasc.TokType{
	":=": pasc.Assign,
	"<=": pasc.Le,
	">=": pasc.Ge,
	"<>": pasc.Neq,
	"+":  pasc.Plus,
	"-":  pasc.Minus,
	"*":  pasc.Mul,
	"/":  pasc.FloatDiv,
	"=":  pasc.Eq,
	"<":  pasc.Lt,
	">":  pasc.Gt,
	";":  pasc.Semi,
	":":  pasc.Colon,
	",":  pasc.Comma,
	"(":  pasc.LParen,
	")":  pasc.RParen,
	".":  pasc.Dot,
}

func initPatterns(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	lexer.Add([]byte(`\{[^\}]*\}`), skip) // comments are never tokenized
	for lit, t := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(r), makeToken(t))
	}
	lexer.Add([]byte(`[0-9]+\.[0-9]+`), makeToken(pasc.RealConst))
	lexer.Add([]byte(`[0-9]+`), makeToken(pasc.IntegerConst))
	lexer.Add([]byte(`[a-zA-Z]([a-zA-Z]|[0-9]|_)*`), makeToken(pasc.Ident))
}

// skip is a pre-defined action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a pre-defined action which wraps a scanned match into a token.
// Identifier matches are canonicalized to lower-case and re-categorized if
// they spell a reserved word or a boolean literal.
func makeToken(t pasc.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		tok := pasc.Token{
			Type:   t,
			Lexeme: string(m.Bytes),
			Pos:    pasc.Position{Line: m.StartLine, Col: m.StartColumn},
			Span:   pasc.Span{uint64(m.TC), uint64(m.TC + len(m.Bytes))},
		}
		switch t {
		case pasc.Ident:
			canonical := strings.ToLower(tok.Lexeme)
			switch {
			case canonical == "true" || canonical == "false":
				tok.Type = pasc.BooleanConst
				tok.Value = canonical == "true"
			default:
				if kw, isKeyword := pasc.Keywords[canonical]; isKeyword {
					tok.Type = kw
				}
				tok.Value = canonical
			}
		case pasc.IntegerConst:
			n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
			if err != nil {
				return nil, err
			}
			tok.Value = n
		case pasc.RealConst:
			f, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, err
			}
			tok.Value = f
		}
		return tok, nil
	}
}

// --- Scanner ---------------------------------------------------------------

// Scanner scans one input string into a forward-only token stream.
// Create scanners with LMAdapter.Scanner or ScanString.
type Scanner struct {
	scanner   *lexmachine.Scanner
	lookahead *pasc.Token // buffered token for Peek
	err       error       // first scanning error; terminal
	lastLine  int         // position just behind the last scanned token,
	lastCol   int         // used to locate the EOF token
}

var _ Tokenizer = (*Scanner)(nil)

// NextToken returns the next token of the input, or the EOF token when the
// input is exhausted. A scanning error is terminal for the stream.
func (sc *Scanner) NextToken() (pasc.Token, error) {
	if sc.err != nil {
		return pasc.Token{Type: pasc.EOF}, sc.err
	}
	if sc.lookahead != nil {
		tok := *sc.lookahead
		sc.lookahead = nil
		return tok, nil
	}
	return sc.scan()
}

// Peek returns the upcoming token without consuming it. The scanner buffers
// exactly one token ahead.
func (sc *Scanner) Peek() (pasc.Token, error) {
	if sc.err != nil {
		return pasc.Token{Type: pasc.EOF}, sc.err
	}
	if sc.lookahead == nil {
		tok, err := sc.scan()
		if err != nil {
			return tok, err
		}
		sc.lookahead = &tok
	}
	return *sc.lookahead, nil
}

func (sc *Scanner) scan() (pasc.Token, error) {
	tok, err, eof := sc.scanner.Next()
	if eof {
		tracer().Debugf("scanner reached end of input")
		return pasc.Token{
			Type: pasc.EOF,
			Pos:  pasc.Position{Line: sc.lastLine, Col: sc.lastCol},
		}, nil
	}
	if err != nil {
		sc.err = wrapScanError(err)
		tracer().Errorf("scanner error: %v", sc.err)
		return pasc.Token{Type: pasc.EOF}, sc.err
	}
	token := tok.(pasc.Token)
	sc.lastLine = token.Pos.Line
	sc.lastCol = token.Pos.Col + len(token.Lexeme)
	tracer().Debugf("token %v @ %v", token, token.Pos)
	return token, nil
}

func wrapScanError(err error) error {
	if ui, is := err.(*machines.UnconsumedInput); is {
		e := &LexError{Line: ui.FailLine, Col: ui.FailColumn}
		if ui.FailTC < len(ui.Text) {
			e.Char = ui.Text[ui.FailTC]
		}
		return e
	}
	return err
}

// --- Errors ----------------------------------------------------------------

// LexError reports an unrecognized character in the input, carrying the
// offending character and its 1-based line/column.
type LexError struct {
	Char byte
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return "unrecognized character " + strconv.QuoteRune(rune(e.Char)) +
		" at " + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Col)
}
