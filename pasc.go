package pasc

import "fmt"

// --- Token categories ------------------------------------------------------

// TokType is a category type for a Token. The constants below cover every
// terminal of the Pascal subset understood by this module.
type TokType int

const (
	EOF TokType = iota
	Ident
	IntegerConst
	RealConst
	BooleanConst

	// Keywords
	Program
	Var
	Procedure
	Function
	Begin
	End
	If
	Then
	Else
	While
	Do
	IntDiv // "div"
	Mod
	And
	Or
	Not
	Integer // type name "integer"
	Real    // type name "real"
	Boolean // type name "boolean"

	// Operators
	Plus
	Minus
	Mul
	FloatDiv // "/"
	Assign   // ":="
	Eq
	Neq
	Lt
	Le
	Gt
	Ge

	// Punctuation
	Semi
	Colon
	Comma
	LParen
	RParen
	Dot
)

var tokTypeNames = map[TokType]string{
	EOF:          "end of input",
	Ident:        "identifier",
	IntegerConst: "integer literal",
	RealConst:    "real literal",
	BooleanConst: "boolean literal",
	Program:      "'program'",
	Var:          "'var'",
	Procedure:    "'procedure'",
	Function:     "'function'",
	Begin:        "'begin'",
	End:          "'end'",
	If:           "'if'",
	Then:         "'then'",
	Else:         "'else'",
	While:        "'while'",
	Do:           "'do'",
	IntDiv:       "'div'",
	Mod:          "'mod'",
	And:          "'and'",
	Or:           "'or'",
	Not:          "'not'",
	Integer:      "'integer'",
	Real:         "'real'",
	Boolean:      "'boolean'",
	Plus:         "'+'",
	Minus:        "'-'",
	Mul:          "'*'",
	FloatDiv:     "'/'",
	Assign:       "':='",
	Eq:           "'='",
	Neq:          "'<>'",
	Lt:           "'<'",
	Le:           "'<='",
	Gt:           "'>'",
	Ge:           "'>='",
	Semi:         "';'",
	Colon:        "':'",
	Comma:        "','",
	LParen:       "'('",
	RParen:       "')'",
	Dot:          "'.'",
}

func (t TokType) String() string {
	if nm, ok := tokTypeNames[t]; ok {
		return nm
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Keywords maps lower-case reserved words to their token categories.
// Pascal keywords are case-insensitive; scanners canonicalize identifiers to
// lower-case before consulting this map.
var Keywords = map[string]TokType{
	"program":   Program,
	"var":       Var,
	"procedure": Procedure,
	"function":  Function,
	"begin":     Begin,
	"end":       End,
	"if":        If,
	"then":      Then,
	"else":      Else,
	"while":     While,
	"do":        Do,
	"div":       IntDiv,
	"mod":       Mod,
	"and":       And,
	"or":        Or,
	"not":       Not,
	"integer":   Integer,
	"real":      Real,
	"boolean":   Boolean,
}

// --- Tokens ----------------------------------------------------------------

// Token is an input token, as produced by a scanner. Tokens are immutable
// once produced and consumed exactly once by the parser.
//
// An example would be a token for a real literal:
//
//    Type   = RealConst    // category of this token
//    Lexeme = "3.1416"     // lexeme as it appeared in the input stream
//    Value  = 3.1416       // a float64 value
//    Pos    = 4:12         // line and column of the first character
//
// For identifiers and keywords, Value carries the lower-case canonical
// spelling of the lexeme.
type Token struct {
	Type   TokType
	Lexeme string
	Value  interface{}
	Pos    Position
	Span   Span
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}

// --- Positions and spans ---------------------------------------------------

// Position locates a token within the source text. Line and Col are 1-based.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a small type for capturing a length of input run. A span denotes a
// start position (byte offset) and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
