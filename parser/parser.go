/*
Package parser builds a syntax tree from a Pascal token stream.

The parser is a recursive-descent parser with exactly one token of
lookahead and no backtracking. Every grammar rule corresponds to one parsing
method. The first syntax error aborts parsing; there is no error recovery.

The accepted grammar:

   program            : PROGRAM variable SEMI block DOT
   block              : declarations compound_statement
   declarations       : (VAR (variable_declaration SEMI)+)*
                        (procedure_declaration | function_declaration)*
   variable_declaration : ID (COMMA ID)* COLON type_spec
   procedure_declaration: PROCEDURE ID (LPAREN formal_parameter_list RPAREN)?
                          SEMI block SEMI
   function_declaration : FUNCTION ID (LPAREN formal_parameter_list RPAREN)?
                          COLON type_spec SEMI block SEMI
   formal_parameter_list: formal_parameters (SEMI formal_parameters)*
   formal_parameters  : ID (COMMA ID)* COLON type_spec
   type_spec          : INTEGER | REAL | BOOLEAN
   compound_statement : BEGIN statement_list END
   statement_list     : statement (SEMI statement)*
   statement          : compound_statement | proccall_statement
                      | assignment_statement | if_statement
                      | while_statement | empty
   if_statement       : IF expr THEN statement (ELSE statement)?
   while_statement    : WHILE expr DO statement
   proccall_statement : ID LPAREN (expr (COMMA expr)*)? RPAREN
   assignment_statement : variable ASSIGN expr
   expr               : simple_expr ((= | <> | < | <= | > | >=) simple_expr)?
   simple_expr        : term ((PLUS | MINUS | OR) term)*
   term               : factor ((MUL | FLOATDIV | DIV | MOD | AND) factor)*
   factor             : PLUS factor | MINUS factor | NOT factor
                      | INTEGER_CONST | REAL_CONST | TRUE | FALSE
                      | LPAREN expr RPAREN | proccall_statement | variable
   variable           : ID

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"

	"github.com/npillmayer/pasc"
	"github.com/npillmayer/pasc/ast"
	"github.com/npillmayer/pasc/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pasc.parser'.
func tracer() tracing.Trace {
	return tracing.Select("pasc.parser")
}

// Parser consumes a token stream and produces a single Program node.
type Parser struct {
	tokens scanner.Tokenizer
	cur    pasc.Token
}

// New creates a parser over a token stream, priming the one-token lookahead.
func New(tokens scanner.Tokenizer) (*Parser, error) {
	p := &Parser{tokens: tokens}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses a complete program, including the terminating dot, and checks
// that no input follows it.
func (p *Parser) Parse() (*ast.Program, error) {
	prog, err := p.program()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != pasc.EOF {
		return nil, p.unexpected("end of input")
	}
	tracer().Infof("parsed program '%s'", prog.Name)
	return prog, nil
}

// ParseExpression parses a single expression spanning the whole input.
// This entry point serves the expression REPL.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != pasc.EOF {
		return nil, p.unexpected("end of input")
	}
	return e, nil
}

func (p *Parser) advance() error {
	tok, err := p.tokens.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// peek looks one token beyond the current one, without consuming.
func (p *Parser) peek() (pasc.Token, error) {
	return p.tokens.Peek()
}

// eat consumes the current token, which must be of the expected type, and
// returns it. Otherwise parsing fails immediately.
func (p *Parser) eat(t pasc.TokType) (pasc.Token, error) {
	if p.cur.Type != t {
		return pasc.Token{}, &SyntaxError{Expected: t.String(), Got: p.cur}
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return pasc.Token{}, err
	}
	return tok, nil
}

func (p *Parser) unexpected(expected string) error {
	return &SyntaxError{Expected: expected, Got: p.cur}
}

// --- Declarations ----------------------------------------------------------

func (p *Parser) program() (*ast.Program, error) {
	progTok, err := p.eat(pasc.Program)
	if err != nil {
		return nil, err
	}
	name, err := p.variable()
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.Semi); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.Dot); err != nil {
		return nil, err
	}
	return &ast.Program{Tok: progTok, Name: name.Name, Block: block}, nil
}

func (p *Parser) block() (*ast.Block, error) {
	blockTok := p.cur
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	compound, err := p.compoundStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Tok: blockTok, Decls: decls, Compound: compound}, nil
}

func (p *Parser) declarations() ([]ast.Decl, error) {
	var decls []ast.Decl
	for p.cur.Type == pasc.Var {
		if _, err := p.eat(pasc.Var); err != nil {
			return nil, err
		}
		for first := true; first || p.cur.Type == pasc.Ident; first = false {
			vds, err := p.variableDeclaration()
			if err != nil {
				return nil, err
			}
			for _, vd := range vds {
				decls = append(decls, vd)
			}
			if _, err := p.eat(pasc.Semi); err != nil {
				return nil, err
			}
		}
	}
	for p.cur.Type == pasc.Procedure || p.cur.Type == pasc.Function {
		pd, err := p.procedureDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, pd)
	}
	return decls, nil
}

// variableDeclaration expands "a, b: integer" into one VarDecl per name.
func (p *Parser) variableDeclaration() ([]*ast.VarDecl, error) {
	names := []*ast.Var{}
	name, err := p.variable()
	if err != nil {
		return nil, err
	}
	names = append(names, name)
	for p.cur.Type == pasc.Comma {
		if _, err = p.eat(pasc.Comma); err != nil {
			return nil, err
		}
		if name, err = p.variable(); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if _, err = p.eat(pasc.Colon); err != nil {
		return nil, err
	}
	tspec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	decls := make([]*ast.VarDecl, len(names))
	for i, nm := range names {
		decls[i] = &ast.VarDecl{Name: nm, Type: tspec}
	}
	return decls, nil
}

func (p *Parser) procedureDeclaration() (*ast.ProcedureDecl, error) {
	isFunction := p.cur.Type == pasc.Function
	declTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.eat(pasc.Ident)
	if err != nil {
		return nil, err
	}
	var params []*ast.Param
	if p.cur.Type == pasc.LParen {
		if _, err = p.eat(pasc.LParen); err != nil {
			return nil, err
		}
		if params, err = p.formalParameterList(); err != nil {
			return nil, err
		}
		if _, err = p.eat(pasc.RParen); err != nil {
			return nil, err
		}
	}
	var retType *ast.TypeSpec
	if isFunction {
		if _, err = p.eat(pasc.Colon); err != nil {
			return nil, err
		}
		if retType, err = p.typeSpec(); err != nil {
			return nil, err
		}
	}
	if _, err = p.eat(pasc.Semi); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.Semi); err != nil {
		return nil, err
	}
	return &ast.ProcedureDecl{
		Tok:        declTok,
		Name:       nameTok.Value.(string),
		Params:     params,
		ReturnType: retType,
		Block:      block,
	}, nil
}

func (p *Parser) formalParameterList() ([]*ast.Param, error) {
	params, err := p.formalParameters()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == pasc.Semi {
		if _, err = p.eat(pasc.Semi); err != nil {
			return nil, err
		}
		more, err := p.formalParameters()
		if err != nil {
			return nil, err
		}
		params = append(params, more...)
	}
	return params, nil
}

func (p *Parser) formalParameters() ([]*ast.Param, error) {
	names := []*ast.Var{}
	name, err := p.variable()
	if err != nil {
		return nil, err
	}
	names = append(names, name)
	for p.cur.Type == pasc.Comma {
		if _, err = p.eat(pasc.Comma); err != nil {
			return nil, err
		}
		if name, err = p.variable(); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if _, err = p.eat(pasc.Colon); err != nil {
		return nil, err
	}
	tspec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	params := make([]*ast.Param, len(names))
	for i, nm := range names {
		params[i] = &ast.Param{Name: nm, Type: tspec}
	}
	return params, nil
}

func (p *Parser) typeSpec() (*ast.TypeSpec, error) {
	switch p.cur.Type {
	case pasc.Integer, pasc.Real, pasc.Boolean:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.TypeSpec{Tok: tok, Name: tok.Value.(string)}, nil
	}
	return nil, p.unexpected("type name")
}

// --- Statements ------------------------------------------------------------

func (p *Parser) compoundStatement() (*ast.Compound, error) {
	beginTok, err := p.eat(pasc.Begin)
	if err != nil {
		return nil, err
	}
	children, err := p.statementList()
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.End); err != nil {
		return nil, err
	}
	return &ast.Compound{Tok: beginTok, Children: children}, nil
}

func (p *Parser) statementList() ([]ast.Stmt, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	list := []ast.Stmt{stmt}
	for p.cur.Type == pasc.Semi {
		if _, err = p.eat(pasc.Semi); err != nil {
			return nil, err
		}
		if stmt, err = p.statement(); err != nil {
			return nil, err
		}
		list = append(list, stmt)
	}
	if p.cur.Type == pasc.Ident { // a missing ';' between statements
		return nil, p.unexpected(pasc.Semi.String())
	}
	return list, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch p.cur.Type {
	case pasc.Begin:
		return p.compoundStatement()
	case pasc.If:
		return p.ifStatement()
	case pasc.While:
		return p.whileStatement()
	case pasc.Ident:
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == pasc.LParen {
			return p.procCall()
		}
		return p.assignmentStatement()
	}
	return &ast.NoOp{Tok: p.cur}, nil // empty statement
}

func (p *Parser) ifStatement() (*ast.If, error) {
	ifTok, err := p.eat(pasc.If)
	if err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.Then); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.cur.Type == pasc.Else {
		if _, err = p.eat(pasc.Else); err != nil {
			return nil, err
		}
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &ast.If{Tok: ifTok, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) whileStatement() (*ast.While, error) {
	whileTok, err := p.eat(pasc.While)
	if err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.Do); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Tok: whileTok, Cond: cond, Body: body}, nil
}

func (p *Parser) assignmentStatement() (*ast.Assign, error) {
	target, err := p.variable()
	if err != nil {
		return nil, err
	}
	assignTok, err := p.eat(pasc.Assign)
	if err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Tok: assignTok, Target: target, Value: value}, nil
}

// procCall parses a call in statement or expression position.
func (p *Parser) procCall() (*ast.ProcedureCall, error) {
	nameTok, err := p.eat(pasc.Ident)
	if err != nil {
		return nil, err
	}
	if _, err = p.eat(pasc.LParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.cur.Type != pasc.RParen {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.cur.Type == pasc.Comma {
			if _, err = p.eat(pasc.Comma); err != nil {
				return nil, err
			}
			if arg, err = p.expr(); err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if _, err = p.eat(pasc.RParen); err != nil {
		return nil, err
	}
	return &ast.ProcedureCall{
		Tok:  nameTok,
		Name: nameTok.Value.(string),
		Args: args,
	}, nil
}

// --- Expressions -----------------------------------------------------------

func isRelOp(t pasc.TokType) bool {
	switch t {
	case pasc.Eq, pasc.Neq, pasc.Lt, pasc.Le, pasc.Gt, pasc.Ge:
		return true
	}
	return false
}

// expr parses at most one (non-associative) relational comparison.
func (p *Parser) expr() (ast.Expr, error) {
	left, err := p.simpleExpr()
	if err != nil {
		return nil, err
	}
	if !isRelOp(p.cur.Type) {
		return left, nil
	}
	opTok := p.cur
	if err = p.advance(); err != nil {
		return nil, err
	}
	right, err := p.simpleExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Tok: opTok, Op: opTok.Type, Left: left, Right: right}, nil
}

func (p *Parser) simpleExpr() (ast.Expr, error) {
	result, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == pasc.Plus || p.cur.Type == pasc.Minus || p.cur.Type == pasc.Or {
		opTok := p.cur
		if err = p.advance(); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		result = &ast.BinOp{Tok: opTok, Op: opTok.Type, Left: result, Right: right}
	}
	return result, nil
}

func (p *Parser) term() (ast.Expr, error) {
	result, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case pasc.Mul, pasc.FloatDiv, pasc.IntDiv, pasc.Mod, pasc.And:
			opTok := p.cur
			if err = p.advance(); err != nil {
				return nil, err
			}
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			result = &ast.BinOp{Tok: opTok, Op: opTok.Type, Left: result, Right: right}
		default:
			return result, nil
		}
	}
}

func (p *Parser) factor() (ast.Expr, error) {
	switch p.cur.Type {
	case pasc.Plus, pasc.Minus, pasc.Not:
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		sub, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Tok: opTok, Op: opTok.Type, Expr: sub}, nil
	case pasc.IntegerConst:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Num{Tok: tok, IntVal: tok.Value.(int64)}, nil
	case pasc.RealConst:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Num{Tok: tok, IsReal: true, RealVal: tok.Value.(float64)}, nil
	case pasc.BooleanConst:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Bool{Tok: tok, Value: tok.Value.(bool)}, nil
	case pasc.LParen:
		if _, err := p.eat(pasc.LParen); err != nil {
			return nil, err
		}
		sub, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err = p.eat(pasc.RParen); err != nil {
			return nil, err
		}
		return sub, nil
	case pasc.Ident:
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == pasc.LParen { // function call in expression position
			return p.procCall()
		}
		return p.variable()
	}
	return nil, p.unexpected("expression")
}

func (p *Parser) variable() (*ast.Var, error) {
	tok, err := p.eat(pasc.Ident)
	if err != nil {
		return nil, err
	}
	return &ast.Var{Tok: tok, Name: tok.Value.(string)}, nil
}

// --- Errors ----------------------------------------------------------------

// SyntaxError reports an unexpected token, carrying the expectation, the
// actual token and its position.
type SyntaxError struct {
	Expected string
	Got      pasc.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s at %s", e.Expected, e.Got, e.Got.Pos)
}
