/*
Package ast defines the syntax-tree node variants for the Pascal subset.

Nodes form a strict tree: every node owns its children exclusively, there are
no parent back-pointers and no shared sub-trees. The parser creates nodes
once; all later passes treat the tree as read-only and carry their own
context (scopes, activation records) as call parameters.
*/
package ast

import "github.com/npillmayer/pasc"

// Node is the common interface of all syntax-tree nodes. Every node records
// the token it was built from, which locates it in the source text.
type Node interface {
	Token() pasc.Token
	Pos() pasc.Position
}

// Expr is a node which evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node which is executed for its effect.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a declaration appearing in a block, before the block's statements.
type Decl interface {
	Node
	declNode()
}

// --- Program and blocks ----------------------------------------------------

// Program is the root of every syntax tree.
type Program struct {
	Tok   pasc.Token // the 'program' keyword
	Name  string
	Block *Block
}

// Block is a declaration section followed by one compound statement.
// Program bodies and procedure/function bodies are blocks.
type Block struct {
	Tok      pasc.Token
	Decls    []Decl
	Compound *Compound
}

// TypeSpec names a built-in type: "integer", "real" or "boolean".
type TypeSpec struct {
	Tok  pasc.Token
	Name string
}

// VarDecl declares a single variable. A source line "a, b: integer" expands
// into one VarDecl per name.
type VarDecl struct {
	Name *Var
	Type *TypeSpec
}

// Param is one formal parameter of a procedure or function.
type Param struct {
	Name *Var
	Type *TypeSpec
}

// ProcedureDecl declares a procedure, or a function when ReturnType is
// non-nil.
type ProcedureDecl struct {
	Tok        pasc.Token // the 'procedure' or 'function' keyword
	Name       string
	Params     []*Param
	ReturnType *TypeSpec // nil for procedures
	Block      *Block
}

// IsFunction is a predicate: does this declaration yield a value?
func (d *ProcedureDecl) IsFunction() bool {
	return d.ReturnType != nil
}

// --- Statements ------------------------------------------------------------

// Compound is a 'begin … end' sequence of statements.
type Compound struct {
	Tok      pasc.Token
	Children []Stmt
}

// Assign writes the value of an expression into a variable.
type Assign struct {
	Tok    pasc.Token // the ':=' token
	Target *Var
	Value  Expr
}

// If executes Then when the condition holds, otherwise Else (which may be
// nil).
type If struct {
	Tok  pasc.Token
	Cond Expr
	Then Stmt
	Else Stmt
}

// While re-evaluates the condition before each iteration of Body.
type While struct {
	Tok  pasc.Token
	Cond Expr
	Body Stmt
}

// ProcedureCall invokes a procedure (statement position) or a function
// (expression position) with actual arguments.
type ProcedureCall struct {
	Tok  pasc.Token // the callee identifier
	Name string
	Args []Expr
}

// NoOp is the empty statement.
type NoOp struct {
	Tok pasc.Token
}

// --- Expressions -----------------------------------------------------------

// BinOp applies a binary operator to two sub-expressions.
type BinOp struct {
	Tok   pasc.Token // the operator token
	Op    pasc.TokType
	Left  Expr
	Right Expr
}

// UnaryOp applies a sign or 'not' to a sub-expression.
type UnaryOp struct {
	Tok  pasc.Token
	Op   pasc.TokType
	Expr Expr
}

// Num is an integer or real literal.
type Num struct {
	Tok     pasc.Token
	IsReal  bool
	IntVal  int64
	RealVal float64
}

// Bool is a 'true' or 'false' literal.
type Bool struct {
	Tok   pasc.Token
	Value bool
}

// Var references a declared name. Name is the lower-case canonical spelling.
type Var struct {
	Tok  pasc.Token
	Name string
}

// --- Interface plumbing ----------------------------------------------------

func (n *Program) Token() pasc.Token       { return n.Tok }
func (n *Block) Token() pasc.Token         { return n.Tok }
func (n *TypeSpec) Token() pasc.Token      { return n.Tok }
func (n *VarDecl) Token() pasc.Token       { return n.Name.Tok }
func (n *Param) Token() pasc.Token         { return n.Name.Tok }
func (n *ProcedureDecl) Token() pasc.Token { return n.Tok }
func (n *Compound) Token() pasc.Token      { return n.Tok }
func (n *Assign) Token() pasc.Token        { return n.Tok }
func (n *If) Token() pasc.Token            { return n.Tok }
func (n *While) Token() pasc.Token         { return n.Tok }
func (n *ProcedureCall) Token() pasc.Token { return n.Tok }
func (n *NoOp) Token() pasc.Token          { return n.Tok }
func (n *BinOp) Token() pasc.Token         { return n.Tok }
func (n *UnaryOp) Token() pasc.Token       { return n.Tok }
func (n *Num) Token() pasc.Token           { return n.Tok }
func (n *Bool) Token() pasc.Token          { return n.Tok }
func (n *Var) Token() pasc.Token           { return n.Tok }

func (n *Program) Pos() pasc.Position       { return n.Tok.Pos }
func (n *Block) Pos() pasc.Position         { return n.Tok.Pos }
func (n *TypeSpec) Pos() pasc.Position      { return n.Tok.Pos }
func (n *VarDecl) Pos() pasc.Position       { return n.Name.Tok.Pos }
func (n *Param) Pos() pasc.Position         { return n.Name.Tok.Pos }
func (n *ProcedureDecl) Pos() pasc.Position { return n.Tok.Pos }
func (n *Compound) Pos() pasc.Position      { return n.Tok.Pos }
func (n *Assign) Pos() pasc.Position        { return n.Tok.Pos }
func (n *If) Pos() pasc.Position            { return n.Tok.Pos }
func (n *While) Pos() pasc.Position         { return n.Tok.Pos }
func (n *ProcedureCall) Pos() pasc.Position { return n.Tok.Pos }
func (n *NoOp) Pos() pasc.Position          { return n.Tok.Pos }
func (n *BinOp) Pos() pasc.Position         { return n.Tok.Pos }
func (n *UnaryOp) Pos() pasc.Position       { return n.Tok.Pos }
func (n *Num) Pos() pasc.Position           { return n.Tok.Pos }
func (n *Bool) Pos() pasc.Position          { return n.Tok.Pos }
func (n *Var) Pos() pasc.Position           { return n.Tok.Pos }

func (n *VarDecl) declNode()       {}
func (n *ProcedureDecl) declNode() {}

func (n *Compound) stmtNode()      {}
func (n *Assign) stmtNode()        {}
func (n *If) stmtNode()            {}
func (n *While) stmtNode()         {}
func (n *ProcedureCall) stmtNode() {}
func (n *NoOp) stmtNode()          {}

func (n *BinOp) exprNode()         {}
func (n *UnaryOp) exprNode()       {}
func (n *Num) exprNode()           {}
func (n *Bool) exprNode()          {}
func (n *Var) exprNode()           {}
func (n *ProcedureCall) exprNode() {}
