/*
Package interp executes a semantically validated syntax tree.

Execution is a synchronous, single-threaded recursive tree walk: expression
nodes evaluate to values, statement nodes are executed for their effect.
Activation records are pushed on call entry and popped on exit — also when a
propagating error unwinds the call, so the stack stays balanced on every
path. Name resolution at run time follows the static links of the
activation records, mirroring the lexical scoping established by the
semantic analyzer.

Numeric semantics: integer arithmetic is exact; '/' always performs real
division and yields a real, even for two integer operands; 'div' and 'mod'
are integer-only. Any division by zero fails with a RuntimeError, as does an
operand-kind mismatch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"fmt"

	"github.com/npillmayer/pasc"
	"github.com/npillmayer/pasc/ast"
	"github.com/npillmayer/pasc/runtime"
	"github.com/npillmayer/pasc/sema"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pasc.interp'.
func tracer() tracing.Trace {
	return tracing.Select("pasc.interp")
}

// Interpreter walks a validated syntax tree and executes it for its side
// effects. The final state of the global bindings remains observable through
// Globals after the run.
type Interpreter struct {
	info    *sema.Info
	stack   *runtime.CallStack
	globals *runtime.ActivationRecord
}

// New creates an interpreter for the analyzed program carried by info.
func New(info *sema.Info) *Interpreter {
	return &Interpreter{
		info:  info,
		stack: runtime.NewCallStack(),
	}
}

// Stack exposes the call stack, mainly for instrumentation in tests.
func (ip *Interpreter) Stack() *runtime.CallStack {
	return ip.stack
}

// Globals returns the program's activation record. Its bindings hold the
// final values of all global variables once Run has returned.
func (ip *Interpreter) Globals() *runtime.ActivationRecord {
	return ip.globals
}

// Run executes the program. Every push of an activation record is matched by
// exactly one pop, including on the error path; the program's own record is
// popped last but stays accessible through Globals.
func (ip *Interpreter) Run() error {
	prog := ip.info.Program
	tracer().P("program", prog.Name).Infof("executing")
	ar := runtime.NewActivationRecord(prog.Name, runtime.ProgramAR, 1, nil)
	bindLocals(ar, prog.Block)
	ip.globals = ar
	ip.stack.Push(ar)
	defer ip.stack.Pop()
	return ip.exec(prog.Block.Compound)
}

// bindLocals pre-binds every variable declared by a block to the zero value
// of its declared type. Lookup therefore always finds a declared name in the
// record that declares it, never in an enclosing one.
func bindLocals(ar *runtime.ActivationRecord, block *ast.Block) {
	for _, decl := range block.Decls {
		if vd, isVar := decl.(*ast.VarDecl); isVar {
			ar.Set(vd.Name.Name, runtime.ZeroValue(vd.Type.Name))
		}
	}
}

// --- Statements ------------------------------------------------------------

func (ip *Interpreter) exec(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Children {
			if err := ip.exec(child); err != nil {
				return err
			}
		}
	case *ast.Assign:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		if !ip.stack.Current().Assign(s.Target.Name, v) {
			return errorAt(s.Pos(), "cannot assign to '%s'", s.Target.Name)
		}
	case *ast.If:
		cond, err := ip.evalCondition(s.Cond)
		if err != nil {
			return err
		}
		if cond {
			return ip.exec(s.Then)
		}
		if s.Else != nil {
			return ip.exec(s.Else)
		}
	case *ast.While:
		for {
			cond, err := ip.evalCondition(s.Cond)
			if err != nil {
				return err
			}
			if !cond {
				return nil
			}
			if err := ip.exec(s.Body); err != nil {
				return err
			}
		}
	case *ast.ProcedureCall:
		_, err := ip.call(s)
		return err
	case *ast.NoOp:
		// nothing
	}
	return nil
}

func (ip *Interpreter) evalCondition(e ast.Expr) (bool, error) {
	v, err := ip.eval(e)
	if err != nil {
		return false, err
	}
	if v.Kind != runtime.BooleanType {
		return false, errorAt(e.Pos(), "condition is %s, not boolean", v.Kind)
	}
	return v.Bool(), nil
}

// --- Calls -----------------------------------------------------------------

func (ip *Interpreter) call(c *ast.ProcedureCall) (runtime.Value, error) {
	sym := ip.info.Calls[c]
	if sym == nil || (sym.Category != runtime.ProcedureSym && sym.Category != runtime.FunctionSym) {
		return runtime.Value{}, errorAt(c.Pos(), "'%s' is not callable", c.Name)
	}
	decl := sym.UData.(*ast.ProcedureDecl)
	caller := ip.stack.Current()

	// Arguments evaluate in the caller's record, left to right, each fully
	// evaluated before the next.
	args := make([]runtime.Value, len(c.Args))
	for i, argExpr := range c.Args {
		v, err := ip.eval(argExpr)
		if err != nil {
			return runtime.Value{}, err
		}
		args[i] = v
	}

	// The static link is the record of the scope the callee was *declared*
	// in, found on the caller's static chain — not the caller's record.
	static := caller
	for static != nil && static.Level != sym.Level {
		static = static.StaticLink
	}
	if static == nil {
		return runtime.Value{}, errorAt(c.Pos(), "no enclosing activation for '%s'", c.Name)
	}

	kind := runtime.ProcedureAR
	if decl.IsFunction() {
		kind = runtime.FunctionAR
	}
	ar := runtime.NewActivationRecord(c.Name, kind, sym.Level+1, static)
	ar.Caller = caller
	for i, param := range decl.Params {
		ar.Set(param.Name.Name, args[i]) // parameters pass by value
	}
	bindLocals(ar, decl.Block)
	if decl.IsFunction() {
		ar.Set(decl.Name, runtime.Value{}) // return slot, undefined until assigned
	}

	tracer().P("ar", c.Name).Debugf("calling %s", sym.Category)
	ip.stack.Push(ar)
	err := func() error {
		defer ip.stack.Pop() // balance holds even when the body fails
		return ip.exec(decl.Block.Compound)
	}()
	if err != nil {
		return runtime.Value{}, err
	}
	if decl.IsFunction() {
		result, _ := ar.Get(decl.Name)
		if result.Kind == runtime.Undefined {
			return runtime.Value{}, errorAt(c.Pos(), "function '%s' returned no value", c.Name)
		}
		return result, nil
	}
	return runtime.Value{}, nil
}

// --- Expressions -----------------------------------------------------------

func (ip *Interpreter) eval(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Num:
		if e.IsReal {
			return runtime.RealValue(e.RealVal), nil
		}
		return runtime.IntValue(e.IntVal), nil
	case *ast.Bool:
		return runtime.BoolValue(e.Value), nil
	case *ast.Var:
		v, _, ok := ip.stack.Current().Lookup(e.Name)
		if !ok {
			return runtime.Value{}, errorAt(e.Pos(), "'%s' is not bound", e.Name)
		}
		if v.Kind == runtime.Undefined {
			return runtime.Value{}, errorAt(e.Pos(), "'%s' read before assignment", e.Name)
		}
		return v, nil
	case *ast.UnaryOp:
		return ip.evalUnaryOp(e)
	case *ast.BinOp:
		return ip.evalBinOp(e)
	case *ast.ProcedureCall:
		sym := ip.info.Calls[e]
		if sym != nil && sym.Category == runtime.ProcedureSym {
			return runtime.Value{}, errorAt(e.Pos(), "procedure '%s' yields no value", e.Name)
		}
		return ip.call(e)
	}
	return runtime.Value{}, errorAt(expr.Pos(), "cannot evaluate node")
}

func (ip *Interpreter) evalUnaryOp(e *ast.UnaryOp) (runtime.Value, error) {
	v, err := ip.eval(e.Expr)
	if err != nil {
		return runtime.Value{}, err
	}
	switch e.Op {
	case pasc.Plus:
		if !v.IsNumeric() {
			return runtime.Value{}, errorAt(e.Pos(), "unary '+' needs a number, got %s", v.Kind)
		}
		return v, nil
	case pasc.Minus:
		switch v.Kind {
		case runtime.IntegerType:
			return runtime.IntValue(-v.Int()), nil
		case runtime.RealType:
			return runtime.RealValue(-v.Real()), nil
		}
		return runtime.Value{}, errorAt(e.Pos(), "unary '-' needs a number, got %s", v.Kind)
	case pasc.Not:
		if v.Kind != runtime.BooleanType {
			return runtime.Value{}, errorAt(e.Pos(), "'not' needs a boolean, got %s", v.Kind)
		}
		return runtime.BoolValue(!v.Bool()), nil
	}
	return runtime.Value{}, errorAt(e.Pos(), "unknown unary operator")
}

func (ip *Interpreter) evalBinOp(e *ast.BinOp) (runtime.Value, error) {
	left, err := ip.eval(e.Left)
	if err != nil {
		return runtime.Value{}, err
	}
	right, err := ip.eval(e.Right)
	if err != nil {
		return runtime.Value{}, err
	}
	switch e.Op {
	case pasc.Plus, pasc.Minus, pasc.Mul:
		return arith(e, left, right)
	case pasc.FloatDiv:
		if !left.IsNumeric() || !right.IsNumeric() {
			return runtime.Value{}, typeMismatch(e, left, right)
		}
		if right.Real() == 0 {
			return runtime.Value{}, errorAt(e.Pos(), "division by zero")
		}
		return runtime.RealValue(left.Real() / right.Real()), nil
	case pasc.IntDiv, pasc.Mod:
		if left.Kind != runtime.IntegerType || right.Kind != runtime.IntegerType {
			return runtime.Value{}, errorAt(e.Pos(), "'%s' needs integers", e.Tok.Lexeme)
		}
		if right.Int() == 0 {
			return runtime.Value{}, errorAt(e.Pos(), "division by zero")
		}
		if e.Op == pasc.IntDiv {
			return runtime.IntValue(left.Int() / right.Int()), nil
		}
		return runtime.IntValue(left.Int() % right.Int()), nil
	case pasc.And, pasc.Or:
		if left.Kind != runtime.BooleanType || right.Kind != runtime.BooleanType {
			return runtime.Value{}, typeMismatch(e, left, right)
		}
		if e.Op == pasc.And {
			return runtime.BoolValue(left.Bool() && right.Bool()), nil
		}
		return runtime.BoolValue(left.Bool() || right.Bool()), nil
	case pasc.Eq, pasc.Neq:
		if left.Kind == runtime.BooleanType && right.Kind == runtime.BooleanType {
			eq := left.Bool() == right.Bool()
			if e.Op == pasc.Neq {
				eq = !eq
			}
			return runtime.BoolValue(eq), nil
		}
		fallthrough
	case pasc.Lt, pasc.Le, pasc.Gt, pasc.Ge:
		return compare(e, left, right)
	}
	return runtime.Value{}, errorAt(e.Pos(), "unknown operator %s", e.Tok)
}

// arith covers + - * with integer/real promotion.
func arith(e *ast.BinOp, left, right runtime.Value) (runtime.Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return runtime.Value{}, typeMismatch(e, left, right)
	}
	if left.Kind == runtime.IntegerType && right.Kind == runtime.IntegerType {
		a, b := left.Int(), right.Int()
		switch e.Op {
		case pasc.Plus:
			return runtime.IntValue(a + b), nil
		case pasc.Minus:
			return runtime.IntValue(a - b), nil
		case pasc.Mul:
			return runtime.IntValue(a * b), nil
		}
	}
	a, b := left.Real(), right.Real()
	switch e.Op {
	case pasc.Plus:
		return runtime.RealValue(a + b), nil
	case pasc.Minus:
		return runtime.RealValue(a - b), nil
	case pasc.Mul:
		return runtime.RealValue(a * b), nil
	}
	return runtime.Value{}, errorAt(e.Pos(), "unknown operator %s", e.Tok)
}

// compare covers the relational operators on numbers, mixed integer/real
// operands allowed.
func compare(e *ast.BinOp, left, right runtime.Value) (runtime.Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return runtime.Value{}, typeMismatch(e, left, right)
	}
	a, b := left.Real(), right.Real()
	switch e.Op {
	case pasc.Eq:
		return runtime.BoolValue(a == b), nil
	case pasc.Neq:
		return runtime.BoolValue(a != b), nil
	case pasc.Lt:
		return runtime.BoolValue(a < b), nil
	case pasc.Le:
		return runtime.BoolValue(a <= b), nil
	case pasc.Gt:
		return runtime.BoolValue(a > b), nil
	case pasc.Ge:
		return runtime.BoolValue(a >= b), nil
	}
	return runtime.Value{}, errorAt(e.Pos(), "unknown operator %s", e.Tok)
}

// EvalExpression evaluates a single expression against a scratch activation
// record. It serves the expression REPL; variable references and calls fail.
func EvalExpression(e ast.Expr) (runtime.Value, error) {
	ip := New(&sema.Info{Calls: make(map[*ast.ProcedureCall]*runtime.Symbol)})
	ar := runtime.NewActivationRecord("repl", runtime.ProgramAR, 1, nil)
	ip.globals = ar
	ip.stack.Push(ar)
	defer ip.stack.Pop()
	return ip.eval(e)
}

// --- Errors ----------------------------------------------------------------

// RuntimeError reports a failure during execution: division by zero, an
// operand-kind mismatch, or a function whose return slot was never assigned.
type RuntimeError struct {
	Msg string
	Pos pasc.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s at %s", e.Msg, e.Pos)
}

func errorAt(pos pasc.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func typeMismatch(e *ast.BinOp, left, right runtime.Value) *RuntimeError {
	return errorAt(e.Pos(), "operand type mismatch: %s %s %s",
		left.Kind, e.Tok.Lexeme, right.Kind)
}
