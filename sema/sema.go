/*
Package sema statically validates a parsed program.

The analyzer walks the syntax tree exactly once, top-down, maintaining a
stack of scopes that mirrors the nesting the interpreter will traverse
later. It rejects duplicate declarations within one scope, references to
undeclared identifiers, and call sites whose argument count disagrees with
the declaration. Argument *types* are not checked statically; arithmetic
type mismatches surface at run time. The analysis has no side effects beyond
populating the scope tree and raising the first error encountered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sema

import (
	"github.com/npillmayer/pasc/ast"
	"github.com/npillmayer/pasc/runtime"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pasc.sema'.
func tracer() tracing.Trace {
	return tracing.Select("pasc.sema")
}

// Info carries the results of a successful analysis. The syntax tree itself
// is never annotated; resolved callees live in an out-of-band map keyed by
// call node.
type Info struct {
	Program *ast.Program
	Calls   map[*ast.ProcedureCall]*runtime.Symbol
	Scopes  *runtime.ScopeTree
}

// Analyzer walks a syntax tree and populates a scope tree.
type Analyzer struct {
	scopes *runtime.ScopeTree
	calls  map[*ast.ProcedureCall]*runtime.Symbol
}

// NewAnalyzer creates an analyzer with a fresh global scope, built-in type
// symbols predeclared.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		scopes: runtime.NewGlobalScopeTree("global"),
		calls:  make(map[*ast.ProcedureCall]*runtime.Symbol),
	}
}

// Analyze validates a program and returns the collected scope information,
// or the first error encountered.
func (a *Analyzer) Analyze(prog *ast.Program) (*Info, error) {
	tracer().P("program", prog.Name).Debugf("semantic analysis")
	globals := a.scopes.Globals()
	globals.Define(runtime.NewSymbol(prog.Name).WithCategory(runtime.ProgramSym))
	if err := a.visitBlock(prog.Block); err != nil {
		return nil, err
	}
	return &Info{Program: prog, Calls: a.calls, Scopes: a.scopes}, nil
}

func (a *Analyzer) visitBlock(block *ast.Block) error {
	for _, decl := range block.Decls {
		var err error
		switch d := decl.(type) {
		case *ast.VarDecl:
			err = a.visitVarDecl(d)
		case *ast.ProcedureDecl:
			err = a.visitProcedureDecl(d)
		}
		if err != nil {
			return err
		}
	}
	return a.visitStmt(block.Compound)
}

func (a *Analyzer) visitVarDecl(d *ast.VarDecl) error {
	typeSym, err := a.resolveType(d.Type)
	if err != nil {
		return err
	}
	scope := a.scopes.Current()
	if scope.ResolveLocal(d.Name.Name) != nil {
		return &DuplicateDeclarationError{Name: d.Name.Name, Pos: d.Pos()}
	}
	scope.Define(runtime.NewSymbol(d.Name.Name).
		WithCategory(runtime.VariableSym).
		WithType(typeSym))
	tracer().Debugf("declared variable '%s': %s in %s", d.Name.Name, typeSym.Name(), scope)
	return nil
}

func (a *Analyzer) visitProcedureDecl(d *ast.ProcedureDecl) error {
	scope := a.scopes.Current()
	if scope.ResolveLocal(d.Name) != nil {
		return &DuplicateDeclarationError{Name: d.Name, Pos: d.Pos()}
	}
	cat := runtime.ProcedureSym
	var retType *runtime.Symbol
	if d.IsFunction() {
		cat = runtime.FunctionSym
		var err error
		if retType, err = a.resolveType(d.ReturnType); err != nil {
			return err
		}
	}
	sym := runtime.NewSymbol(d.Name).WithCategory(cat).WithType(retType)
	sym.UData = d
	scope.Define(sym) // callee is visible in the scope it is declared in
	inner := a.scopes.PushNewScope(d.Name)
	defer a.scopes.PopScope()
	for _, param := range d.Params {
		ptype, err := a.resolveType(param.Type)
		if err != nil {
			return err
		}
		if inner.ResolveLocal(param.Name.Name) != nil {
			return &DuplicateDeclarationError{Name: param.Name.Name, Pos: param.Pos()}
		}
		psym := runtime.NewSymbol(param.Name.Name).
			WithCategory(runtime.ParamSym).
			WithType(ptype)
		inner.Define(psym)
		sym.Params = append(sym.Params, psym)
	}
	if d.IsFunction() {
		// The function's own name doubles as its return slot inside the
		// body, and resolves the recursive-call case. Insert the very same
		// symbol, bypassing Define, so its recorded level stays that of the
		// declaring scope.
		inner.Symbols().Insert(sym)
	}
	tracer().P("scope", d.Name).Debugf("declared %s with %d parameter(s)", sym.Category, sym.Arity())
	return a.visitBlock(d.Block)
}

func (a *Analyzer) visitStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Children {
			if err := a.visitStmt(child); err != nil {
				return err
			}
		}
	case *ast.Assign:
		if err := a.visitVar(s.Target); err != nil {
			return err
		}
		return a.visitExpr(s.Value)
	case *ast.If:
		if err := a.visitExpr(s.Cond); err != nil {
			return err
		}
		if err := a.visitStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.visitStmt(s.Else)
		}
	case *ast.While:
		if err := a.visitExpr(s.Cond); err != nil {
			return err
		}
		return a.visitStmt(s.Body)
	case *ast.ProcedureCall:
		return a.visitCall(s)
	case *ast.NoOp:
		// nothing
	}
	return nil
}

func (a *Analyzer) visitExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.BinOp:
		if err := a.visitExpr(e.Left); err != nil {
			return err
		}
		return a.visitExpr(e.Right)
	case *ast.UnaryOp:
		return a.visitExpr(e.Expr)
	case *ast.Var:
		return a.visitVar(e)
	case *ast.ProcedureCall:
		return a.visitCall(e)
	case *ast.Num, *ast.Bool:
		// literals need no checking
	}
	return nil
}

func (a *Analyzer) visitVar(v *ast.Var) error {
	sym, _ := a.scopes.Current().Resolve(v.Name)
	if sym == nil {
		return &UndeclaredIdentifierError{Name: v.Name, Pos: v.Pos()}
	}
	return nil
}

func (a *Analyzer) visitCall(c *ast.ProcedureCall) error {
	sym, _ := a.scopes.Current().Resolve(c.Name)
	if sym == nil {
		return &UndeclaredIdentifierError{Name: c.Name, Pos: c.Pos()}
	}
	if len(c.Args) != sym.Arity() {
		return &ArgumentCountMismatchError{
			Name: c.Name,
			Want: sym.Arity(),
			Got:  len(c.Args),
			Pos:  c.Pos(),
		}
	}
	for _, arg := range c.Args {
		if err := a.visitExpr(arg); err != nil {
			return err
		}
	}
	a.calls[c] = sym
	return nil
}

func (a *Analyzer) resolveType(t *ast.TypeSpec) (*runtime.Symbol, error) {
	sym, _ := a.scopes.Current().Resolve(t.Name)
	if sym == nil || sym.Category != runtime.BuiltinTypeSym {
		return nil, &UndeclaredIdentifierError{Name: t.Name, Pos: t.Pos()}
	}
	return sym, nil
}
