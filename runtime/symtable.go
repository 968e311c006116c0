package runtime

import (
	"fmt"
)

// Symbol tables for declarations. Symbol tables are attached to scopes.
// Scopes are organized in a tree, which the semantic analyzer and the
// interpreter traverse in lockstep as a stack.
//

// --- Symbols ----------------------------------------------------

// SymCategory classifies a declared name.
type SymCategory int8

// Categories of symbols stored into symbol tables.
const (
	UndefinedSym SymCategory = iota
	BuiltinTypeSym
	VariableSym
	ParamSym
	ProcedureSym
	FunctionSym
	ProgramSym
)

func (c SymCategory) String() string {
	switch c {
	case BuiltinTypeSym:
		return "builtin type"
	case VariableSym:
		return "variable"
	case ParamSym:
		return "parameter"
	case ProcedureSym:
		return "procedure"
	case FunctionSym:
		return "function"
	case ProgramSym:
		return "program"
	}
	return "undefined"
}

// Symbol is the entry type stored into symbol tables: a declared name
// together with its declaration metadata. Variables and parameters carry the
// symbol of their declared type; procedures and functions carry their ordered
// formal parameters, functions additionally a return type.
type Symbol struct {
	name     string
	Category SymCategory
	Type     *Symbol     // declared type for variables/parameters, return type for functions
	Params   []*Symbol   // ordered formal parameters of procedures/functions
	Level    int         // nesting level of the declaring scope
	UData    interface{} // user data, e.g. the declaration node
}

// NewSymbol creates a new symbol.
func NewSymbol(nm string) *Symbol {
	return &Symbol{name: nm}
}

// WithCategory sets the category of a symbol. Use as
//
//    sym := NewSymbol("x").WithCategory(VariableSym).WithType(intType)
//
func (s *Symbol) WithCategory(cat SymCategory) *Symbol {
	s.Category = cat
	return s
}

// WithType sets the declared type of a symbol (for chaining).
func (s *Symbol) WithType(t *Symbol) *Symbol {
	s.Type = t
	return s
}

// Name gets the symbol's name.
func (s *Symbol) Name() string {
	return s.name
}

// Arity returns the number of formal parameters of a callable symbol.
func (s *Symbol) Arity() int {
	return len(s.Params)
}

// String is a debug Stringer for symbols.
func (s *Symbol) String() string {
	if s.Type != nil {
		return fmt.Sprintf("<%s '%s':%s>", s.Category, s.name, s.Type.Name())
	}
	return fmt.Sprintf("<%s '%s'>", s.Category, s.name)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store symbols (map-like semantics).
type SymbolTable struct {
	Table map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	var symtab = SymbolTable{
		Table: make(map[string]*Symbol),
	}
	return &symtab
}

// Resolve checks for a symbol in the symbol table.
// Returns a symbol or nil.
func (t *SymbolTable) Resolve(name string) *Symbol {
	return t.Table[name]
}

// Insert inserts a pre-created symbol. Returns the previously stored symbol
// under this name, if any.
func (t *SymbolTable) Insert(sym *Symbol) *Symbol {
	old := t.Resolve(sym.name)
	t.Table[sym.name] = sym
	return old
}

// Size counts the symbols in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each symbol in the table, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Symbol)) {
	for k, v := range t.Table {
		mapper(k, v)
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain symbol definitions. Scopes link
// back to a parent scope, forming a tree. Names are unique within one scope;
// an inner scope may shadow a name of an outer one.
type Scope struct {
	Name   string
	Parent *Scope
	Level  int // nesting depth, 1 for the global scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	level := 1
	if parent != nil {
		level = parent.Level + 1
	}
	sc := &Scope{
		Name:   nm,
		Parent: parent,
		Level:  level,
		symtab: NewSymbolTable(),
	}
	return sc
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s/%d>", s.Name, s.Level)
}

// Symbols returns the symbol table of a scope.
func (s *Scope) Symbols() *SymbolTable {
	return s.symtab
}

// Define inserts a symbol into the scope, recording the scope's nesting
// level on the symbol. Returns the previously stored symbol under this
// name, if any — callers treat a non-nil return as a duplicate declaration.
func (s *Scope) Define(sym *Symbol) *Symbol {
	sym.Level = s.Level
	return s.symtab.Insert(sym)
}

// ResolveLocal finds a symbol in this scope only, ignoring parents.
func (s *Scope) ResolveLocal(name string) *Symbol {
	return s.symtab.Resolve(name)
}

// Resolve finds a symbol. Returns the symbol (or nil) and a scope. The scope
// is the scope (of a scope-tree-path) the symbol was found in, searching
// from innermost to outermost.
func (s *Scope) Resolve(name string) (*Symbol, *Scope) {
	sym := s.symtab.Resolve(name)
	if sym != nil {
		return sym, s
	}
	for s.Parent != nil {
		s = s.Parent
		sym, _ = s.Resolve(name)
		if sym != nil {
			return sym, s
		}
	}
	return sym, nil
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack during static analysis, thus
// building a tree from scopes which are pushed and popped to/from the stack.
type ScopeTree struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeTree) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// PushNewScope pushes a scope onto the stack of scopes. A scope is
// constructed, including a symbol table for declarations.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc // make new scope anchor
	}
	scst.ScopeTOS = newsc // new scope now TOS
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	return sc
}
