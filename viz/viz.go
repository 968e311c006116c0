/*
Package viz renders already-built interpreter data structures for human
inspection: syntax trees as terminal trees, expressions as postfix or
LISP-style notation, symbol tables as sorted tables.

The renderers only read; they never influence scanning, parsing, analysis or
interpretation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package viz

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/pterm/pterm"

	"github.com/npillmayer/pasc/ast"
	"github.com/npillmayer/pasc/runtime"
)

// --- Syntax trees ----------------------------------------------------------

// LeveledTree flattens a syntax tree into a pterm leveled list, suitable for
// terminal tree rendering.
func LeveledTree(root ast.Node) pterm.LeveledList {
	return leveledNode(root, pterm.LeveledList{}, 0)
}

// TreeOf wraps a syntax tree into a renderable pterm tree.
func TreeOf(root ast.Node) pterm.TreeNode {
	return pterm.NewTreeFromLeveledList(LeveledTree(root))
}

// RenderTree prints a syntax tree to the terminal.
func RenderTree(root ast.Node) {
	pterm.DefaultTree.WithRoot(TreeOf(root)).Render()
}

func leveledNode(node ast.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if node == nil {
		return ll
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: label(node)})
	for _, child := range children(node) {
		ll = leveledNode(child, ll, level+1)
	}
	return ll
}

func label(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Program:
		return "program " + n.Name
	case *ast.Block:
		return "block"
	case *ast.VarDecl:
		return fmt.Sprintf("var %s: %s", n.Name.Name, n.Type.Name)
	case *ast.Param:
		return fmt.Sprintf("param %s: %s", n.Name.Name, n.Type.Name)
	case *ast.ProcedureDecl:
		kind := "procedure"
		if n.IsFunction() {
			kind = "function"
		}
		return fmt.Sprintf("%s %s/%d", kind, n.Name, len(n.Params))
	case *ast.TypeSpec:
		return n.Name
	case *ast.Compound:
		return "begin…end"
	case *ast.Assign:
		return ":="
	case *ast.If:
		return "if"
	case *ast.While:
		return "while"
	case *ast.ProcedureCall:
		return "call " + n.Name
	case *ast.BinOp:
		return n.Tok.Lexeme
	case *ast.UnaryOp:
		return "unary " + n.Tok.Lexeme
	case *ast.Num:
		if n.IsReal {
			return fmt.Sprintf("%g", n.RealVal)
		}
		return fmt.Sprintf("%d", n.IntVal)
	case *ast.Bool:
		return fmt.Sprintf("%t", n.Value)
	case *ast.Var:
		return n.Name
	case *ast.NoOp:
		return "<empty>"
	}
	return fmt.Sprintf("%T", node)
}

func children(node ast.Node) []ast.Node {
	switch n := node.(type) {
	case *ast.Program:
		return []ast.Node{n.Block}
	case *ast.Block:
		var cc []ast.Node
		for _, d := range n.Decls {
			cc = append(cc, d)
		}
		return append(cc, n.Compound)
	case *ast.ProcedureDecl:
		var cc []ast.Node
		for _, p := range n.Params {
			cc = append(cc, p)
		}
		return append(cc, n.Block)
	case *ast.Compound:
		var cc []ast.Node
		for _, s := range n.Children {
			cc = append(cc, s)
		}
		return cc
	case *ast.Assign:
		return []ast.Node{n.Target, n.Value}
	case *ast.If:
		cc := []ast.Node{n.Cond, n.Then}
		if n.Else != nil {
			cc = append(cc, n.Else)
		}
		return cc
	case *ast.While:
		return []ast.Node{n.Cond, n.Body}
	case *ast.ProcedureCall:
		var cc []ast.Node
		for _, a := range n.Args {
			cc = append(cc, a)
		}
		return cc
	case *ast.BinOp:
		return []ast.Node{n.Left, n.Right}
	case *ast.UnaryOp:
		return []ast.Node{n.Expr}
	}
	return nil
}

// --- Expression translators ------------------------------------------------

// Postfix renders an expression subtree in reverse Polish notation, e.g.
// "(1 + 2) * 3" becomes "1 2 + 3 *".
func Postfix(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.Num:
		return label(n), nil
	case *ast.Bool:
		return label(n), nil
	case *ast.Var:
		return n.Name, nil
	case *ast.UnaryOp:
		sub, err := Postfix(n.Expr)
		if err != nil {
			return "", err
		}
		return sub + " " + unaryMark(n), nil
	case *ast.BinOp:
		left, err := Postfix(n.Left)
		if err != nil {
			return "", err
		}
		right, err := Postfix(n.Right)
		if err != nil {
			return "", err
		}
		return left + " " + right + " " + n.Tok.Lexeme, nil
	}
	return "", fmt.Errorf("cannot translate %T to postfix notation", e)
}

// Lisp renders an expression subtree in LISP-style prefix notation, e.g.
// "1 + 2 * 3" becomes "(+ 1 (* 2 3))".
func Lisp(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.Num, *ast.Bool:
		return label(n), nil
	case *ast.Var:
		return n.Name, nil
	case *ast.UnaryOp:
		sub, err := Lisp(n.Expr)
		if err != nil {
			return "", err
		}
		return "(" + unaryMark(n) + " " + sub + ")", nil
	case *ast.BinOp:
		left, err := Lisp(n.Left)
		if err != nil {
			return "", err
		}
		right, err := Lisp(n.Right)
		if err != nil {
			return "", err
		}
		return "(" + n.Tok.Lexeme + " " + left + " " + right + ")", nil
	}
	return "", fmt.Errorf("cannot translate %T to LISP notation", e)
}

func unaryMark(n *ast.UnaryOp) string {
	if n.Tok.Lexeme == "-" {
		return "neg"
	}
	return n.Tok.Lexeme
}

// --- Symbol tables ---------------------------------------------------------

// SymbolTableDump renders the symbols of a scope as a table, sorted by name.
func SymbolTableDump(scope *runtime.Scope) string {
	names := treeset.NewWith(utils.StringComparator)
	scope.Symbols().Each(func(nm string, _ *runtime.Symbol) {
		names.Add(nm)
	})
	rows := make([][2]string, 0, names.Size())
	nameWidth, descWidth := 4, 4
	names.Each(func(_ int, v interface{}) {
		nm := v.(string)
		desc := describe(scope.ResolveLocal(nm))
		if len(nm) > nameWidth {
			nameWidth = len(nm)
		}
		if len(desc) > descWidth {
			descWidth = len(desc)
		}
		rows = append(rows, [2]string{nm, desc})
	})
	var b strings.Builder
	rule := "+" + strings.Repeat("-", nameWidth+2) + "+" + strings.Repeat("-", descWidth+2) + "+\n"
	b.WriteString(rule)
	fmt.Fprintf(&b, "| %-*s | %-*s |\n", nameWidth, "Name", descWidth, "Type")
	b.WriteString(rule)
	for _, row := range rows {
		fmt.Fprintf(&b, "| %-*s | %-*s |\n", nameWidth, row[0], descWidth, row[1])
	}
	b.WriteString(rule)
	return b.String()
}

func describe(sym *runtime.Symbol) string {
	if sym == nil {
		return "?"
	}
	switch sym.Category {
	case runtime.VariableSym, runtime.ParamSym:
		return fmt.Sprintf("%s of type %s", sym.Category, sym.Type.Name())
	case runtime.FunctionSym:
		return fmt.Sprintf("function/%d: %s", sym.Arity(), sym.Type.Name())
	case runtime.ProcedureSym:
		return fmt.Sprintf("procedure/%d", sym.Arity())
	}
	return sym.Category.String()
}
