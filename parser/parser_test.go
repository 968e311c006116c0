package parser

import (
	"testing"

	"github.com/npillmayer/pasc"
	"github.com/npillmayer/pasc/ast"
	"github.com/npillmayer/pasc/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parseProgram(t *testing.T, input string) (*ast.Program, error) {
	t.Helper()
	sc, err := scanner.ScanString(input)
	if err != nil {
		t.Fatal(err)
	}
	p, err := New(sc)
	if err != nil {
		t.Fatal(err)
	}
	return p.Parse()
}

func parseExpr(t *testing.T, input string) ast.Expr {
	t.Helper()
	sc, err := scanner.ScanString(input)
	if err != nil {
		t.Fatal(err)
	}
	p, err := New(sc)
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExpression()
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func intOf(t *testing.T, e ast.Expr) int64 {
	t.Helper()
	num, is := e.(*ast.Num)
	if !is {
		t.Fatalf("expected number literal, got %T", e)
	}
	return num.IntVal
}

func TestExprPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	e := parseExpr(t, "1 + 2 * 3")
	add, is := e.(*ast.BinOp)
	if !is || add.Op != pasc.Plus {
		t.Fatalf("expected '+' at the root, got %T", e)
	}
	if intOf(t, add.Left) != 1 {
		t.Errorf("expected left operand 1, got %v", add.Left)
	}
	mul, is := add.Right.(*ast.BinOp)
	if !is || mul.Op != pasc.Mul {
		t.Fatalf("expected '*' below '+', got %T", add.Right)
	}
	if intOf(t, mul.Left) != 2 || intOf(t, mul.Right) != 3 {
		t.Errorf("expected operands 2 and 3, got %v and %v", mul.Left, mul.Right)
	}
}

func TestExprParentheses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	e := parseExpr(t, "(1 + 2) * 3")
	mul, is := e.(*ast.BinOp)
	if !is || mul.Op != pasc.Mul {
		t.Fatalf("expected '*' at the root, got %T", e)
	}
	add, is := mul.Left.(*ast.BinOp)
	if !is || add.Op != pasc.Plus {
		t.Fatalf("expected parenthesized '+' on the left, got %T", mul.Left)
	}
	if intOf(t, mul.Right) != 3 {
		t.Errorf("expected right operand 3, got %v", mul.Right)
	}
}

func TestExprUnary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	e := parseExpr(t, "- - 5")
	outer, is := e.(*ast.UnaryOp)
	if !is || outer.Op != pasc.Minus {
		t.Fatalf("expected unary '-' at the root, got %T", e)
	}
	inner, is := outer.Expr.(*ast.UnaryOp)
	if !is || inner.Op != pasc.Minus {
		t.Fatalf("expected nested unary '-', got %T", outer.Expr)
	}
	if intOf(t, inner.Expr) != 5 {
		t.Errorf("expected literal 5, got %v", inner.Expr)
	}
}

func TestExprRelational(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	e := parseExpr(t, "1 + 2 <= 3 * 4")
	rel, is := e.(*ast.BinOp)
	if !is || rel.Op != pasc.Le {
		t.Fatalf("expected '<=' at the root, got %T", e)
	}
	if _, is = rel.Left.(*ast.BinOp); !is {
		t.Errorf("expected '+' subtree on the left, got %T", rel.Left)
	}
	if _, is = rel.Right.(*ast.BinOp); !is {
		t.Errorf("expected '*' subtree on the right, got %T", rel.Right)
	}
}

func TestExprRelationalNotAssociative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	sc, _ := scanner.ScanString("1 < 2 < 3")
	p, err := New(sc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = p.ParseExpression(); err == nil {
		t.Error("expected chained comparison to be rejected")
	}
}

func TestExprBoolean(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	e := parseExpr(t, "not true or false and true")
	or, is := e.(*ast.BinOp)
	if !is || or.Op != pasc.Or {
		t.Fatalf("expected 'or' at the root, got %T", e)
	}
	if _, is = or.Left.(*ast.UnaryOp); !is {
		t.Errorf("expected 'not' subtree on the left, got %T", or.Left)
	}
	and, is := or.Right.(*ast.BinOp)
	if !is || and.Op != pasc.And {
		t.Fatalf("expected 'and' subtree on the right, got %T", or.Right)
	}
}

func TestProgramSkeleton(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	prog, err := parseProgram(t, "program demo; begin end.")
	if err != nil {
		t.Fatal(err)
	}
	if prog.Name != "demo" {
		t.Errorf("expected program name 'demo', got %q", prog.Name)
	}
	if len(prog.Block.Decls) != 0 {
		t.Errorf("expected no declarations, got %d", len(prog.Block.Decls))
	}
	if len(prog.Block.Compound.Children) != 1 {
		t.Fatalf("expected a single (empty) statement, got %d", len(prog.Block.Compound.Children))
	}
	if _, is := prog.Block.Compound.Children[0].(*ast.NoOp); !is {
		t.Errorf("expected an empty statement, got %T", prog.Block.Compound.Children[0])
	}
}

func TestVariableDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	prog, err := parseProgram(t, `
		program demo;
		var a, b : integer;
		    y    : real;
		begin end.`)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Block.Decls) != 3 {
		t.Fatalf("expected 3 variable declarations, got %d", len(prog.Block.Decls))
	}
	names := []string{"a", "b", "y"}
	types := []string{"integer", "integer", "real"}
	for i, decl := range prog.Block.Decls {
		vd, is := decl.(*ast.VarDecl)
		if !is {
			t.Fatalf("declaration #%d: expected a variable declaration, got %T", i, decl)
		}
		if vd.Name.Name != names[i] || vd.Type.Name != types[i] {
			t.Errorf("declaration #%d: expected %s: %s, got %s: %s", i,
				names[i], types[i], vd.Name.Name, vd.Type.Name)
		}
	}
}

func TestProcedureDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	prog, err := parseProgram(t, `
		program main;
		procedure alpha(a : integer; b : integer);
		var x : integer;
		begin
		   x := (a + b) * 2
		end;
		begin { main }
		   alpha(3 + 5, 7)
		end.`)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Block.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Block.Decls))
	}
	pd, is := prog.Block.Decls[0].(*ast.ProcedureDecl)
	if !is {
		t.Fatalf("expected a procedure declaration, got %T", prog.Block.Decls[0])
	}
	if pd.Name != "alpha" || pd.IsFunction() {
		t.Errorf("expected procedure 'alpha', got %v", pd)
	}
	if len(pd.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(pd.Params))
	}
	if pd.Params[0].Name.Name != "a" || pd.Params[1].Name.Name != "b" {
		t.Errorf("unexpected parameter names %s, %s", pd.Params[0].Name.Name, pd.Params[1].Name.Name)
	}
	call, is := prog.Block.Compound.Children[0].(*ast.ProcedureCall)
	if !is {
		t.Fatalf("expected a procedure call, got %T", prog.Block.Compound.Children[0])
	}
	if call.Name != "alpha" || len(call.Args) != 2 {
		t.Errorf("expected call alpha/2, got %s/%d", call.Name, len(call.Args))
	}
}

func TestFunctionDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	prog, err := parseProgram(t, `
		program main;
		function add(a, b : integer) : integer;
		begin
		   add := a + b
		end;
		var r : integer;
		begin
		   r := add(2, 3)
		end.`)
	if err == nil {
		t.Fatal("expected 'var' after a subprogram section to be rejected")
	}
	prog, err = parseProgram(t, `
		program main;
		var r : integer;
		function add(a, b : integer) : integer;
		begin
		   add := a + b
		end;
		begin
		   r := add(2, 3)
		end.`)
	if err != nil {
		t.Fatal(err)
	}
	fd, is := prog.Block.Decls[1].(*ast.ProcedureDecl)
	if !is {
		t.Fatalf("expected a function declaration, got %T", prog.Block.Decls[1])
	}
	if !fd.IsFunction() || fd.ReturnType.Name != "integer" {
		t.Errorf("expected function returning integer, got %v", fd.ReturnType)
	}
	if len(fd.Params) != 2 {
		t.Errorf("expected 2 parameters, got %d", len(fd.Params))
	}
}

func TestNestedProcedures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	prog, err := parseProgram(t, `
		program outerscope;
		var x : integer;
		procedure outer;
		   procedure inner;
		   begin
		      x := x + 1
		   end;
		begin
		   inner()
		end;
		begin
		   outer()
		end.`)
	if err != nil {
		t.Fatal(err)
	}
	outer, is := prog.Block.Decls[1].(*ast.ProcedureDecl)
	if !is {
		t.Fatalf("expected procedure 'outer', got %T", prog.Block.Decls[1])
	}
	if len(outer.Block.Decls) != 1 {
		t.Fatalf("expected 1 nested declaration, got %d", len(outer.Block.Decls))
	}
	inner, is := outer.Block.Decls[0].(*ast.ProcedureDecl)
	if !is || inner.Name != "inner" {
		t.Errorf("expected nested procedure 'inner', got %v", outer.Block.Decls[0])
	}
}

func TestIfWhileStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	prog, err := parseProgram(t, `
		program loop;
		var i, s : integer;
		begin
		   i := 0;
		   while i < 10 do begin
		      if i mod 2 = 0 then s := s + i else s := s - 1;
		      i := i + 1
		   end
		end.`)
	if err != nil {
		t.Fatal(err)
	}
	stmts := prog.Block.Compound.Children
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	loop, is := stmts[1].(*ast.While)
	if !is {
		t.Fatalf("expected a while statement, got %T", stmts[1])
	}
	body, is := loop.Body.(*ast.Compound)
	if !is {
		t.Fatalf("expected a compound loop body, got %T", loop.Body)
	}
	cond, is := body.Children[0].(*ast.If)
	if !is {
		t.Fatalf("expected an if statement, got %T", body.Children[0])
	}
	if cond.Else == nil {
		t.Error("expected an else branch")
	}
}

func TestSyntaxErrorMissingSemicolon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	_, err := parseProgram(t, `
		program broken;
		var x : integer;
		begin
		   x := 1
		   x := 2
		end.`)
	synErr, is := err.(*SyntaxError)
	if !is {
		t.Fatalf("expected a *SyntaxError, got %v", err)
	}
	if synErr.Expected != pasc.Semi.String() {
		t.Errorf("expected the error to ask for ';', got %q", synErr.Expected)
	}
	if synErr.Got.Type != pasc.Ident {
		t.Errorf("expected the offending token to be an identifier, got %v", synErr.Got)
	}
	t.Logf("error message: %v", synErr)
}

func TestSyntaxErrorMissingDot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	_, err := parseProgram(t, "program broken; begin end")
	synErr, is := err.(*SyntaxError)
	if !is {
		t.Fatalf("expected a *SyntaxError, got %v", err)
	}
	if synErr.Got.Type != pasc.EOF {
		t.Errorf("expected failure at end of input, got %v", synErr.Got)
	}
}

func TestTrailingInputRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pasc.parser")
	defer teardown()
	//
	_, err := parseProgram(t, "program p; begin end. extra")
	if err == nil {
		t.Error("expected input after the final dot to be rejected")
	}
}
