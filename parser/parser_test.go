package parser

import (
	"testing"

	"github.com/bisayapp/bisaya/ast"
	"github.com/bisayapp/bisaya/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return prog
}

func mustFail(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return err
	}
	_, err = Parse(toks)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want an error", src)
	}
	return err
}

func TestParseDeclarationAndAssignment(t *testing.T) {
	prog := mustParse(t, "SUGOD\nMUGNA NUMERO x=1, y\ny=x+2\nKATAPUSAN\n")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}

	decl, ok := prog.Statements[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("statement 0: got %T, want *ast.Declaration", prog.Statements[0])
	}
	if len(decl.Declarators) != 2 || decl.Declarators[0].Name != "x" || decl.Declarators[1].Name != "y" {
		t.Fatalf("unexpected declarators: %+v", decl.Declarators)
	}
	if decl.Declarators[1].Initializer != nil {
		t.Fatalf("declarator y should have no initializer, got %#v", decl.Declarators[1].Initializer)
	}

	assign, ok := prog.Statements[1].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement 1: got %T, want *ast.Assignment", prog.Statements[1])
	}
	if assign.Target != "y" {
		t.Fatalf("assignment target = %q, want y", assign.Target)
	}
	if _, ok := assign.Value.(*ast.Binary); !ok {
		t.Fatalf("assignment value = %T, want *ast.Binary", assign.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "SUGOD\nMUGNA NUMERO x\nx=1+2*3\nKATAPUSAN\n")
	assign := prog.Statements[1].(*ast.Assignment)
	bin, ok := assign.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", assign.Value)
	}
	if bin.Operator.String() != "PLUS" {
		t.Fatalf("top-level operator = %s, want PLUS (multiplication binds tighter)", bin.Operator)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Fatalf("right side = %T, want *ast.Binary (2*3)", bin.Right)
	}
}

func TestParseOutputConcatenation(t *testing.T) {
	prog := mustParse(t, `SUGOD
IPAKITA: "a" & "b" & "c"
KATAPUSAN
`)
	out, ok := prog.Statements[0].(*ast.Output)
	if !ok {
		t.Fatalf("got %T, want *ast.Output", prog.Statements[0])
	}
	if len(out.Expressions) != 3 {
		t.Fatalf("got %d output expressions, want 3", len(out.Expressions))
	}
}

func TestParseOutputDollarSentinelContinuesWithoutConcat(t *testing.T) {
	// The lexer swallows both '&' tokens adjacent to '$', so the token
	// stream here is STRING_LIT, NEWLINE("$"), STRING_LIT with no CONCAT
	// at all; the parser must still treat it as one three-operand list.
	prog := mustParse(t, `SUGOD
IPAKITA:"Resulta:" & $ & "Katapusan sa Linya"
KATAPUSAN
`)
	out, ok := prog.Statements[0].(*ast.Output)
	if !ok {
		t.Fatalf("got %T, want *ast.Output", prog.Statements[0])
	}
	if len(out.Expressions) != 3 {
		t.Fatalf("got %d output expressions, want 3: %+v", len(out.Expressions), out.Expressions)
	}
	if _, ok := out.Expressions[1].(*ast.NewlineLiteral); !ok {
		t.Fatalf("middle expression = %T, want *ast.NewlineLiteral", out.Expressions[1])
	}
	if _, ok := out.Expressions[2].(*ast.StringLiteral); !ok {
		t.Fatalf("last expression = %T, want *ast.StringLiteral (it must not be dropped)", out.Expressions[2])
	}
}

func TestParseElseIfChain(t *testing.T) {
	prog := mustParse(t, `SUGOD
MUGNA NUMERO score=75
KUNG(score>=90)PUNDOK{IPAKITA:"A"}
KUNG DILI(score>=80)PUNDOK{IPAKITA:"B"}
KUNG WALA PUNDOK{IPAKITA:"F"}
KATAPUSAN
`)
	ifStmt, ok := prog.Statements[1].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", prog.Statements[1])
	}
	elseIf, ok := ifStmt.Else.(*ast.If)
	if !ok {
		t.Fatalf("Else = %T, want *ast.If (KUNG DILI)", ifStmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Fatalf("elseIf.Else = %T, want *ast.Block (KUNG WALA)", elseIf.Else)
	}
}

func TestParsePostfixIncrementExpression(t *testing.T) {
	prog := mustParse(t, "SUGOD\nMUGNA NUMERO i=1\nIPAKITA: i++\nKATAPUSAN\n")
	out := prog.Statements[1].(*ast.Output)
	unary, ok := out.Expressions[0].(*ast.Unary)
	if !ok || !unary.Postfix {
		t.Fatalf("got %#v, want a postfix *ast.Unary", out.Expressions[0])
	}
}

func TestParseForLoop(t *testing.T) {
	prog := mustParse(t, "SUGOD\nMUGNA NUMERO ctr\nALANG SA(ctr=1, ctr<=10, ctr++) PUNDOK{\nIPAKITA: ctr\n}\nKATAPUSAN\n")
	forStmt, ok := prog.Statements[1].(*ast.For)
	if !ok {
		t.Fatalf("got %T, want *ast.For", prog.Statements[1])
	}
	if forStmt.Init == nil || forStmt.Condition == nil || forStmt.Update == nil {
		t.Fatalf("for-loop header incomplete: %+v", forStmt)
	}
}

func TestStructureRequiresSingleBeginEnd(t *testing.T) {
	mustFail(t, "MUGNA NUMERO x\n")
	mustFail(t, "SUGOD\nKATAPUSAN\nSUGOD\nKATAPUSAN\n")
}

func TestUndeclaredVariableRejected(t *testing.T) {
	mustFail(t, "SUGOD\nx=1\nKATAPUSAN\n")
}

func TestReservedKeywordAsNameRejected(t *testing.T) {
	mustFail(t, "SUGOD\nMUGNA NUMERO PUNDOK\nKATAPUSAN\n")
}

func TestRedeclarationRejected(t *testing.T) {
	mustFail(t, "SUGOD\nMUGNA NUMERO x, x\nKATAPUSAN\n")
}

func TestAssignmentInsideConditionRejected(t *testing.T) {
	mustFail(t, "SUGOD\nMUGNA NUMERO x\nKUNG(x=1)PUNDOK{IPAKITA:x}\nKATAPUSAN\n")
}

func TestConcatOutsideDisplayRejected(t *testing.T) {
	mustFail(t, "SUGOD\nMUGNA NUMERO x, y\nx=y&1\nKATAPUSAN\n")
}

func TestEmptyPundokBlockTolerated(t *testing.T) {
	prog := mustParse(t, "SUGOD\nMUGNA TINUOD b=\"OO\"\nKUNG(b)PUNDOK{\n}\nKATAPUSAN\n")
	ifStmt := prog.Statements[1].(*ast.If)
	if len(ifStmt.Then.Statements) != 1 {
		t.Fatalf("empty PUNDOK body should get a single Empty statement, got %d", len(ifStmt.Then.Statements))
	}
	if _, ok := ifStmt.Then.Statements[0].(*ast.Empty); !ok {
		t.Fatalf("got %T, want *ast.Empty", ifStmt.Then.Statements[0])
	}
}
