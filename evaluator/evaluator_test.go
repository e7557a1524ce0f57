package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bisayapp/bisaya/lexer"
	"github.com/bisayapp/bisaya/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	var out bytes.Buffer
	eval := New(&out, strings.NewReader(""))
	err = eval.Run(prog)
	return out.String(), err
}

func TestArithmeticPrecedenceAndUnaryMinus(t *testing.T) {
	out, err := run(t, "SUGOD\nMUGNA NUMERO x\nx=((10*5)/10+10)*-1\nIPAKITA: x\nKATAPUSAN\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "-15" {
		t.Errorf("got %q, want -15", out)
	}
}

func TestIntegerOverflowDetected(t *testing.T) {
	_, err := run(t, "SUGOD\nMUGNA NUMERO x=2000000000\nx=x+2000000000\nKATAPUSAN\n")
	if err == nil {
		t.Fatal("expected an integer-overflow error")
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "SUGOD\nMUGNA NUMERO x=1, y=0\nx=x/y\nKATAPUSAN\n")
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestIntFloatPromotion(t *testing.T) {
	out, err := run(t, "SUGOD\nMUGNA TIPIK a=1.5\nMUGNA NUMERO b=2\nIPAKITA: a+b\nKATAPUSAN\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3.5" {
		t.Errorf("got %q, want 3.5", out)
	}
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, "SUGOD\nMUGNA NUMERO i=0\nSAMTANG(i<3)PUNDOK{\ni++\nIPAKITA: i\n}\nKATAPUSAN\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "123" {
		t.Errorf("got %q, want 123", out)
	}
}

func TestForLoopPostfixIncrementUpdate(t *testing.T) {
	out, err := run(t, "SUGOD\nMUGNA NUMERO ctr\nALANG SA(ctr=1, ctr<=3, ctr++) PUNDOK{\nIPAKITA: ctr\n}\nKATAPUSAN\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "123" {
		t.Errorf("got %q, want 123", out)
	}
}

func TestOutputEvaluatesOperandsRightToLeft(t *testing.T) {
	// i++ displays the incremented value, while the trailing i still
	// observes the pre-increment value from the same statement. That only
	// holds if the trailing i is read before i++ runs.
	out, err := run(t, "SUGOD\nMUGNA NUMERO i=1\nIPAKITA: i++ & \" \" & i\nKATAPUSAN\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2 1" {
		t.Errorf("got %q, want %q", out, "2 1")
	}
}

func TestStringNumericCoercionInArithmetic(t *testing.T) {
	out, err := run(t, `SUGOD
MUGNA NUMERO x
MUGNA PULONG s="10"
x="5"
IPAKITA: x+s
KATAPUSAN
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "15" {
		t.Errorf("got %q, want 15", out)
	}
}

func TestBoolExactLexemeCoercion(t *testing.T) {
	out, err := run(t, `SUGOD
MUGNA TINUOD t="OO", f="DILI"
KUNG(t UG DILI f)PUNDOK{IPAKITA:"both"}
KATAPUSAN
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "both" {
		t.Errorf("got %q, want both", out)
	}
}

func TestUndeclaredVariableAtRuntimeNeverReached(t *testing.T) {
	// The parser rejects undeclared identifiers before the evaluator ever
	// runs, so this exercises that the two layers agree: a program that
	// fails to parse never reaches evaluation.
	_, err := lexerAndParseOnly(t, "SUGOD\nx=1\nKATAPUSAN\n")
	if err == nil {
		t.Fatal("expected a parse-time undeclared-variable error")
	}
}

func lexerAndParseOnly(t *testing.T, src string) (any, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

func TestCharDisplayAndConcatenation(t *testing.T) {
	out, err := run(t, `SUGOD
MUGNA LETRA c='Z'
IPAKITA: "value: " & c
KATAPUSAN
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "value: Z" {
		t.Errorf("got %q, want %q", out, "value: Z")
	}
}
