package interp

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunEndToEnd(t *testing.T) {
	var out bytes.Buffer
	err := Run("SUGOD\nMUGNA NUMERO x=40, y=2\nIPAKITA: x+y\nKATAPUSAN\n", strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestRunSurfacesLexError(t *testing.T) {
	var out bytes.Buffer
	err := Run(`SUGOD
IPAKITA: "unterminated
KATAPUSAN
`, strings.NewReader(""), &out)
	if err == nil {
		t.Fatal("expected a lexer error for an unterminated string")
	}
}

func TestRunSurfacesParseError(t *testing.T) {
	var out bytes.Buffer
	err := Run("SUGOD\nx=1\nKATAPUSAN\n", strings.NewReader(""), &out)
	if err == nil {
		t.Fatal("expected a parse error for an undeclared variable")
	}
}

func TestFormatErrorIncludesSourceContext(t *testing.T) {
	source := "SUGOD\nx=1\nKATAPUSAN\n"
	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	_, err = Parse(tokens)
	if err == nil {
		t.Fatal("expected a parse error for an undeclared variable")
	}

	formatted := FormatError(err, source, false)
	if !strings.Contains(formatted, "line 2") {
		t.Errorf("formatted error %q should mention line 2", formatted)
	}
}
