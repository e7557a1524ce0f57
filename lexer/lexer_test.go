package lexer

import (
	"testing"

	"github.com/bisayapp/bisaya/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	var ks []token.Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestNextTokenOperators(t *testing.T) {
	got := kinds(t, "+ - * / % > < >= <= == <> ++ & = += -= *= /= %=")
	want := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.GREATER, token.LESS, token.GREATER_EQUAL, token.LESS_EQUAL,
		token.EQUAL, token.NOT_EQUAL, token.INCREMENT, token.CONCAT,
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLineComment(t *testing.T) {
	toks, err := Tokenize("MUGNA NUMERO x -- this is ignored\nx=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range toks {
		if tok.Lexeme == "this" || tok.Lexeme == "ignored" {
			t.Fatalf("comment content leaked into token stream: %+v", tok)
		}
	}
}

func TestDollarSignIsNewline(t *testing.T) {
	toks, err := Tokenize(`"a"&$&"b"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var newlines int
	for _, tok := range toks {
		if tok.Kind == token.NEWLINE {
			newlines++
		}
	}
	if newlines != 1 {
		t.Fatalf("got %d NEWLINE tokens, want 1 (from $): %+v", newlines, toks)
	}
}

func TestAmpersandSwallowedNextToDollar(t *testing.T) {
	// '&' immediately touching '$' (on either side, across spaces) is
	// swallowed rather than emitted as CONCAT.
	toks, err := Tokenize(`"a" & $`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range toks {
		if tok.Kind == token.CONCAT {
			t.Fatalf("expected '&' adjacent to '$' to be swallowed, got CONCAT token: %+v", toks)
		}
	}
}

func TestBracketEscapeSimple(t *testing.T) {
	toks, err := Tokenize(`[hello world]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) < 1 || toks[0].Kind != token.STRING_LIT || toks[0].Lexeme != "hello world" {
		t.Fatalf("got %+v, want a single STRING_LIT %q", toks, "hello world")
	}
}

func TestBracketEscapeNestedBrackets(t *testing.T) {
	// "[[]" lexes to the one-character content "[": the inner '[' has no
	// ']' before it yet, so it is ordinary content, not a new escape.
	toks, err := Tokenize(`[[]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) < 1 || toks[0].Kind != token.STRING_LIT || toks[0].Lexeme != "[" {
		t.Fatalf("got %+v, want a single STRING_LIT %q", toks, "[")
	}
}

func TestBracketEscapeTrailingBrackets(t *testing.T) {
	// "[]]" lexes to the one-character content "]".
	toks, err := Tokenize(`[]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) < 1 || toks[0].Kind != token.STRING_LIT || toks[0].Lexeme != "]" {
		t.Fatalf("got %+v, want a single STRING_LIT %q", toks, "]")
	}
}

func TestBracketEscapeBackToBack(t *testing.T) {
	toks, err := Tokenize(`[abc][def]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) < 2 || toks[0].Lexeme != "abc" || toks[1].Lexeme != "def" {
		t.Fatalf("got %+v, want STRING_LITs %q then %q", toks, "abc", "def")
	}
}

func TestUnterminatedBracketEscapeErrors(t *testing.T) {
	if _, err := Tokenize(`[no closing bracket`); err == nil {
		t.Fatal("expected an error for an unterminated bracket escape")
	}
}

func TestStringBooleanDetection(t *testing.T) {
	toks, err := Tokenize(`"OO" "DILI" "plain"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.BOOL_TRUE, token.BOOL_FALSE, token.STRING_LIT, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestCharLiteralUTF8(t *testing.T) {
	toks, err := Tokenize(`'ñ'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.CHAR_LIT || toks[0].Lexeme != "ñ" {
		t.Fatalf("got %+v, want a single CHAR_LIT %q", toks, "ñ")
	}
}

func TestNumberLexing(t *testing.T) {
	toks, err := Tokenize(`42 3.14 5.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.INT_LIT || toks[0].Lexeme != "42" {
		t.Errorf("got %+v, want INT_LIT 42", toks[0])
	}
	if toks[1].Kind != token.FLOAT_LIT || toks[1].Lexeme != "3.14" {
		t.Errorf("got %+v, want FLOAT_LIT 3.14", toks[1])
	}
	// A trailing '.' with no following digit is not part of the number.
	if toks[2].Kind != token.INT_LIT || toks[2].Lexeme != "5" {
		t.Errorf("got %+v, want INT_LIT 5", toks[2])
	}
}

func TestDiliLexesToNot(t *testing.T) {
	toks, err := Tokenize(`DILI`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.NOT || toks[0].Lexeme != "NOT" {
		t.Fatalf("got %+v, want NOT token with lexeme NOT", toks[0])
	}
}

func TestUnterminatedStringErrors(t *testing.T) {
	if _, err := Tokenize(`"no closing quote`); err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}
