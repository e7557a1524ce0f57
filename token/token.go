// Package token defines Bisaya++ lexical token kinds and the keyword table.
package token

// Kind identifies the lexical category of a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Program markers
	BEGIN // SUGOD
	END   // KATAPUSAN

	// Block markers
	BLOCK_START // {
	BLOCK_END   // }
	BLOCK_KW    // PUNDOK

	// Type keywords
	INT_TYPE    // NUMERO
	FLOAT_TYPE  // TIPIK
	CHAR_TYPE   // LETRA
	BOOL_TYPE   // TINUOD
	STRING_TYPE // PULONG

	// Literals
	INT_LIT
	FLOAT_LIT
	CHAR_LIT
	STRING_LIT
	BOOL_TRUE  // OO
	BOOL_FALSE // DILI (as a literal)

	// Operators
	ASSIGN        // =
	PLUS          // +
	MINUS         // -
	STAR          // *
	SLASH         // /
	PERCENT       // %
	GREATER       // >
	LESS          // <
	GREATER_EQUAL // >=
	LESS_EQUAL    // <=
	EQUAL         // ==
	NOT_EQUAL     // <>
	INCREMENT     // ++
	CONCAT        // &
	AND           // UG
	OR            // O
	NOT           // DILI, used as a unary boolean operator

	// Compound assignment (lexed, and accepted by the parser wherever `=` is)
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN

	// Delimiters
	COLON     // :
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	NEWLINE   // "\n" or "$"

	// Control keywords
	MUGNA   // declare
	KUNG    // if
	WALA    // else (KUNG WALA)
	ALANG   // for (ALANG SA)
	SA      // (ALANG SA)
	SAMTANG // while
	IPAKITA // display
	DAWAT   // input

	IDENT
	UNKNOWN
)

var names = map[Kind]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	BEGIN:           "BEGIN",
	END:             "END",
	BLOCK_START:     "BLOCK_START",
	BLOCK_END:       "BLOCK_END",
	BLOCK_KW:        "BLOCK_KW",
	INT_TYPE:        "INT_TYPE",
	FLOAT_TYPE:      "FLOAT_TYPE",
	CHAR_TYPE:       "CHAR_TYPE",
	BOOL_TYPE:       "BOOL_TYPE",
	STRING_TYPE:     "STRING_TYPE",
	INT_LIT:         "INT_LIT",
	FLOAT_LIT:       "FLOAT_LIT",
	CHAR_LIT:        "CHAR_LIT",
	STRING_LIT:      "STRING_LIT",
	BOOL_TRUE:       "BOOL_TRUE",
	BOOL_FALSE:      "BOOL_FALSE",
	ASSIGN:          "ASSIGN",
	PLUS:            "PLUS",
	MINUS:           "MINUS",
	STAR:            "STAR",
	SLASH:           "SLASH",
	PERCENT:         "PERCENT",
	GREATER:         "GREATER",
	LESS:            "LESS",
	GREATER_EQUAL:   "GREATER_EQUAL",
	LESS_EQUAL:      "LESS_EQUAL",
	EQUAL:           "EQUAL",
	NOT_EQUAL:       "NOT_EQUAL",
	INCREMENT:       "INCREMENT",
	CONCAT:          "CONCAT",
	AND:             "AND",
	OR:              "OR",
	NOT:             "NOT",
	PLUS_ASSIGN:     "PLUS_ASSIGN",
	MINUS_ASSIGN:    "MINUS_ASSIGN",
	STAR_ASSIGN:     "STAR_ASSIGN",
	SLASH_ASSIGN:    "SLASH_ASSIGN",
	PERCENT_ASSIGN:  "PERCENT_ASSIGN",
	COLON:           "COLON",
	COMMA:           "COMMA",
	LPAREN:          "LPAREN",
	RPAREN:          "RPAREN",
	NEWLINE:         "NEWLINE",
	MUGNA:           "MUGNA",
	KUNG:            "KUNG",
	WALA:            "WALA",
	ALANG:           "ALANG",
	SA:              "SA",
	SAMTANG:         "SAMTANG",
	IPAKITA:         "IPAKITA",
	DAWAT:           "DAWAT",
	IDENT:           "IDENT",
	UNKNOWN:         "UNKNOWN",
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexeme with its kind and source line.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// Keywords maps the Cebuano-word source spelling to its token kind.
// DILI is intentionally absent: it is never lexed as an identifier-context
// keyword directly, it only ever surfaces through the string-literal rule
// (producing BOOL_FALSE) or the dedicated unary-operator check in the
// lexer (producing NOT). See Lexer.lexIdentifier.
var Keywords = map[string]Kind{
	"SUGOD":      BEGIN,
	"KATAPUSAN":  END,
	"PUNDOK":     BLOCK_KW,
	"NUMERO":     INT_TYPE,
	"TIPIK":      FLOAT_TYPE,
	"LETRA":      CHAR_TYPE,
	"TINUOD":     BOOL_TYPE,
	"PULONG":     STRING_TYPE,
	"MUGNA":      MUGNA,
	"KUNG":       KUNG,
	"WALA":       WALA,
	"ALANG":      ALANG,
	"SA":         SA,
	"SAMTANG":    SAMTANG,
	"IPAKITA":    IPAKITA,
	"DAWAT":      DAWAT,
	"UG":         AND,
	"O":          OR,
}

// LookupIdent returns the keyword token kind for ident, or IDENT if it is a
// plain identifier.
func LookupIdent(ident string) Kind {
	if kind, ok := Keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// IsReserved reports whether ident names a reserved keyword and therefore
// cannot be used as a variable name.
func IsReserved(ident string) bool {
	if ident == "DILI" || ident == "OO" || ident == "PUNDOK" {
		return true
	}
	_, ok := Keywords[ident]
	return ok
}
