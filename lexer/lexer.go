// Package lexer implements the Bisaya++ lexer.
package lexer

import (
	"strings"

	"github.com/bisayapp/bisaya/bisayaerr"
	"github.com/bisayapp/bisaya/token"
)

// Lexer turns Bisaya++ source text into a token stream. It is stateful only
// for the duration of one Tokenize/NextToken call sequence.
type Lexer struct {
	input        string
	position     int // current position in input (points to current char)
	readPosition int // position after current char
	ch           byte
	line         int
}

// New creates a Lexer over src. Line endings are normalized to "\n" first,
// per §6 ("Line endings normalized to line feed").
func New(src string) *Lexer {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	l := &Lexer{input: src, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// lastNonSpaceIsDollar/nextNonSpaceIsDollar look past whitespace (not newlines) to find the
// nearest non-whitespace neighbor, used by the '&' swallow-next-to-'$' rule.
func (l *Lexer) lastNonSpaceIsDollar() bool {
	i := l.position - 1
	for i >= 0 && (l.input[i] == ' ' || l.input[i] == '\t') {
		i--
	}
	return i >= 0 && l.input[i] == '$'
}

func (l *Lexer) nextNonSpaceIsDollar() bool {
	i := l.readPosition
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
		i++
	}
	return i < len(l.input) && l.input[i] == '$'
}

func (l *Lexer) newToken(kind token.Kind, lexeme string) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Line: l.line}
}

// Tokenize runs the lexer to completion and returns the full token sequence,
// terminated by an EOF token. It fails on malformed lexemes (§4.1).
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, nil
}

// NextToken returns the next token, or a lexer-malformed error.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	startLine := l.line

	switch l.ch {
	case 0:
		return l.newToken(token.EOF, ""), nil
	case '\n':
		l.readChar()
		l.line++
		tok := token.Token{Kind: token.NEWLINE, Lexeme: "\n", Line: startLine}
		return tok, nil
	case '$':
		l.readChar()
		return token.Token{Kind: token.NEWLINE, Lexeme: "$", Line: startLine}, nil
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.EQUAL, "=="), nil
		}
		l.readChar()
		return l.newToken(token.ASSIGN, "="), nil
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			l.readChar()
			return l.newToken(token.INCREMENT, "++"), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.PLUS_ASSIGN, "+="), nil
		}
		l.readChar()
		return l.newToken(token.PLUS, "+"), nil
	case '-':
		if l.peekChar() == '-' {
			// Line comment: consume to end of line, emit one newline token.
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			if l.ch == '\n' {
				tok := token.Token{Kind: token.NEWLINE, Lexeme: "\n", Line: l.line}
				l.readChar()
				l.line++
				return tok, nil
			}
			return l.newToken(token.EOF, ""), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.MINUS_ASSIGN, "-="), nil
		}
		l.readChar()
		return l.newToken(token.MINUS, "-"), nil
	case '*':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.STAR_ASSIGN, "*="), nil
		}
		l.readChar()
		return l.newToken(token.STAR, "*"), nil
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.SLASH_ASSIGN, "/="), nil
		}
		l.readChar()
		return l.newToken(token.SLASH, "/"), nil
	case '%':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.PERCENT_ASSIGN, "%="), nil
		}
		l.readChar()
		return l.newToken(token.PERCENT, "%"), nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.GREATER_EQUAL, ">="), nil
		}
		l.readChar()
		return l.newToken(token.GREATER, ">"), nil
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.LESS_EQUAL, "<="), nil
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.newToken(token.NOT_EQUAL, "<>"), nil
		}
		l.readChar()
		return l.newToken(token.LESS, "<"), nil
	case '&':
		swallow := l.lastNonSpaceIsDollar() || l.nextNonSpaceIsDollar()
		l.readChar()
		if swallow {
			return l.NextToken()
		}
		return token.Token{Kind: token.CONCAT, Lexeme: "&", Line: startLine}, nil
	case ':':
		l.readChar()
		return l.newToken(token.COLON, ":"), nil
	case ',':
		l.readChar()
		return l.newToken(token.COMMA, ","), nil
	case '(':
		l.readChar()
		return l.newToken(token.LPAREN, "("), nil
	case ')':
		l.readChar()
		return l.newToken(token.RPAREN, ")"), nil
	case '{':
		l.readChar()
		return l.newToken(token.BLOCK_START, "{"), nil
	case '}':
		l.readChar()
		return l.newToken(token.BLOCK_END, "}"), nil
	case '[':
		return l.lexBracketEscape(startLine)
	case '"':
		return l.lexString(startLine)
	case '\'':
		return l.lexChar(startLine)
	default:
		if isLetter(l.ch) || l.ch == '_' {
			return l.lexIdentifier(startLine), nil
		}
		if isDigit(l.ch) {
			return l.lexNumber(startLine), nil
		}
		ch := l.ch
		l.readChar()
		return l.newToken(token.UNKNOWN, string(ch)), nil
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

// lexBracketEscape implements the "[...]" rule: content runs from the
// opening '[' to the LAST ']' before another '[' or EOF, producing a single
// STRING_LIT with the raw content (§4.1). A '[' seen before any ']' has
// closed the current escape is itself ordinary content (not a new escape) —
// this is what makes "[[]" lex to the one-character content "[" rather than
// failing to find a close at all.
func (l *Lexer) lexBracketEscape(startLine int) (token.Token, error) {
	l.readChar() // consume '['

	searchStart := l.position
	lastClose := -1
	i := searchStart
	for i < len(l.input) {
		if l.input[i] == '[' && lastClose != -1 {
			break
		}
		if l.input[i] == ']' {
			lastClose = i
		}
		i++
	}
	if lastClose == -1 {
		return token.Token{}, bisayaerr.New(bisayaerr.LexerMalformed, startLine, "unterminated bracket escape")
	}

	content := l.input[searchStart:lastClose]
	for l.position <= lastClose {
		l.readChar()
	}
	return token.Token{Kind: token.STRING_LIT, Lexeme: content, Line: startLine}, nil
}

// lexString implements the `"..."` rule, including the OO/DILI boolean
// detection (§4.1).
func (l *Lexer) lexString(startLine int) (token.Token, error) {
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{}, bisayaerr.New(bisayaerr.LexerMalformed, startLine, "unterminated string literal")
		}
		l.readChar()
	}
	content := l.input[start:l.position]
	l.readChar() // consume closing quote

	switch {
	case strings.Contains(content, "OO"):
		return token.Token{Kind: token.BOOL_TRUE, Lexeme: content, Line: startLine}, nil
	case strings.Contains(content, "DILI"):
		return token.Token{Kind: token.BOOL_FALSE, Lexeme: content, Line: startLine}, nil
	default:
		return token.Token{Kind: token.STRING_LIT, Lexeme: content, Line: startLine}, nil
	}
}

// lexChar implements the `'x'` rule: exactly one code point (§4.1).
func (l *Lexer) lexChar(startLine int) (token.Token, error) {
	l.readChar() // consume opening quote
	if l.ch == '\'' {
		return token.Token{}, bisayaerr.New(bisayaerr.LexerMalformed, startLine, "empty character literal")
	}
	if l.ch == 0 {
		return token.Token{}, bisayaerr.New(bisayaerr.LexerMalformed, startLine, "unterminated character literal")
	}
	start := l.position
	// Advance exactly one UTF-8 code point.
	l.readChar()
	for l.readPosition <= len(l.input) && isUTF8Continuation(l.ch) {
		l.readChar()
	}
	content := l.input[start:l.position]
	if l.ch != '\'' {
		return token.Token{}, bisayaerr.New(bisayaerr.LexerMalformed, startLine, "unterminated character literal")
	}
	l.readChar() // consume closing quote
	return token.Token{Kind: token.CHAR_LIT, Lexeme: content, Line: startLine}, nil
}

func isUTF8Continuation(ch byte) bool {
	return ch&0xC0 == 0x80
}

func (l *Lexer) lexIdentifier(startLine int) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	lexeme := l.input[start:l.position]

	if lexeme == "DILI" {
		// As a keyword used outside a string literal, DILI is the unary
		// boolean operator; its token carries lexeme "NOT" (§4.1).
		return token.Token{Kind: token.NOT, Lexeme: "NOT", Line: startLine}
	}

	kind := token.LookupIdent(lexeme)
	return token.Token{Kind: kind, Lexeme: lexeme, Line: startLine}
}

func (l *Lexer) lexNumber(startLine int) token.Token {
	start := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	if isFloat {
		return token.Token{Kind: token.FLOAT_LIT, Lexeme: lexeme, Line: startLine}
	}
	return token.Token{Kind: token.INT_LIT, Lexeme: lexeme, Line: startLine}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
