// Package parser implements the Bisaya++ recursive-descent parser.
package parser

import (
	"strconv"

	"github.com/bisayapp/bisaya/ast"
	"github.com/bisayapp/bisaya/bisayaerr"
	"github.com/bisayapp/bisaya/token"
)

// Parser consumes a token sequence and produces a program tree, threading a
// cursor and an inside-conditional flag the way the grammar's restrictions
// demand, grounded on the teacher's Parser struct but with a declared-names
// symbol table in place of class/method scoping.
type Parser struct {
	tokens   []token.Token
	pos      int
	declared map[string]token.Kind

	insideConditional bool
}

// New creates a Parser over tokens, which must end in an EOF token.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []token.Token{{Kind: token.EOF}}
	}
	return &Parser{tokens: tokens, declared: make(map[string]token.Kind)}
}

// Parse runs the pre-pass validation and recursive descent, returning a
// program tree or the first parse error encountered.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := New(tokens)
	return p.ParseProgram()
}

// ParseProgram is the parser's single entry point.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if err := validateStructure(p.tokens); err != nil {
		return nil, err
	}
	for p.cur().Kind != token.BEGIN {
		p.advance()
	}
	p.advance() // consume SUGOD

	stmts, err := p.parseStatements(func() bool { return p.check(token.END) })
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

// validateStructure enforces "exactly one BEGIN and one END, nothing but
// newlines outside them" (§4.2 pre-pass validation).
func validateStructure(tokens []token.Token) error {
	beginIdx, endIdx := -1, -1
	beginCount, endCount := 0, 0
	for i, t := range tokens {
		switch t.Kind {
		case token.BEGIN:
			beginCount++
			if beginIdx == -1 {
				beginIdx = i
			}
		case token.END:
			endCount++
			endIdx = i
		}
	}
	line := 1
	if len(tokens) > 0 {
		line = tokens[0].Line
	}
	if beginCount != 1 {
		return bisayaerr.New(bisayaerr.StructureInvalid, line, "expected exactly one SUGOD marker, found %d", beginCount)
	}
	if endCount != 1 {
		return bisayaerr.New(bisayaerr.StructureInvalid, line, "expected exactly one KATAPUSAN marker, found %d", endCount)
	}
	if beginIdx > endIdx {
		return bisayaerr.New(bisayaerr.StructureInvalid, tokens[beginIdx].Line, "SUGOD must precede KATAPUSAN")
	}
	for i, t := range tokens {
		if i < beginIdx || i > endIdx {
			if t.Kind != token.NEWLINE && t.Kind != token.EOF {
				return bisayaerr.New(bisayaerr.StructureInvalid, t.Line, "unexpected token %q outside SUGOD/KATAPUSAN", t.Lexeme)
			}
		}
	}
	return nil
}

// --- cursor helpers ---

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) peekKind(n int) token.Kind { return p.peekAt(n).Kind }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k token.Kind, msg string) (token.Token, error) {
	if !p.check(k) {
		return token.Token{}, bisayaerr.New(bisayaerr.ExpectedToken, p.cur().Line, "%s, found %q", msg, p.cur().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) isDeclared(name string) bool {
	_, ok := p.declared[name]
	return ok
}

func isTypeKeyword(k token.Kind) bool {
	switch k {
	case token.INT_TYPE, token.FLOAT_TYPE, token.CHAR_TYPE, token.BOOL_TYPE, token.STRING_TYPE:
		return true
	}
	return false
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		return true
	}
	return false
}

// --- statement lists ---

// parseStatements parses statements until isEnd reports true, requiring a
// NEWLINE (or the end condition) after each one.
func (p *Parser) parseStatements(isEnd func() bool) ([]ast.Statement, error) {
	var stmts []ast.Statement
	p.skipNewlines()
	for !isEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if !p.check(token.NEWLINE) && !isEnd() {
			return nil, bisayaerr.New(bisayaerr.ExpectedToken, p.cur().Line, "expected newline after statement, found %q", p.cur().Lexeme)
		}
		p.skipNewlines()
	}
	return stmts, nil
}

// parsePundokBlock parses `PUNDOK { ... }`.
func (p *Parser) parsePundokBlock() (*ast.Block, error) {
	if _, err := p.expect(token.BLOCK_KW, "expected PUNDOK"); err != nil {
		return nil, err
	}
	line := p.cur().Line
	if _, err := p.expect(token.BLOCK_START, "expected '{' to start PUNDOK block"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements(func() bool { return p.check(token.BLOCK_END) })
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BLOCK_END, "expected '}' to close PUNDOK block"); err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		// inside-if-block: tolerate an empty body (§4.2 "inside-if-block" flag).
		stmts = append(stmts, &ast.Empty{SourceLine: line})
	}
	return &ast.Block{SourceLine: line, Statements: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.MUGNA:
		return p.parseDeclaration()
	case token.KUNG:
		p.advance()
		return p.parseIfBody(tok.Line)
	case token.SAMTANG:
		return p.parseWhile()
	case token.ALANG:
		return p.parseFor()
	case token.IPAKITA:
		return p.parseOutput()
	case token.DAWAT:
		return p.parseInput()
	case token.IDENT:
		if token.IsReserved(tok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.ReservedKeyword, tok.Line, "%q is a reserved keyword", tok.Lexeme)
		}
		if p.peekKind(1) == token.INCREMENT {
			if !p.isDeclared(tok.Lexeme) {
				return nil, bisayaerr.New(bisayaerr.UndeclaredVariable, tok.Line, "%q was never declared", tok.Lexeme)
			}
			p.advance() // ident
			p.advance() // ++
			return &ast.Increment{SourceLine: tok.Line, Target: tok.Lexeme}, nil
		}
		return p.parseAssignmentStatement()
	default:
		return nil, bisayaerr.New(bisayaerr.ExpectedToken, tok.Line, "unexpected token %q, expected a statement", tok.Lexeme)
	}
}

// --- declarations ---

func (p *Parser) parseDeclaration() (*ast.Declaration, error) {
	line := p.cur().Line
	p.advance() // MUGNA

	typeTok := p.cur()
	if !isTypeKeyword(typeTok.Kind) {
		return nil, bisayaerr.New(bisayaerr.ExpectedToken, typeTok.Line, "expected a type keyword after MUGNA, found %q", typeTok.Lexeme)
	}
	p.advance()

	var decls []ast.Declarator
	for {
		nameTok, err := p.expect(token.IDENT, "expected variable name")
		if err != nil {
			return nil, err
		}
		if token.IsReserved(nameTok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.ReservedKeyword, nameTok.Line, "%q is a reserved keyword", nameTok.Lexeme)
		}
		if p.isDeclared(nameTok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.StructureInvalid, nameTok.Line, "%q is already declared", nameTok.Lexeme)
		}

		var initExpr ast.Expression
		if p.check(token.ASSIGN) {
			if typeTok.Kind == token.BOOL_TYPE {
				next := p.peekAt(1)
				if next.Kind == token.BOOL_TRUE && next.Lexeme != "OO" {
					return nil, bisayaerr.New(bisayaerr.TypeMismatch, next.Line, "boolean initializer must be exactly \"OO\" or \"DILI\", found %q", next.Lexeme)
				}
				if next.Kind == token.BOOL_FALSE && next.Lexeme != "DILI" {
					return nil, bisayaerr.New(bisayaerr.TypeMismatch, next.Line, "boolean initializer must be exactly \"OO\" or \"DILI\", found %q", next.Lexeme)
				}
			}
			p.advance() // =
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			initExpr = e
		}

		decls = append(decls, ast.Declarator{Name: nameTok.Lexeme, NameLine: nameTok.Line, Initializer: initExpr})
		p.declared[nameTok.Lexeme] = typeTok.Kind

		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return &ast.Declaration{SourceLine: line, DeclaredKind: typeTok.Kind, Declarators: decls}, nil
}

// --- assignment / increment ---

func (p *Parser) parseAssignmentStatement() (*ast.Assignment, error) {
	nameTok := p.cur()
	if token.IsReserved(nameTok.Lexeme) {
		return nil, bisayaerr.New(bisayaerr.ReservedKeyword, nameTok.Line, "%q is a reserved keyword", nameTok.Lexeme)
	}
	if !p.isDeclared(nameTok.Lexeme) {
		return nil, bisayaerr.New(bisayaerr.UndeclaredVariable, nameTok.Line, "%q was never declared", nameTok.Lexeme)
	}
	p.advance() // IDENT

	opTok := p.cur()
	if !isAssignOp(opTok.Kind) {
		return nil, bisayaerr.New(bisayaerr.ExpectedToken, opTok.Line, "expected assignment operator after %q", nameTok.Lexeme)
	}
	p.advance()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{SourceLine: nameTok.Line, Target: nameTok.Lexeme, Operator: opTok.Kind, Value: value}, nil
}

// --- output / input ---

func (p *Parser) parseOutput() (*ast.Output, error) {
	line := p.cur().Line
	p.advance() // IPAKITA
	if _, err := p.expect(token.COLON, "expected ':' after IPAKITA"); err != nil {
		return nil, err
	}

	var exprs []ast.Expression
	for {
		// A '$' sentinel never goes through CONCAT: the lexer swallows any
		// '&' adjacent to it, so "a" & $ & "b" reaches the parser as
		// STRING_LIT, NEWLINE("$"), STRING_LIT with no CONCAT tokens at all.
		// It stands in for the '&' on both sides, so it always continues
		// the argument list on its own.
		if p.isDollarNewline() {
			exprs = append(exprs, &ast.NewlineLiteral{SourceLine: p.cur().Line})
			p.advance()
			continue
		}

		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)

		if p.check(token.CONCAT) {
			p.advance()
			continue
		}
		if p.isDollarNewline() {
			continue
		}
		break
	}
	return &ast.Output{SourceLine: line, Expressions: exprs}, nil
}

func (p *Parser) isDollarNewline() bool {
	return p.check(token.NEWLINE) && p.cur().Lexeme == "$"
}

func (p *Parser) parseInput() (*ast.Input, error) {
	line := p.cur().Line
	p.advance() // DAWAT
	if _, err := p.expect(token.COLON, "expected ':' after DAWAT"); err != nil {
		return nil, err
	}

	var targets []string
	for {
		nameTok, err := p.expect(token.IDENT, "expected variable name")
		if err != nil {
			return nil, err
		}
		if token.IsReserved(nameTok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.ReservedKeyword, nameTok.Line, "%q is a reserved keyword", nameTok.Lexeme)
		}
		if !p.isDeclared(nameTok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.UndeclaredVariable, nameTok.Line, "%q was never declared", nameTok.Lexeme)
		}
		targets = append(targets, nameTok.Lexeme)
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return &ast.Input{SourceLine: line, Targets: targets}, nil
}

// --- control flow ---

func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(token.LPAREN, "expected '(' to start condition"); err != nil {
		return nil, err
	}
	p.insideConditional = true
	cond, err := p.parseExpression()
	p.insideConditional = false
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')' to close condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIfBody parses the condition/then/else-chain for a KUNG already past
// its leading keyword; recursion handles KUNG DILI (else-if) chains.
func (p *Parser) parseIfBody(line int) (*ast.If, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parsePundokBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{SourceLine: line, Condition: cond, Then: then}

	save := p.pos
	p.skipNewlines()
	if p.check(token.KUNG) && (p.peekKind(1) == token.NOT || p.peekKind(1) == token.WALA) {
		kungLine := p.cur().Line
		p.advance() // KUNG
		if p.check(token.NOT) {
			p.advance() // DILI (lexed as NOT)
			elseIf, err := p.parseIfBody(kungLine)
			if err != nil {
				return nil, err
			}
			node.Else = elseIf
			return node, nil
		}
		p.advance() // WALA
		elseBlock, err := p.parsePundokBlock()
		if err != nil {
			return nil, err
		}
		node.Else = elseBlock
		return node, nil
	}
	p.pos = save
	return node, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	line := p.cur().Line
	p.advance() // SAMTANG
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parsePundokBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{SourceLine: line, Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ast.For, error) {
	line := p.cur().Line
	p.advance() // ALANG
	if _, err := p.expect(token.SA, "expected SA after ALANG"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "expected '(' after ALANG SA"); err != nil {
		return nil, err
	}
	initStmt, err := p.parseAssignmentStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA, "expected ',' after for-loop initializer"); err != nil {
		return nil, err
	}
	p.insideConditional = true
	cond, err := p.parseExpression()
	p.insideConditional = false
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA, "expected ',' after for-loop condition"); err != nil {
		return nil, err
	}
	update, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')' to close for-loop header"); err != nil {
		return nil, err
	}
	body, err := p.parsePundokBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{SourceLine: line, Init: initStmt, Condition: cond, Update: update, Body: body}, nil
}

// --- expressions (precedence, low to high) ---

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if isAssignOp(p.cur().Kind) {
		opTok := p.cur()
		if p.insideConditional {
			return nil, bisayaerr.New(bisayaerr.ExpectedToken, opTok.Line, "assignment is not allowed inside a condition")
		}
		ident, ok := left.(*ast.Identifier)
		if !ok {
			return nil, bisayaerr.New(bisayaerr.InvalidAssignmentTarget, opTok.Line, "left-hand side of assignment must be a variable")
		}
		p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpr{SourceLine: ident.SourceLine, Target: ident.Name, Operator: opTok.Kind, Value: value}, nil
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{SourceLine: opTok.Line, Operator: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		opTok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{SourceLine: opTok.Line, Operator: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.EQUAL) || p.check(token.NOT_EQUAL) {
		opTok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{SourceLine: opTok.Line, Operator: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.GREATER) || p.check(token.LESS) || p.check(token.GREATER_EQUAL) || p.check(token.LESS_EQUAL) {
		opTok := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{SourceLine: opTok.Line, Operator: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

// parseTerm deliberately excludes '&': concatenation is only legal inside an
// IPAKITA argument list, where parseOutput consumes it directly as the
// separator between display operands (§4.2 "inside-display" restriction).
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{SourceLine: opTok.Line, Operator: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		opTok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{SourceLine: opTok.Line, Operator: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.check(token.MINUS) || p.check(token.PLUS) || p.check(token.NOT) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{SourceLine: opTok.Line, Operator: opTok.Kind, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.INT_LIT:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
		if err != nil {
			return nil, bisayaerr.New(bisayaerr.TypeMismatch, tok.Line, "invalid integer literal %q", tok.Lexeme)
		}
		return &ast.IntegerLiteral{SourceLine: tok.Line, Value: int32(v)}, nil
	case token.FLOAT_LIT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 32)
		if err != nil {
			return nil, bisayaerr.New(bisayaerr.TypeMismatch, tok.Line, "invalid float literal %q", tok.Lexeme)
		}
		return &ast.FloatLiteral{SourceLine: tok.Line, Value: float32(v)}, nil
	case token.CHAR_LIT:
		p.advance()
		r := []rune(tok.Lexeme)
		return &ast.CharLiteral{SourceLine: tok.Line, Value: r[0]}, nil
	case token.STRING_LIT:
		p.advance()
		return &ast.StringLiteral{SourceLine: tok.Line, Value: tok.Lexeme}, nil
	case token.BOOL_TRUE:
		p.advance()
		return &ast.BoolLiteral{SourceLine: tok.Line, Value: true}, nil
	case token.BOOL_FALSE:
		p.advance()
		return &ast.BoolLiteral{SourceLine: tok.Line, Value: false}, nil
	case token.IDENT:
		if token.IsReserved(tok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.ReservedKeyword, tok.Line, "%q is a reserved keyword", tok.Lexeme)
		}
		if !p.isDeclared(tok.Lexeme) {
			return nil, bisayaerr.New(bisayaerr.UndeclaredVariable, tok.Line, "%q was never declared", tok.Lexeme)
		}
		p.advance()
		ident := &ast.Identifier{SourceLine: tok.Line, Name: tok.Lexeme}
		if p.check(token.INCREMENT) {
			incTok := p.advance()
			return &ast.Unary{SourceLine: incTok.Line, Operator: token.INCREMENT, Operand: ident, Postfix: true}, nil
		}
		return ident, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "expected ')' to close grouping"); err != nil {
			return nil, err
		}
		return &ast.Grouping{SourceLine: tok.Line, Inner: inner}, nil
	default:
		return nil, bisayaerr.New(bisayaerr.ExpectedToken, tok.Line, "unexpected token %q", tok.Lexeme)
	}
}
