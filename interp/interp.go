// Package interp wires the lexer, parser, and evaluator into the three
// external entry points the CLI and self-test harness drive: tokenize,
// parse, and run (§1 "Out of scope (external collaborators)").
package interp

import (
	"fmt"
	"io"

	"github.com/bisayapp/bisaya/ast"
	"github.com/bisayapp/bisaya/bisayaerr"
	"github.com/bisayapp/bisaya/evaluator"
	"github.com/bisayapp/bisaya/lexer"
	"github.com/bisayapp/bisaya/parser"
	"github.com/bisayapp/bisaya/token"
)

// Tokenize turns source into a token sequence, per the lexer contract
// (§4.1).
func Tokenize(source string) ([]token.Token, error) {
	return lexer.Tokenize(source)
}

// Parse turns a token sequence into a program tree, per the parser contract
// (§4.2).
func Parse(tokens []token.Token) (*ast.Program, error) {
	return parser.Parse(tokens)
}

// Run tokenizes, parses, and evaluates source against in/out, grounded on
// the teacher's cmd/rubygo/main.go runFile: lex, then parse, then check for
// errors before evaluating.
func Run(source string, in io.Reader, out io.Writer) error {
	tokens, err := Tokenize(source)
	if err != nil {
		return err
	}
	prog, err := Parse(tokens)
	if err != nil {
		return err
	}
	eval := evaluator.New(out, in)
	return eval.Run(prog)
}

// FormatError renders err with source context when it carries Bisaya++
// diagnostic information, falling back to its plain Error() text otherwise.
func FormatError(err error, source string, color bool) string {
	if be, ok := err.(*bisayaerr.Error); ok {
		return be.Format(source, color)
	}
	return fmt.Sprintf("Error: %s\n", err)
}
