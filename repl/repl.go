// Package repl implements an interactive Bisaya++ read-eval-print loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bisayapp/bisaya/evaluator"
	"github.com/bisayapp/bisaya/interp"
	"github.com/bisayapp/bisaya/lexer"
	"github.com/bisayapp/bisaya/parser"
	"github.com/bisayapp/bisaya/token"
)

const prompt = "bisaya> "

// Start reads one program at a time from in, separated by a blank line,
// evaluates it against a persistent environment, and prints diagnostics to
// out. Grounded on the teacher's repl/repl.go loop shape; adapted per
// Bisaya++'s lack of an implicit expression-result echo (there is no
// analogue to irb's "=> value" line — only runtime errors and explicit
// IPAKITA output are observable), so each accumulated SUGOD..KATAPUSAN block
// is run for its side effects alone.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	eval := evaluator.New(out, in)

	for {
		fmt.Fprint(out, prompt)
		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" && len(lines) > 0 {
				break
			}
			lines = append(lines, line)
			if isComplete(lines) {
				break
			}
		}
		if len(lines) == 0 {
			return
		}

		source := strings.Join(lines, "\n")
		tokens, err := interp.Tokenize(source)
		if err != nil {
			fmt.Fprintln(out, interp.FormatError(err, source, false))
			continue
		}
		prog, err := parser.Parse(tokens)
		if err != nil {
			fmt.Fprintln(out, interp.FormatError(err, source, false))
			continue
		}
		if err := eval.Run(prog); err != nil {
			fmt.Fprintln(out, interp.FormatError(err, source, false))
		}
	}
}

// isComplete reports whether the accumulated lines contain a full
// SUGOD..KATAPUSAN program, the point at which the REPL should stop
// prompting for more input and evaluate what it has.
func isComplete(lines []string) bool {
	joined := strings.Join(lines, "\n")
	tokens, err := lexer.Tokenize(joined)
	if err != nil {
		return false
	}
	begin, end := 0, 0
	for _, t := range tokens {
		switch t.Kind {
		case token.BEGIN:
			begin++
		case token.END:
			end++
		}
	}
	return begin == 1 && end == 1
}
