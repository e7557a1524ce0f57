// Package evaluator implements the Bisaya++ tree-walking evaluator.
package evaluator

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/bisayapp/bisaya/ast"
	"github.com/bisayapp/bisaya/bisayaerr"
	"github.com/bisayapp/bisaya/object"
	"github.com/bisayapp/bisaya/token"
)

// Evaluator walks a program tree against a single flat environment and a
// standard-output/standard-input pair, grounded on the teacher's switch-based
// Eval dispatch but built around explicit error returns instead of a
// sentinel *object.Error return value.
type Evaluator struct {
	env     *object.Environment
	out     io.Writer
	scanner *bufio.Scanner
}

// New creates an Evaluator with a fresh environment.
func New(out io.Writer, in io.Reader) *Evaluator {
	return &Evaluator{env: object.NewEnvironment(), out: out, scanner: bufio.NewScanner(in)}
}

// Run executes prog's statements in order, aborting on the first runtime
// error (§4.3 "Failure semantics").
func (e *Evaluator) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := e.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return e.execDeclaration(s)
	case *ast.Assignment:
		_, err := e.applyAssignment(s.Target, s.Operator, s.Value, s.SourceLine)
		return err
	case *ast.Increment:
		_, err := e.applyIncrement(s.Target, s.SourceLine)
		return err
	case *ast.Input:
		return e.execInput(s)
	case *ast.Output:
		return e.execOutput(s)
	case *ast.If:
		return e.execIf(s)
	case *ast.While:
		return e.execWhile(s)
	case *ast.For:
		return e.execFor(s)
	case *ast.Block:
		return e.execBlock(s)
	case *ast.Empty:
		return nil
	default:
		return bisayaerr.New(bisayaerr.TypeMismatch, stmt.Line(), "unhandled statement node")
	}
}

func (e *Evaluator) execBlock(b *ast.Block) error {
	for _, stmt := range b.Statements {
		if err := e.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- declarations ---

func (e *Evaluator) execDeclaration(d *ast.Declaration) error {
	kind, ok := object.KindFromToken(d.DeclaredKind)
	if !ok {
		return bisayaerr.New(bisayaerr.TypeMismatch, d.SourceLine, "unrecognized declared type")
	}
	for _, decl := range d.Declarators {
		value := object.Zero(kind)
		if decl.Initializer != nil {
			v, err := e.evalExpr(decl.Initializer)
			if err != nil {
				return err
			}
			coerced, err := e.coerceOrError(v, kind, decl.Name, decl.NameLine)
			if err != nil {
				return err
			}
			value = coerced
		}
		e.env.Declare(decl.Name, kind, value)
	}
	return nil
}

// --- assignment / increment ---

func (e *Evaluator) applyAssignment(target string, op token.Kind, valueExpr ast.Expression, line int) (object.Value, error) {
	v, err := e.evalExpr(valueExpr)
	if err != nil {
		return object.Value{}, err
	}

	kind, ok := e.env.DeclaredKind(target)
	if !ok {
		return object.Value{}, bisayaerr.New(bisayaerr.UndeclaredVariable, line, "%q was never declared", target)
	}

	if op != token.ASSIGN {
		// Compound assignment (§4.3): evaluate right, fetch variable, apply
		// the arithmetic above, store. Reached from `x += 1`-style
		// statements and assignment expressions.
		current, _ := e.env.Get(target)
		result, err := e.evalArithmeticOrRelational(compoundToArith(op), current, v, line)
		if err != nil {
			return object.Value{}, err
		}
		v = result
	}

	coerced, err := e.coerceOrError(v, kind, target, line)
	if err != nil {
		return object.Value{}, err
	}
	e.env.Set(target, coerced)
	return coerced, nil
}

func compoundToArith(op token.Kind) token.Kind {
	switch op {
	case token.PLUS_ASSIGN:
		return token.PLUS
	case token.MINUS_ASSIGN:
		return token.MINUS
	case token.STAR_ASSIGN:
		return token.STAR
	case token.SLASH_ASSIGN:
		return token.SLASH
	case token.PERCENT_ASSIGN:
		return token.PERCENT
	default:
		return token.ILLEGAL
	}
}

func (e *Evaluator) applyIncrement(name string, line int) (object.Value, error) {
	v, ok := e.env.Get(name)
	if !ok {
		return object.Value{}, bisayaerr.New(bisayaerr.UndeclaredVariable, line, "%q was never declared", name)
	}
	if v.Kind != object.IntKind {
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, line, "++ requires an integer variable, %q is %s", name, v.Kind)
	}
	result, err := evalIntOp(token.PLUS, v.Int, 1, line)
	if err != nil {
		return object.Value{}, err
	}
	e.env.Set(name, result)
	return result, nil
}

// --- input / output ---

func (e *Evaluator) execInput(in *ast.Input) error {
	for _, name := range in.Targets {
		if !e.scanner.Scan() {
			return bisayaerr.New(bisayaerr.InputInvalid, in.SourceLine, "unexpected end of input reading %q", name)
		}
		line := e.scanner.Text()
		if line == "" {
			return bisayaerr.New(bisayaerr.InputInvalid, in.SourceLine, "empty input line for %q", name)
		}
		kind, ok := e.env.DeclaredKind(name)
		if !ok {
			return bisayaerr.New(bisayaerr.UndeclaredVariable, in.SourceLine, "%q was never declared", name)
		}
		coerced, err := e.coerceOrError(object.String(line), kind, name, in.SourceLine)
		if err != nil {
			return err
		}
		e.env.Set(name, coerced)
	}
	return nil
}

func (e *Evaluator) execOutput(o *ast.Output) error {
	// Evaluated right-to-left, then assembled in source order (§8 boundary
	// property #4): for "i++ & ' ' & i" the trailing i must read the
	// pre-increment value, so the later operand has to run before the one
	// that mutates i.
	parts := make([]string, len(o.Expressions))
	for i := len(o.Expressions) - 1; i >= 0; i-- {
		v, err := e.evalExpr(o.Expressions[i])
		if err != nil {
			return err
		}
		parts[i] = v.Display()
	}
	var b strings.Builder
	for _, s := range parts {
		b.WriteString(s)
	}
	_, err := io.WriteString(e.out, b.String())
	return err
}

// --- control flow ---

func (e *Evaluator) execIf(i *ast.If) error {
	cond, err := e.evalExpr(i.Condition)
	if err != nil {
		return err
	}
	if cond.Kind != object.BoolKind {
		return bisayaerr.New(bisayaerr.TypeMismatch, i.SourceLine, "condition must be a boolean expression")
	}
	if cond.Bool {
		return e.execBlock(i.Then)
	}
	if i.Else != nil {
		return e.execStatement(i.Else)
	}
	return nil
}

func (e *Evaluator) execWhile(w *ast.While) error {
	for {
		cond, err := e.evalExpr(w.Condition)
		if err != nil {
			return err
		}
		if cond.Kind != object.BoolKind {
			return bisayaerr.New(bisayaerr.TypeMismatch, w.SourceLine, "condition must be a boolean expression")
		}
		if !cond.Bool {
			return nil
		}
		if err := e.execBlock(w.Body); err != nil {
			return err
		}
	}
}

func (e *Evaluator) execFor(f *ast.For) error {
	if err := e.execStatement(f.Init); err != nil {
		return err
	}
	for {
		cond, err := e.evalExpr(f.Condition)
		if err != nil {
			return err
		}
		// Truthy per GLOSSARY: boolean true, the string "OO", or any
		// non-null non-false value (§4.3 "for").
		if !cond.IsTruthy() {
			return nil
		}
		if err := e.execBlock(f.Body); err != nil {
			return err
		}
		if err := e.execForUpdate(f.Update); err != nil {
			return err
		}
	}
}

// execForUpdate special-cases a trailing postfix `++` on an identifier as
// the increment statement; any other update expression is evaluated for its
// side effects only (§4.3, §9 Open Questions).
func (e *Evaluator) execForUpdate(update ast.Expression) error {
	if u, ok := update.(*ast.Unary); ok && u.Operator == token.INCREMENT && u.Postfix {
		if ident, ok := u.Operand.(*ast.Identifier); ok {
			_, err := e.applyIncrement(ident.Name, u.SourceLine)
			return err
		}
	}
	_, err := e.evalExpr(update)
	return err
}

// --- expressions ---

func (e *Evaluator) evalExpr(expr ast.Expression) (object.Value, error) {
	switch x := expr.(type) {
	case *ast.IntegerLiteral:
		return object.Int(x.Value), nil
	case *ast.FloatLiteral:
		return object.Float(x.Value), nil
	case *ast.CharLiteral:
		return object.Char(x.Value), nil
	case *ast.StringLiteral:
		return object.String(x.Value), nil
	case *ast.BoolLiteral:
		return object.Bool(x.Value), nil
	case *ast.NewlineLiteral:
		return object.String("\n"), nil
	case *ast.Identifier:
		v, ok := e.env.Get(x.Name)
		if !ok {
			return object.Value{}, bisayaerr.New(bisayaerr.UndeclaredVariable, x.SourceLine, "%q was never declared", x.Name)
		}
		return v, nil
	case *ast.Grouping:
		return e.evalExpr(x.Inner)
	case *ast.Unary:
		return e.evalUnary(x)
	case *ast.Binary:
		return e.evalBinary(x)
	case *ast.Logical:
		return e.evalLogical(x)
	case *ast.AssignmentExpr:
		return e.applyAssignment(x.Target, x.Operator, x.Value, x.SourceLine)
	default:
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, expr.Line(), "unhandled expression node")
	}
}

func (e *Evaluator) evalUnary(u *ast.Unary) (object.Value, error) {
	switch u.Operator {
	case token.MINUS, token.PLUS:
		v, err := e.evalExpr(u.Operand)
		if err != nil {
			return object.Value{}, err
		}
		v = coerceNumericOperand(v)
		switch v.Kind {
		case object.IntKind:
			if u.Operator == token.MINUS {
				if v.Int == math.MinInt32 {
					return object.Value{}, bisayaerr.New(bisayaerr.IntegerOverflow, u.SourceLine, "integer overflow negating %d", v.Int)
				}
				return object.Int(-v.Int), nil
			}
			return v, nil
		case object.FloatKind:
			if u.Operator == token.MINUS {
				return object.Float(-v.Float), nil
			}
			return v, nil
		default:
			return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, u.SourceLine, "unary %s requires a numeric operand", u.Operator)
		}
	case token.NOT:
		v, err := e.evalExpr(u.Operand)
		if err != nil {
			return object.Value{}, err
		}
		if v.Kind != object.BoolKind {
			return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, u.SourceLine, "NOT requires a boolean operand")
		}
		return object.Bool(!v.Bool), nil
	case token.INCREMENT:
		ident, ok := u.Operand.(*ast.Identifier)
		if !ok {
			return object.Value{}, bisayaerr.New(bisayaerr.InvalidAssignmentTarget, u.SourceLine, "++ requires a variable operand")
		}
		// Postfix ++ yields the incremented value at its use site (§8
		// boundary behavior): increment happens before the value is read.
		return e.applyIncrement(ident.Name, u.SourceLine)
	default:
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, u.SourceLine, "unsupported unary operator %s", u.Operator)
	}
}

func (e *Evaluator) evalLogical(l *ast.Logical) (object.Value, error) {
	left, err := e.evalExpr(l.Left)
	if err != nil {
		return object.Value{}, err
	}
	right, err := e.evalExpr(l.Right)
	if err != nil {
		return object.Value{}, err
	}
	if left.Kind != object.BoolKind || right.Kind != object.BoolKind {
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, l.SourceLine, "logical operator requires boolean operands")
	}
	var result bool
	if l.Operator == token.AND {
		result = left.Bool && right.Bool
	} else {
		result = left.Bool || right.Bool
	}
	return object.Bool(result), nil
}

func (e *Evaluator) evalBinary(b *ast.Binary) (object.Value, error) {
	left, err := e.evalExpr(b.Left)
	if err != nil {
		return object.Value{}, err
	}
	right, err := e.evalExpr(b.Right)
	if err != nil {
		return object.Value{}, err
	}
	return e.evalArithmeticOrRelational(b.Operator, left, right, b.SourceLine)
}

// coerceNumericOperand replaces a string operand that parses as a number
// with that number (§4.3 "Arithmetic/relational").
func coerceNumericOperand(v object.Value) object.Value {
	if v.Kind == object.StringKind {
		if n, ok := object.ParseNumeric(v.String); ok {
			return n
		}
	}
	return v
}

func (e *Evaluator) evalArithmeticOrRelational(op token.Kind, left, right object.Value, line int) (object.Value, error) {
	l := coerceNumericOperand(left)
	r := coerceNumericOperand(right)

	if op == token.EQUAL || op == token.NOT_EQUAL {
		return evalEquality(op, l, r, line)
	}

	if l.Kind == object.FloatKind && r.Kind == object.IntKind {
		r = object.Float(float32(r.Int))
	} else if r.Kind == object.FloatKind && l.Kind == object.IntKind {
		l = object.Float(float32(l.Int))
	}

	if l.Kind == object.FloatKind && r.Kind == object.FloatKind {
		return evalFloatOp(op, l.Float, r.Float, line)
	}
	if l.Kind == object.IntKind && r.Kind == object.IntKind {
		return evalIntOp(op, l.Int, r.Int, line)
	}
	return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, line, "operator requires numeric operands, got %s and %s", l.Kind, r.Kind)
}

func evalEquality(op token.Kind, l, r object.Value, line int) (object.Value, error) {
	var eq bool
	switch {
	case l.Kind == object.IntKind && r.Kind == object.IntKind:
		eq = l.Int == r.Int
	case l.Kind == object.FloatKind && r.Kind == object.FloatKind:
		eq = l.Float == r.Float
	case l.Kind == object.IntKind && r.Kind == object.FloatKind:
		eq = float32(l.Int) == r.Float
	case l.Kind == object.FloatKind && r.Kind == object.IntKind:
		eq = l.Float == float32(r.Int)
	case l.Kind == object.CharKind && r.Kind == object.CharKind:
		eq = l.Char == r.Char
	case l.Kind == object.StringKind && r.Kind == object.StringKind:
		eq = l.String == r.String
	case l.Kind == object.BoolKind && r.Kind == object.BoolKind:
		eq = l.Bool == r.Bool
	default:
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, line, "cannot compare %s and %s", l.Kind, r.Kind)
	}
	if op == token.NOT_EQUAL {
		eq = !eq
	}
	return object.Bool(eq), nil
}

func evalFloatOp(op token.Kind, l, r float32, line int) (object.Value, error) {
	switch op {
	case token.PLUS:
		return object.Float(l + r), nil
	case token.MINUS:
		return object.Float(l - r), nil
	case token.STAR:
		return object.Float(l * r), nil
	case token.SLASH:
		if r == 0 {
			return object.Value{}, bisayaerr.New(bisayaerr.DivisionByZero, line, "division by zero")
		}
		return object.Float(l / r), nil
	case token.PERCENT:
		if r == 0 {
			return object.Value{}, bisayaerr.New(bisayaerr.DivisionByZero, line, "division by zero")
		}
		return object.Float(float32(math.Mod(float64(l), float64(r)))), nil
	case token.GREATER:
		return object.Bool(l > r), nil
	case token.LESS:
		return object.Bool(l < r), nil
	case token.GREATER_EQUAL:
		return object.Bool(l >= r), nil
	case token.LESS_EQUAL:
		return object.Bool(l <= r), nil
	default:
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, line, "unsupported float operator")
	}
}

func evalIntOp(op token.Kind, l, r int32, line int) (object.Value, error) {
	switch op {
	case token.PLUS:
		sum := int64(l) + int64(r)
		if sum > math.MaxInt32 || sum < math.MinInt32 {
			return object.Value{}, bisayaerr.New(bisayaerr.IntegerOverflow, line, "integer overflow in addition")
		}
		return object.Int(int32(sum)), nil
	case token.MINUS:
		diff := int64(l) - int64(r)
		if diff > math.MaxInt32 || diff < math.MinInt32 {
			return object.Value{}, bisayaerr.New(bisayaerr.IntegerOverflow, line, "integer overflow in subtraction")
		}
		return object.Int(int32(diff)), nil
	case token.STAR:
		prod := int64(l) * int64(r)
		if prod > math.MaxInt32 || prod < math.MinInt32 {
			return object.Value{}, bisayaerr.New(bisayaerr.IntegerOverflow, line, "integer overflow in multiplication")
		}
		return object.Int(int32(prod)), nil
	case token.SLASH:
		if r == 0 {
			return object.Value{}, bisayaerr.New(bisayaerr.DivisionByZero, line, "division by zero")
		}
		return object.Int(l / r), nil
	case token.PERCENT:
		if r == 0 {
			return object.Value{}, bisayaerr.New(bisayaerr.DivisionByZero, line, "division by zero")
		}
		return object.Int(l % r), nil
	case token.GREATER:
		return object.Bool(l > r), nil
	case token.LESS:
		return object.Bool(l < r), nil
	case token.GREATER_EQUAL:
		return object.Bool(l >= r), nil
	case token.LESS_EQUAL:
		return object.Bool(l <= r), nil
	default:
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, line, "unsupported integer operator")
	}
}

// --- coercion ---

func (e *Evaluator) coerceOrError(v object.Value, kind object.Kind, varName string, line int) (object.Value, error) {
	c, ok := coerce(v, kind)
	if !ok {
		return object.Value{}, bisayaerr.New(bisayaerr.TypeMismatch, line, "cannot assign %s (%s) to %q declared as %s", v.Display(), v.Kind, varName, kind)
	}
	return c, nil
}

// coerce implements the assignment coercion rule (§4.3 "Values and
// coercion"): exact-kind match always succeeds; numeric promotion and
// string-to-declared-kind parsing are the only other accepted paths.
func coerce(v object.Value, kind object.Kind) (object.Value, bool) {
	if v.Kind == kind {
		return v, true
	}
	switch kind {
	case object.IntKind:
		switch v.Kind {
		case object.FloatKind:
			if v.Float == float32(int32(v.Float)) {
				return object.Int(int32(v.Float)), true
			}
		case object.StringKind:
			if n, ok := object.ParseNumeric(v.String); ok && n.Kind == object.IntKind {
				return n, true
			}
		}
	case object.FloatKind:
		switch v.Kind {
		case object.IntKind:
			return object.Float(float32(v.Int)), true
		case object.StringKind:
			if n, ok := object.ParseNumeric(v.String); ok {
				if n.Kind == object.IntKind {
					return object.Float(float32(n.Int)), true
				}
				return n, true
			}
		}
	case object.CharKind:
		if v.Kind == object.StringKind {
			r := []rune(v.String)
			if len(r) == 1 {
				return object.Char(r[0]), true
			}
		}
	case object.BoolKind:
		if v.Kind == object.StringKind {
			switch v.String {
			case "OO":
				return object.Bool(true), true
			case "DILI":
				return object.Bool(false), true
			}
		}
	}
	return object.Value{}, false
}
