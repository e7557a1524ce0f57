package object

// entry is a stored (value, declared kind) pair. DeclaredKind never changes
// after declaration; Value's Kind always matches it (§3.3 invariant).
type entry struct {
	Value        Value
	DeclaredKind Kind
}

// Environment is the single flat variable scope for one program run,
// grounded on the teacher's Environment but stripped of outer/self/block/
// class machinery — §3.3 mandates exactly one flat scope per program.
type Environment struct {
	store map[string]entry
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]entry)}
}

// Declare records a new variable with its declared kind and initial value.
// Callers must have already rejected re-declaration and reserved names.
func (e *Environment) Declare(name string, kind Kind, value Value) {
	e.store[name] = entry{Value: value, DeclaredKind: kind}
}

// Get returns the current value of name and whether it is declared.
func (e *Environment) Get(name string) (Value, bool) {
	en, ok := e.store[name]
	if !ok {
		return Value{}, false
	}
	return en.Value, true
}

// DeclaredKind returns the declared kind of name and whether it is declared.
func (e *Environment) DeclaredKind(name string) (Kind, bool) {
	en, ok := e.store[name]
	if !ok {
		return 0, false
	}
	return en.DeclaredKind, true
}

// Set overwrites the value of an already-declared variable, preserving its
// declared kind. Callers must have already coerced value to that kind.
func (e *Environment) Set(name string, value Value) {
	en := e.store[name]
	en.Value = value
	e.store[name] = en
}

// IsDeclared reports whether name has been declared.
func (e *Environment) IsDeclared(name string) bool {
	_, ok := e.store[name]
	return ok
}
