// Package selftest loads the fixed fixture table used to exercise the
// lexer, parser, and evaluator together end to end, and runs each fixture
// through the interpreter pipeline.
package selftest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bisayapp/bisaya/interp"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Fixture is one entry of the fixture table: a named Bisaya++ program and
// either an exact expected output or (if Expected is nil) an instruction to
// fall back to a golden snapshot.
type Fixture struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Source      string  `yaml:"source"`
	Expected    *string `yaml:"expected"`
}

// Load unmarshals the embedded fixture table.
func Load() ([]Fixture, error) {
	var fixtures []Fixture
	if err := yaml.Unmarshal(fixturesYAML, &fixtures); err != nil {
		return nil, fmt.Errorf("selftest: parsing fixtures.yaml: %w", err)
	}
	return fixtures, nil
}

// Run executes a fixture's source against a fresh environment and returns
// everything it wrote to standard output. DAWAT is never exercised by the
// fixture table, so stdin is an empty reader.
func Run(f Fixture) (string, error) {
	var out bytes.Buffer
	err := interp.Run(f.Source, strings.NewReader(""), &out)
	return out.String(), err
}
