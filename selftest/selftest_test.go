package selftest

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every entry in the fixture table end to end. Fixtures
// that name an exact expected output are compared directly; the rest are
// locked down with a go-snaps golden snapshot.
func TestFixtures(t *testing.T) {
	fixtures, err := Load()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatal("fixture table is empty")
	}

	for _, f := range fixtures {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			actual, err := Run(f)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", f.Name, err)
			}

			if f.Expected != nil {
				if actual != *f.Expected {
					t.Errorf("%s: output mismatch\nwant: %q\ngot:  %q", f.Name, *f.Expected, actual)
				}
				return
			}

			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", f.Name), actual)
		})
	}
}
