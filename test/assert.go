package test

import (
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/cloakzk/zkcircuit/assembler"
	"github.com/cloakzk/zkcircuit/tracker"
)

type Assert struct {
	t *testing.T
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

func (a *Assert) ProveSucceeded(p *assembler.Program, witness []*big.Int) {
	a.t.Helper()
	ok, err := EvalProgram(p, witness)
	if err != nil {
		a.t.Fatal(err)
	}
	if !ok {
		a.t.Fatal("should succeed")
	}
}

func (a *Assert) ProveFailed(p *assembler.Program, witness []*big.Int) {
	a.t.Helper()
	ok, err := EvalProgram(p, witness)
	if err != nil {
		a.t.Fatal(err)
	}
	if ok {
		a.t.Fatal("should fail")
	}
}

// LedgerConsistent checks that parameters and arguments are in lockstep and
// that every public param is a circuit parameter.
func (a *Assert) LedgerConsistent(tr *tracker.Tracker) {
	a.t.Helper()
	params := tr.Parameters()
	if n := len(tr.Arguments()); n != len(params) {
		a.t.Fatalf("%d parameters but %d arguments", len(params), n)
	}
	names := make(map[string]bool, len(params))
	for _, p := range params {
		names[p.Name] = true
	}
	for _, pp := range tr.PublicParams() {
		if !names[pp.Name] {
			a.t.Fatalf("public param %s is not a parameter", pp.Name)
		}
	}
	if err := tr.Validate(); err != nil {
		a.t.Fatal(err)
	}
}

// SingleHashGuard checks that the source of p contains exactly one input hash
// guard, that it hashes every element of every public param once in
// registration order and that checkHash is declared for that many inputs.
func (a *Assert) SingleHashGuard(p *assembler.Program) {
	a.t.Helper()
	var guards []string
	inMain := false
	for _, l := range strings.Split(p.Source(), "\n") {
		if strings.HasPrefix(l, "def main(") {
			inMain = true
			continue
		}
		if inMain && strings.Contains(l, "checkHash(") {
			guards = append(guards, strings.TrimSpace(l))
		}
	}
	if len(guards) != 1 {
		a.t.Fatalf("expected one hash guard, found %d", len(guards))
	}
	want := "1 == checkHash([" + strings.Join(p.HashInputs(), ", ") + "], [" +
		assembler.InputHash0 + ", " + assembler.InputHash1 + "])"
	if guards[0] != want {
		a.t.Fatalf("hash guard is %q, expected %q", guards[0], want)
	}
	decl := "def checkHash(field[" + strconv.Itoa(len(p.HashInputs())) + "] inputs"
	if !strings.Contains(p.Source(), decl) {
		a.t.Fatalf("source does not declare %q", decl)
	}
}
