package zkcircuit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloakzk/zkcircuit/assembler"
	"github.com/cloakzk/zkcircuit/integration"
	"github.com/cloakzk/zkcircuit/tracker"
	"github.com/cloakzk/zkcircuit/translator"
	"github.com/consensys/gnark/logger"
)

// ErrNoCircuit is returned when building a function that needs no proof.
var ErrNoCircuit = errors.New("no circuit needed")

type CompileResult struct {
	name     string
	tracker  *tracker.Tracker
	program  *assembler.Program
	host     []string
	decls    []string
	usesKeys bool
}

// Compile runs define against a fresh translator and assembles the circuit
// of the function called name.
func Compile(name string, define func(api API) error, opts ...translator.Option) (*CompileResult, error) {
	tr := tracker.New()
	tl := translator.New(tr, opts...)
	if err := define(tl); err != nil {
		return nil, err
	}
	program, _ := assembler.Assemble(tr)

	res := &CompileResult{
		name:     name,
		tracker:  tr,
		program:  program,
		host:     tl.HostStatements(),
		decls:    tl.HostDeclarations(),
		usesKeys: tl.UsesKeyRegistry(),
	}
	log := logger.Logger()
	log.Info().
		Str("name", name).
		Bool("needsProof", res.NeedsProof()).
		Int("nbProofArguments", len(tr.ProofArguments())).
		Int("nbHostStatements", len(res.host)).
		Msg("compiled")
	return res, nil
}

func (c *CompileResult) Name() string {
	return c.name
}

// NeedsProof reports whether any value crossed the circuit boundary.
func (c *CompileResult) NeedsProof() bool {
	return c.program != nil
}

// Program returns the assembled circuit, nil if no proof is needed.
func (c *CompileResult) Program() *assembler.Program {
	return c.program
}

func (c *CompileResult) Source() string {
	if c.program == nil {
		return ""
	}
	return c.program.Source()
}

// HostStatements are the host statements preparing the circuit arguments.
func (c *CompileResult) HostStatements() []string {
	return append([]string(nil), c.host...)
}

func (c *CompileResult) HostDeclarations() []string {
	return append([]string(nil), c.decls...)
}

func (c *CompileResult) UsesKeyRegistry() bool {
	return c.usesKeys
}

func (c *CompileResult) Arguments() []tracker.Argument {
	return c.tracker.Arguments()
}

func (c *CompileResult) PublicParams() []tracker.PublicParam {
	return c.tracker.PublicParams()
}

// WitnessLayout tells which values the prover must supply, in order.
func (c *CompileResult) WitnessLayout() []tracker.Slot {
	return c.tracker.WitnessLayout()
}

// Build hands the circuit to b.
func (c *CompileResult) Build(ctx context.Context, b Builder) (*integration.Result, error) {
	if c.program == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoCircuit, c.name)
	}
	return b.Build(ctx, c.name, c.program.Source())
}

// Print writes the witness layout followed by the circuit source.
func (c *CompileResult) Print(w io.Writer) {
	for _, s := range c.WitnessLayout() {
		fmt.Fprintf(w, "%d: %s", s.Offset, s.Argument)
		for _, p := range s.Params {
			fmt.Fprintf(w, " %s", p)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, c.Source())
}
