// Package tracker accumulates the metadata of one circuit while its
// expressions are translated: circuit parameters, the arguments supplying
// them, the public params bound by the input hash, the proof-argument
// descriptors fixing the witness order, parameter documentation and the
// circuit statements themselves.
//
// A Tracker is owned by exactly one translation and is not safe for
// concurrent use. Its operations never fail: a violated contract is a bug in
// the caller and panics with an error wrapping ErrLedgerMisuse.
package tracker

import (
	"fmt"
	"slices"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/ir"
)

// ArgumentKind tells who supplies the value of a circuit parameter.
type ArgumentKind int

const (
	// HostArgument values are passed by the calling contract as public inputs.
	HostArgument ArgumentKind = iota
	// WitnessArgument values are only known to the prover.
	WitnessArgument
)

func (k ArgumentKind) String() string {
	if k == HostArgument {
		return "host"
	}
	return "witness"
}

// Argument is the circuit call argument matching one circuit parameter.
type Argument struct {
	Kind ArgumentKind
	// Expr is the host-language expression passing the value; empty for
	// witness arguments.
	Expr string
}

// PublicParam is a circuit parameter that is also a public input of the
// verifier.
type PublicParam struct {
	Name string
	// Source is the annotated expression the value stems from, nil for keys.
	Source expr.Expression
}

// Doc documents one circuit parameter.
type Doc struct {
	Name string
	Text string
}

func (d Doc) String() string {
	return d.Name + ": " + d.Text
}

// Slot is one entry of the witness layout.
type Slot struct {
	Argument ProofArgument
	Params   []ir.Parameter
	// Offset is the position of the first witness value of the slot.
	Offset int
}

type Tracker struct {
	parameters     []ir.Parameter
	arguments      []Argument
	publicParams   []PublicParam
	proofArguments []ProofArgument
	statements     []ir.Statement
	docs           []Doc

	// parameters registered since the last proof argument
	pending int
	names   names
}

func New() *Tracker {
	return &Tracker{}
}

// Fresh returns a name of the given kind that was never returned before by
// t, together with its index.
func (t *Tracker) Fresh(k NameKind) (string, int) {
	if k < 0 || k >= nbNameKinds {
		misuse("unknown name kind %d", int(k))
	}
	return t.names.fresh(k)
}

// Allocated returns how many names of kind k were handed out.
func (t *Tracker) Allocated(k NameKind) int {
	return t.names.count(k)
}

// AddPublicParam registers p as a circuit parameter passed by the host
// through hostExpr, and as a public param originating from source.
func (t *Tracker) AddPublicParam(p ir.Parameter, hostExpr string, source expr.Expression, doc string) {
	if hostExpr == "" {
		misuse("public param %s has no host argument", p.Name)
	}
	t.addParameter(p, Argument{Kind: HostArgument, Expr: hostExpr}, doc)
	t.publicParams = append(t.publicParams, PublicParam{Name: p.Name, Source: source})
}

// AddSecretParam registers p as a circuit parameter known only to the prover.
func (t *Tracker) AddSecretParam(p ir.Parameter, doc string) {
	t.addParameter(p, Argument{Kind: WitnessArgument}, doc)
}

func (t *Tracker) addParameter(p ir.Parameter, arg Argument, doc string) {
	if p.Width <= 0 {
		misuse("parameter %s has width %d", p.Name, p.Width)
	}
	if slices.ContainsFunc(t.parameters, func(q ir.Parameter) bool { return q.Name == p.Name }) {
		misuse("parameter %s is registered twice", p.Name)
	}
	t.parameters = append(t.parameters, p)
	t.arguments = append(t.arguments, arg)
	t.docs = append(t.docs, Doc{Name: p.Name, Text: doc})
	t.pending++
}

// AddStatement appends circuit statements in emission order.
func (t *Tracker) AddStatement(s ...ir.Statement) {
	t.statements = append(t.statements, s...)
}

// AddProofArgument appends a descriptor covering every parameter registered
// since the previous descriptor.
func (t *Tracker) AddProofArgument(a ProofArgument) {
	if t.pending == 0 {
		misuse("%s covers no parameter", a)
	}
	covered := slices.Clone(t.parameters[len(t.parameters)-t.pending:])
	t.proofArguments = append(t.proofArguments, a.withParams(covered))
	t.pending = 0
}

func (t *Tracker) Parameters() []ir.Parameter {
	return slices.Clone(t.parameters)
}

func (t *Tracker) Arguments() []Argument {
	return slices.Clone(t.arguments)
}

// PublicParams returns the public params in registration order, which is
// the order of the input hash preimage.
func (t *Tracker) PublicParams() []PublicParam {
	return slices.Clone(t.publicParams)
}

// PublicParam returns the public param called name.
func (t *Tracker) PublicParam(name string) PublicParam {
	for _, p := range t.publicParams {
		if p.Name == name {
			return p
		}
	}
	misuse("public param %s is not registered", name)
	return PublicParam{}
}

// ProofArguments returns the descriptors in witness order.
func (t *Tracker) ProofArguments() []ProofArgument {
	return slices.Clone(t.proofArguments)
}

func (t *Tracker) Statements() []ir.Statement {
	return slices.Clone(t.statements)
}

func (t *Tracker) Docs() []Doc {
	return slices.Clone(t.docs)
}

// WitnessLayout maps every proof argument to the circuit parameters it
// supplies and to its offset in the witness vector.
func (t *Tracker) WitnessLayout() []Slot {
	res := make([]Slot, len(t.proofArguments))
	offset := 0
	for i, a := range t.proofArguments {
		res[i] = Slot{Argument: a, Params: a.Params(), Offset: offset}
		offset += a.Arity()
	}
	return res
}

// Validate checks the ledgers against each other. A nil result means that
// parameters and arguments are in lockstep, that public params are circuit
// parameters, that the proof arguments cover every parameter exactly once in
// declaration order and that the statements only read defined locals.
func (t *Tracker) Validate() error {
	if len(t.parameters) != len(t.arguments) {
		return fmt.Errorf("%w: %d parameters but %d arguments", ErrLedgerMisuse, len(t.parameters), len(t.arguments))
	}
	if len(t.parameters) != len(t.docs) {
		return fmt.Errorf("%w: %d parameters but %d docs", ErrLedgerMisuse, len(t.parameters), len(t.docs))
	}
	if t.pending != 0 {
		return fmt.Errorf("%w: %d parameters are not covered by a proof argument", ErrLedgerMisuse, t.pending)
	}

	index := make(map[string]int, len(t.parameters))
	for i, p := range t.parameters {
		index[p.Name] = i
	}
	for _, pp := range t.publicParams {
		i, ok := index[pp.Name]
		if !ok {
			return fmt.Errorf("%w: public param %s is not a circuit parameter", ErrLedgerMisuse, pp.Name)
		}
		if t.arguments[i].Kind != HostArgument {
			return fmt.Errorf("%w: public param %s is supplied by the witness", ErrLedgerMisuse, pp.Name)
		}
	}

	next := 0
	for _, a := range t.proofArguments {
		for _, p := range a.Params() {
			if next >= len(t.parameters) || t.parameters[next] != p {
				return fmt.Errorf("%w: %s covers %s out of declaration order", ErrLedgerMisuse, a, p.Name)
			}
			next++
		}
	}
	if next != len(t.parameters) {
		return fmt.Errorf("%w: proof arguments cover %d of %d parameters", ErrLedgerMisuse, next, len(t.parameters))
	}

	if err := ir.Validate(t.parameters, t.statements); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerMisuse, err)
	}
	return nil
}
