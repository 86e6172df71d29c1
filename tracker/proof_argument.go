package tracker

import (
	"fmt"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/ir"
)

// ProofArgument describes how the values of a group of consecutive circuit
// parameters are sourced when the witness is computed off-chain. The
// concatenation of Params over all descriptors equals the circuit's parameter
// list, which fixes the order of the witness argument vector.
type ProofArgument interface {
	// Params returns the circuit parameters whose witness values this
	// descriptor provides, in declaration order.
	Params() []ir.Parameter
	// Arity is the number of witness values, counting array parameters by width.
	Arity() int
	String() string
	withParams([]ir.Parameter) ProofArgument
}

type covered struct {
	params []ir.Parameter
}

func (c covered) Params() []ir.Parameter {
	return c.params
}

func (c covered) Arity() int {
	return ir.Arity(c.params)
}

// FromCircuit is a value computed inside the circuit and exposed to, or
// checked against, the host contract.
type FromCircuit struct {
	covered
	Expr expr.Expression
}

func (a FromCircuit) withParams(p []ir.Parameter) ProofArgument {
	a.params = p
	return a
}

func (a FromCircuit) String() string {
	return fmt.Sprintf("FromCircuit(%s)", hostOrType(a.Expr))
}

// FromHost is a value evaluated by the host contract and fed to the circuit.
type FromHost struct {
	covered
	Expr expr.Expression
}

func (a FromHost) withParams(p []ir.Parameter) ProofArgument {
	a.params = p
	return a
}

func (a FromHost) String() string {
	return fmt.Sprintf("FromHost(%s)", hostOrType(a.Expr))
}

// ParameterCheck proves that an encrypted function argument is well formed.
type ParameterCheck struct {
	covered
	Param *expr.Parameter
}

func (a ParameterCheck) withParams(p []ir.Parameter) ProofArgument {
	a.params = p
	return a
}

func (a ParameterCheck) String() string {
	if a.Param == nil {
		return "ParameterCheck()"
	}
	return fmt.Sprintf("ParameterCheck(%s)", a.Param.Name)
}

func hostOrType(e expr.Expression) string {
	if s, err := expr.Host(e); err == nil {
		return s
	}
	return fmt.Sprintf("%T", e)
}
