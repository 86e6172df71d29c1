// Package zkcircuit compiles privacy annotated contract expressions into a
// proof circuit and hands the circuit to the proving toolchain.
package zkcircuit

import (
	"context"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/integration"
	"github.com/cloakzk/zkcircuit/ir"
)

// API is what a circuit definition uses to move values across the boundary
// between the host contract and the circuit.
type API interface {
	// IntoCircuit exposes a value computed in the circuit and returns the host
	// argument carrying it.
	IntoCircuit(e expr.Expression) (string, error)
	// CheckEncryptedInput checks the ciphertext passed for a function
	// argument.
	CheckEncryptedInput(p *expr.Parameter) error
	// OutOfCircuit passes a host value into the circuit.
	OutOfCircuit(e expr.Expression) (ir.Expr, error)
	// Circuit evaluates e inside the circuit.
	Circuit(e expr.Expression) (ir.Expr, error)
}

// Builder turns circuit sources into verifier contracts.
type Builder interface {
	Build(ctx context.Context, name string, source string) (*integration.Result, error)
}
