package translator

import (
	"fmt"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/ir"
)

// Evaluator turns an annotated expression into a circuit expression. It may
// call back into the translator, typically OutOfCircuit for values the
// circuit has to receive from the host.
type Evaluator interface {
	Evaluate(t *Translator, e expr.Expression) (ir.Expr, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(t *Translator, e expr.Expression) (ir.Expr, error)

func (f EvaluatorFunc) Evaluate(t *Translator, e expr.Expression) (ir.Expr, error) {
	return f(t, e)
}

// circuitEvaluator evaluates operators and literals inside the circuit and
// fetches every other leaf from the host.
type circuitEvaluator struct{}

func (circuitEvaluator) Evaluate(t *Translator, e expr.Expression) (ir.Expr, error) {
	switch e := e.(type) {
	case *expr.Number:
		return ir.Const(e.Value), nil
	case *expr.Boolean:
		if e.Value {
			return ir.FieldToBool(ir.NewConst(1)), nil
		}
		return ir.FieldToBool(ir.NewConst(0)), nil
	case *expr.BinaryOp:
		l, err := t.Circuit(e.L)
		if err != nil {
			return nil, err
		}
		r, err := t.Circuit(e.R)
		if err != nil {
			return nil, err
		}
		return ir.Binary{Op: e.Op, L: l, R: r}, nil
	case *expr.UnaryOp:
		x, err := t.Circuit(e.X)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case "!":
			return ir.Unary{Op: "!", X: x}, nil
		case "-":
			return ir.Binary{Op: "-", L: ir.NewConst(0), R: x}, nil
		}
		return nil, fmt.Errorf("unsupported unary operator %q in circuit", e.Op)
	case *expr.Conditional:
		c, err := t.Circuit(e.Cond)
		if err != nil {
			return nil, err
		}
		a, err := t.Circuit(e.Then)
		if err != nil {
			return nil, err
		}
		b, err := t.Circuit(e.Else)
		if err != nil {
			return nil, err
		}
		return ir.Cond{Cond: c, Then: a, Else: b}, nil
	case *expr.Reclassify:
		return t.Circuit(e.X)
	case nil:
		return nil, fmt.Errorf("cannot evaluate nil expression")
	}
	return t.OutOfCircuit(e)
}
