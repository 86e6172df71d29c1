package test

import (
	"fmt"
	"math/big"

	"github.com/cloakzk/zkcircuit/assembler"
	"github.com/cloakzk/zkcircuit/field"
	"github.com/cloakzk/zkcircuit/ir"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// value is a field element or an array of them
type value []fr.Element

func scalar(x fr.Element) value {
	return value{x}
}

func boolean(b bool) value {
	var x fr.Element
	if b {
		x.SetOne()
	}
	return scalar(x)
}

func (v value) equal(w value) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if !v[i].Equal(&w[i]) {
			return false
		}
	}
	return true
}

func (v value) one() (fr.Element, error) {
	if len(v) != 1 {
		return fr.Element{}, fmt.Errorf("expected a single element, got %d", len(v))
	}
	return v[0], nil
}

// CompleteWitness appends the input hash halves for the public params of p to
// values, which assign every parameter but the hash halves in declaration
// order.
func CompleteWitness(p *assembler.Program, values []*big.Int) ([]*big.Int, error) {
	params := p.Parameters()
	byName := make(map[string][]*big.Int)
	off := 0
	for _, param := range params[:len(params)-2] {
		if off+param.Width > len(values) {
			return nil, fmt.Errorf("witness too short for %s", param.Name)
		}
		byName[param.Name] = values[off : off+param.Width]
		off += param.Width
	}
	var inputs []*big.Int
	for _, name := range p.PublicParams() {
		inputs = append(inputs, byName[name]...)
	}
	h0, h1, err := field.InputHash(inputs)
	if err != nil {
		return nil, err
	}
	res := append([]*big.Int(nil), values[:off]...)
	return append(res, h0, h1), nil
}

// EvalProgram runs the entry function of p on witness, which assigns every
// parameter in declaration order. It reports whether every assertion holds
// and the function returns 1. The circuit library is evaluated with the same
// semantics as the preamble.
func EvalProgram(p *assembler.Program, witness []*big.Int) (bool, error) {
	params := p.Parameters()
	if len(witness) != ir.Arity(params) {
		return false, fmt.Errorf("witness has %d values, expected %d", len(witness), ir.Arity(params))
	}
	env := make(map[string]value)
	off := 0
	for _, param := range params {
		v := make(value, param.Width)
		for i := range v {
			v[i] = field.Element(witness[off+i])
		}
		env[param.Name] = v
		off += param.Width
	}

	for _, s := range p.Statements() {
		switch s := s.(type) {
		case ir.Define:
			v, err := eval(s.Value, env)
			if err != nil {
				return false, err
			}
			env[s.Name] = v
		case ir.Assert:
			l, err := eval(s.Left, env)
			if err != nil {
				return false, err
			}
			r, err := eval(s.Right, env)
			if err != nil {
				return false, err
			}
			if !l.equal(r) {
				return false, nil
			}
		case ir.Return:
			v, err := eval(s.Value, env)
			if err != nil {
				return false, err
			}
			x, err := v.one()
			if err != nil {
				return false, err
			}
			return x.IsOne(), nil
		}
	}
	return false, fmt.Errorf("entry function does not return")
}

func eval(e ir.Expr, env map[string]value) (value, error) {
	switch e := e.(type) {
	case ir.Ref:
		v, ok := env[string(e)]
		if !ok {
			return nil, fmt.Errorf("undefined %s", e)
		}
		return v, nil
	case ir.Const:
		x, err := field.Parse(string(e))
		if err != nil {
			return nil, err
		}
		return scalar(field.Element(x)), nil
	case ir.List:
		var res value
		for _, x := range e {
			v, err := eval(x, env)
			if err != nil {
				return nil, err
			}
			res = append(res, v...)
		}
		return res, nil
	case ir.Index:
		v, err := eval(e.Array, env)
		if err != nil {
			return nil, err
		}
		if e.Index < 0 || e.Index >= len(v) {
			return nil, fmt.Errorf("index %d out of range", e.Index)
		}
		return scalar(v[e.Index]), nil
	case ir.Unary:
		x, err := evalOne(e.X, env)
		if err != nil {
			return nil, err
		}
		if e.Op != "!" {
			return nil, fmt.Errorf("unknown operator %s", e.Op)
		}
		return boolean(x.IsZero()), nil
	case ir.Binary:
		return evalBinary(e, env)
	case ir.Cond:
		c, err := evalOne(e.Cond, env)
		if err != nil {
			return nil, err
		}
		if c.IsZero() {
			return eval(e.Else, env)
		}
		return eval(e.Then, env)
	case ir.Call:
		return evalCall(e, env)
	}
	return nil, fmt.Errorf("cannot evaluate %T", e)
}

func evalOne(e ir.Expr, env map[string]value) (fr.Element, error) {
	v, err := eval(e, env)
	if err != nil {
		return fr.Element{}, err
	}
	return v.one()
}

func evalBinary(e ir.Binary, env map[string]value) (value, error) {
	if e.Op == "==" || e.Op == "!=" {
		l, err := eval(e.L, env)
		if err != nil {
			return nil, err
		}
		r, err := eval(e.R, env)
		if err != nil {
			return nil, err
		}
		return boolean(l.equal(r) == (e.Op == "==")), nil
	}
	l, err := evalOne(e.L, env)
	if err != nil {
		return nil, err
	}
	r, err := evalOne(e.R, env)
	if err != nil {
		return nil, err
	}
	var res fr.Element
	switch e.Op {
	case "+":
		res.Add(&l, &r)
	case "-":
		res.Sub(&l, &r)
	case "*":
		res.Mul(&l, &r)
	case "/":
		res.Div(&l, &r)
	case "<":
		return boolean(l.Cmp(&r) < 0), nil
	case "<=":
		return boolean(l.Cmp(&r) <= 0), nil
	case ">":
		return boolean(l.Cmp(&r) > 0), nil
	case ">=":
		return boolean(l.Cmp(&r) >= 0), nil
	case "&&":
		return boolean(!l.IsZero() && !r.IsZero()), nil
	case "||":
		return boolean(!l.IsZero() || !r.IsZero()), nil
	default:
		return nil, fmt.Errorf("unknown operator %s", e.Op)
	}
	return scalar(res), nil
}

func evalCall(e ir.Call, env map[string]value) (value, error) {
	if e.Func == "checkHash" && len(e.Args) == 2 {
		// checkHash takes field[N], so every listed input is one element
		list, ok := e.Args[0].(ir.List)
		if !ok {
			return nil, fmt.Errorf("checkHash inputs must be a list literal")
		}
		for _, x := range list {
			if _, err := evalOne(x, env); err != nil {
				return nil, fmt.Errorf("checkHash input %s: %w", x, err)
			}
		}
	}
	args := make([]value, len(e.Args))
	for i, a := range e.Args {
		v, err := eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	var res fr.Element
	switch {
	case e.Func == "encrypt" && len(args) == 3:
		res.Add(&args[0][0], &args[2][0])
	case e.Func == "decrypt" && len(args) == 2:
		res.Sub(&args[0][0], &args[1][0])
	case e.Func == "checkHash" && len(args) == 2 && len(args[1]) == 2:
		inputs := make([]*big.Int, len(args[0]))
		for i := range args[0] {
			inputs[i] = args[0][i].BigInt(new(big.Int))
		}
		h0, h1, err := field.InputHash(inputs)
		if err != nil {
			return nil, err
		}
		return boolean(args[1].equal(value{field.Element(h0), field.Element(h1)})), nil
	default:
		return nil, fmt.Errorf("unknown function %s/%d", e.Func, len(args))
	}
	return scalar(res), nil
}
