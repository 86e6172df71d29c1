package expr

import (
	"fmt"
	"strconv"
)

// Host renders e in the host contract language (Solidity).
func Host(e Expression) (string, error) {
	switch n := e.(type) {
	case *Identifier:
		return n.Name, nil
	case *Parameter:
		return n.Name, nil
	case *Number:
		return n.Value, nil
	case *Boolean:
		return strconv.FormatBool(n.Value), nil
	case *Me:
		return "msg.sender", nil
	case *BinaryOp:
		l, err := hostOperand(n.L)
		if err != nil {
			return "", err
		}
		r, err := hostOperand(n.R)
		if err != nil {
			return "", err
		}
		return l + " " + n.Op + " " + r, nil
	case *UnaryOp:
		x, err := hostOperand(n.X)
		if err != nil {
			return "", err
		}
		return n.Op + x, nil
	case *Conditional:
		c, err := hostOperand(n.Cond)
		if err != nil {
			return "", err
		}
		t, err := hostOperand(n.Then)
		if err != nil {
			return "", err
		}
		f, err := hostOperand(n.Else)
		if err != nil {
			return "", err
		}
		return c + " ? " + t + " : " + f, nil
	case *Index:
		a, err := hostOperand(n.Array)
		if err != nil {
			return "", err
		}
		i, err := Host(n.Index)
		if err != nil {
			return "", err
		}
		return a + "[" + i + "]", nil
	case *Reclassify:
		return Host(n.X)
	}
	return "", fmt.Errorf("no host rendering for %T", e)
}

func hostOperand(e Expression) (string, error) {
	s, err := Host(e)
	if err != nil {
		return "", err
	}
	switch e.(type) {
	case *BinaryOp, *Conditional, *UnaryOp:
		return "(" + s + ")", nil
	}
	return s, nil
}
