package ir

import (
	"fmt"
	"strconv"
)

// Parameter is a formal of the circuit's entry function.
type Parameter struct {
	Name string
	// Width is 1 for a single field element and N for field[N]
	Width int
}

// IsArray reports whether the parameter is declared as field[N].
func (p Parameter) IsArray() bool {
	return p.Width > 1
}

// Type returns the declared circuit type.
func (p Parameter) Type() string {
	return FieldType(p.Width)
}

func (p Parameter) String() string {
	return p.Type() + " " + p.Name
}

// FieldType returns "field" for width 1 and "field[width]" otherwise.
func FieldType(width int) string {
	if width > 1 {
		return "field[" + strconv.Itoa(width) + "]"
	}
	return "field"
}

// Arity is the number of witness values needed for params.
func Arity(params []Parameter) int {
	n := 0
	for _, p := range params {
		n += p.Width
	}
	return n
}

// Validate checks that parameter names are unique and positive-width, that
// every Define introduces a name not used by a parameter or an earlier local,
// that no statement reads a local before it is defined, and that a Return, if
// present, is the last statement.
func Validate(params []Parameter, stmts []Statement) error {
	declared := make(map[string]bool, len(params))
	for i, p := range params {
		if p.Width <= 0 {
			return fmt.Errorf("parameter %d (%s) has width %d", i, p.Name, p.Width)
		}
		if declared[p.Name] {
			return fmt.Errorf("parameter %d (%s) is declared twice", i, p.Name)
		}
		declared[p.Name] = true
	}

	// position of the Define of each local
	locals := make(map[string]int)
	for i, s := range stmts {
		if d, ok := s.(Define); ok {
			if declared[d.Name] {
				return fmt.Errorf("statement %d redeclares parameter %s", i, d.Name)
			}
			if _, ok := locals[d.Name]; ok {
				return fmt.Errorf("statement %d redeclares local %s", i, d.Name)
			}
			locals[d.Name] = i
		}
	}

	for i, s := range stmts {
		if _, ok := s.(Return); ok && i != len(stmts)-1 {
			return fmt.Errorf("statement %d returns before the end of the body", i)
		}
		for _, e := range s.exprs() {
			for _, name := range Refs(e) {
				if at, ok := locals[name]; ok && at >= i {
					return fmt.Errorf("statement %d reads local %s defined at statement %d", i, name, at)
				}
			}
		}
	}
	return nil
}
