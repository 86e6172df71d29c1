package ir

import (
	"strconv"
	"strings"
)

// Expr is an expression of the circuit language. It is kept as a tree until
// the program is emitted so that references can be checked beforehand.
type Expr interface {
	String() string
	// walk calls f for every name referenced by the expression
	walk(f func(name string))
}

// Ref references a circuit parameter or a local.
type Ref string

func (r Ref) String() string { return string(r) }

func (r Ref) walk(f func(string)) { f(string(r)) }

// Const is a literal field element in decimal notation.
type Const string

func (c Const) String() string { return string(c) }

func (c Const) walk(func(string)) {}

// NewConst returns the literal for v.
func NewConst(v int64) Const {
	return Const(strconv.FormatInt(v, 10))
}

// List is an inline array literal.
type List []Expr

func (l List) String() string {
	return "[" + joinExprs(l) + "]"
}

func (l List) walk(f func(string)) { walkAll(l, f) }

// Call invokes a function of the circuit library.
type Call struct {
	Func string
	Args []Expr
}

func (c Call) String() string {
	return c.Func + "(" + joinExprs(c.Args) + ")"
}

func (c Call) walk(f func(string)) { walkAll(c.Args, f) }

// Index selects a single element of an array expression.
type Index struct {
	Array Expr
	Index int
}

func (i Index) String() string {
	return operand(i.Array) + "[" + strconv.Itoa(i.Index) + "]"
}

func (i Index) walk(f func(string)) { i.Array.walk(f) }

// Unary applies a prefix operator.
type Unary struct {
	Op string
	X  Expr
}

func (u Unary) String() string {
	return u.Op + operand(u.X)
}

func (u Unary) walk(f func(string)) { u.X.walk(f) }

// Binary applies an infix operator. Nested operands are parenthesized.
type Binary struct {
	Op   string
	L, R Expr
}

func (b Binary) String() string {
	return operand(b.L) + " " + b.Op + " " + operand(b.R)
}

func (b Binary) walk(f func(string)) {
	b.L.walk(f)
	b.R.walk(f)
}

// Cond is the circuit language's conditional expression.
type Cond struct {
	Cond, Then, Else Expr
}

func (c Cond) String() string {
	return "if " + c.Cond.String() + " then " + c.Then.String() + " else " + c.Else.String() + " fi"
}

func (c Cond) walk(f func(string)) {
	c.Cond.walk(f)
	c.Then.walk(f)
	c.Else.walk(f)
}

// BoolToField turns a boolean circuit expression into a 0/1 field element.
func BoolToField(e Expr) Expr {
	return Cond{Cond: e, Then: NewConst(1), Else: NewConst(0)}
}

// FieldToBool turns a 0/1 field element into a boolean circuit expression.
func FieldToBool(e Expr) Expr {
	return Binary{Op: "==", L: e, R: NewConst(1)}
}

// Refs returns the names referenced by e in order of appearance.
func Refs(e Expr) []string {
	var res []string
	e.walk(func(n string) { res = append(res, n) })
	return res
}

func operand(e Expr) string {
	switch e.(type) {
	case Binary, Cond, Unary:
		return "(" + e.String() + ")"
	}
	return e.String()
}

func joinExprs(es []Expr) string {
	s := make([]string, len(es))
	for i, e := range es {
		s[i] = e.String()
	}
	return strings.Join(s, ", ")
}

func walkAll(es []Expr, f func(string)) {
	for _, e := range es {
		e.walk(f)
	}
}
