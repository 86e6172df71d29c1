package ir

// Statement is one line of the circuit's entry function body.
type Statement interface {
	String() string
	// exprs lists the expressions read by the statement
	exprs() []Expr
}

// Define binds a fresh local.
type Define struct {
	Name  string
	Width int
	Value Expr
}

func (d Define) String() string {
	return FieldType(d.Width) + " " + d.Name + " = " + d.Value.String()
}

func (d Define) exprs() []Expr { return []Expr{d.Value} }

// Assert constrains Left to equal Right.
type Assert struct {
	Left, Right Expr
}

func (a Assert) String() string {
	return a.Left.String() + " == " + a.Right.String()
}

func (a Assert) exprs() []Expr { return []Expr{a.Left, a.Right} }

// Return ends the entry function.
type Return struct {
	Value Expr
}

func (r Return) String() string {
	return "return " + r.Value.String()
}

func (r Return) exprs() []Expr { return []Expr{r.Value} }
