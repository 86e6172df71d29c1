// Package expr models the annotated expressions handed to the circuit
// translator. Parsing, type checking and privacy resolution happen upstream;
// every node reaching the translator carries a resolved type and a resolved
// privacy annotation and is not modified afterwards.
package expr

// Expression is an annotated expression tree node.
type Expression interface {
	Type() Type
	Privacy() Privacy
}

// Privacy is a privacy annotation: either public (`all`) or owned by the
// identity an owner expression evaluates to.
type Privacy struct {
	Owner Expression
}

// All is the public annotation.
var All = Privacy{}

// OwnedBy returns the annotation for values encrypted for owner.
func OwnedBy(owner Expression) Privacy {
	return Privacy{Owner: owner}
}

// IsAll reports whether the annotation is public.
func (p Privacy) IsAll() bool {
	return p.Owner == nil
}

// Annotation is embedded by every node to carry type and privacy.
type Annotation struct {
	T Type
	P Privacy
}

func (a Annotation) Type() Type       { return a.T }
func (a Annotation) Privacy() Privacy { return a.P }

// Annotate returns an Annotation of type t and privacy p.
func Annotate(t Type, p Privacy) Annotation {
	return Annotation{T: t, P: p}
}

// Identifier references a variable or parameter of the enclosing function.
type Identifier struct {
	Annotation
	Name string
}

// Number is an integer literal.
type Number struct {
	Annotation
	Value string
}

// Boolean is a boolean literal.
type Boolean struct {
	Annotation
	Value bool
}

// Me is the identity of the caller.
type Me struct {
	Annotation
}

// BinaryOp applies an arithmetic, comparison or logical infix operator.
type BinaryOp struct {
	Annotation
	Op   string
	L, R Expression
}

// UnaryOp applies a prefix operator ("!" or "-").
type UnaryOp struct {
	Annotation
	Op string
	X  Expression
}

// Conditional is `cond ? then : else`.
type Conditional struct {
	Annotation
	Cond, Then, Else Expression
}

// Index is `array[index]`, including mapping lookups.
type Index struct {
	Annotation
	Array, Index Expression
}

// Reclassify marks a value whose privacy annotation changes, e.g. a private
// value revealed to the public. The annotation of the node is the new one.
type Reclassify struct {
	Annotation
	X Expression
}

// Parameter is a formal of the enclosing function.
type Parameter struct {
	Annotation
	Name string
}
