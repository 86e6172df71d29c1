package expr

import "strconv"

// Type is the resolved type of an annotated expression.
type Type interface {
	// String returns the host-language spelling of the type.
	String() string
	// CanBePrivate reports whether values of the type can be encrypted.
	CanBePrivate() bool
	// Width is the number of field elements a value occupies in the circuit.
	Width() int
	IsBool() bool
}

type elementary struct {
	name    string
	private bool
	boolean bool
}

func (t elementary) String() string     { return t.name }
func (t elementary) CanBePrivate() bool { return t.private }
func (t elementary) Width() int         { return 1 }
func (t elementary) IsBool() bool       { return t.boolean }

var (
	Uint    Type = elementary{name: "uint", private: true}
	Bool    Type = elementary{name: "bool", private: true, boolean: true}
	Address Type = elementary{name: "address", private: false}
)

type array struct {
	elem Type
	size int
}

// ArrayOf returns the fixed-size array type elem[size].
func ArrayOf(elem Type, size int) Type {
	return array{elem: elem, size: size}
}

func (t array) String() string     { return t.elem.String() + "[" + strconv.Itoa(t.size) + "]" }
func (t array) CanBePrivate() bool { return t.elem.CanBePrivate() && t.elem.Width() == 1 }
func (t array) Width() int         { return t.size * t.elem.Width() }
func (t array) IsBool() bool       { return false }

type mapping struct {
	key, value Type
}

// MappingOf returns the type mapping(key => value). Mappings never live in a circuit.
func MappingOf(key, value Type) Type {
	return mapping{key: key, value: value}
}

func (t mapping) String() string     { return "mapping(" + t.key.String() + " => " + t.value.String() + ")" }
func (t mapping) CanBePrivate() bool { return false }
func (t mapping) Width() int         { return 0 }
func (t mapping) IsBool() bool       { return false }
