// Package assembler turns the statements accumulated by a tracker into the
// source of a circuit program.
package assembler

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/cloakzk/zkcircuit/ir"
	"github.com/cloakzk/zkcircuit/tracker"
	"github.com/cloakzk/zkcircuit/utils"
	"github.com/consensys/gnark/logger"
)

// The two halves of the public input hash, appended to every entry function.
const (
	InputHash0 = "inputHash0"
	InputHash1 = "inputHash1"
)

const checkHashFunc = "checkHash"

//go:embed preamble.zok.tmpl
var preambleText string

var preamble = template.Must(template.New("preamble").Parse(preambleText))

// Program is an assembled circuit.
type Program struct {
	preamble string
	docs     []tracker.Doc
	params   []ir.Parameter
	body     []ir.Statement
	public   []string
	inputs   ir.List
}

// Assemble builds the program for the circuit recorded by tr. It reports
// false when no statement was recorded, in which case nothing needs to be
// proven. Ledgers that do not validate are a bug of the caller and panic.
func Assemble(tr *tracker.Tracker) (*Program, bool) {
	stmts := tr.Statements()
	if len(stmts) == 0 {
		return nil, false
	}
	if err := tr.Validate(); err != nil {
		panic(err)
	}

	width := make(map[string]int)
	for _, p := range tr.Parameters() {
		width[p.Name] = p.Width
	}
	var public []string
	inputs := make(ir.List, 0)
	for _, p := range tr.PublicParams() {
		public = append(public, p.Name)
		inputs = append(inputs, hashInputs(p.Name, width[p.Name])...)
	}

	hash := ir.Call{Func: checkHashFunc, Args: []ir.Expr{
		inputs,
		ir.List{ir.Ref(InputHash0), ir.Ref(InputHash1)},
	}}
	guard := ir.Assert{Left: ir.NewConst(1), Right: hash}
	body := make([]ir.Statement, 0, len(stmts)+2)
	body = append(body, guard)
	body = append(body, stmts...)
	body = append(body, ir.Return{Value: ir.NewConst(1)})

	params := append(tr.Parameters(),
		ir.Parameter{Name: InputHash0, Width: 1},
		ir.Parameter{Name: InputHash1, Width: 1},
	)
	if err := ir.Validate(params, body); err != nil {
		panic(err)
	}

	var sb strings.Builder
	if err := preamble.Execute(&sb, struct{ NumInputs int }{len(inputs)}); err != nil {
		panic(err)
	}

	log := logger.Logger()
	log.Info().
		Int("nPublicParams", len(public)).
		Int("nHashInputs", len(inputs)).
		Int("nParams", len(params)).
		Int("nStatements", len(body)).
		Msg("assembled circuit")

	return &Program{
		preamble: strings.TrimRight(sb.String(), "\n"),
		docs:     tr.Docs(),
		params:   params,
		body:     body,
		public:   public,
		inputs:   inputs,
	}, true
}

// hashInputs lists the field elements of a public param, one per array entry.
func hashInputs(name string, width int) []ir.Expr {
	if width <= 1 {
		return []ir.Expr{ir.Ref(name)}
	}
	res := make([]ir.Expr, width)
	for i := range res {
		res[i] = ir.Index{Array: ir.Ref(name), Index: i}
	}
	return res
}

// Parameters returns the formals of the entry function, including the input
// hash halves.
func (p *Program) Parameters() []ir.Parameter {
	return append([]ir.Parameter(nil), p.params...)
}

// Statements returns the body of the entry function.
func (p *Program) Statements() []ir.Statement {
	return append([]ir.Statement(nil), p.body...)
}

// PublicParams returns the names hashed by the guard, in order.
func (p *Program) PublicParams() []string {
	return append([]string(nil), p.public...)
}

// HashInputs returns the elements hashed by the guard, in order. Array
// params contribute one element per entry.
func (p *Program) HashInputs() []string {
	res := make([]string, len(p.inputs))
	for i, e := range p.inputs {
		res[i] = e.String()
	}
	return res
}

// Source renders the program text.
func (p *Program) Source() string {
	docs := make([]string, len(p.docs))
	for i, d := range p.docs {
		docs[i] = d.String()
	}
	args := make([]string, len(p.params))
	for i, param := range p.params {
		args[i] = param.String()
	}
	lines := make([]string, len(p.body))
	for i, s := range p.body {
		lines[i] = s.String()
	}

	var sb strings.Builder
	sb.WriteString(p.preamble)
	sb.WriteString("\n\n")
	if len(docs) > 0 {
		sb.WriteString(utils.PrependToLines(strings.Join(docs, "\n"), "// "))
		sb.WriteString("\n")
	}
	sb.WriteString("def main(" + strings.Join(args, ", ") + ") -> (field):\n")
	sb.WriteString(utils.Indent(strings.Join(lines, "\n")))
	sb.WriteString("\n")
	return sb.String()
}
