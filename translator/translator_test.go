package translator

import (
	"math/rand"
	"testing"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/ir"
	"github.com/cloakzk/zkcircuit/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var me = &expr.Me{Annotation: expr.Annotate(expr.Address, expr.All)}

func ident(name string, t expr.Type, p expr.Privacy) *expr.Identifier {
	return &expr.Identifier{Annotation: expr.Annotate(t, p), Name: name}
}

func sum(p expr.Privacy) *expr.BinaryOp {
	return &expr.BinaryOp{
		Annotation: expr.Annotate(expr.Uint, p),
		Op:         "+",
		L:          ident("x", expr.Uint, expr.All),
		R:          ident("y", expr.Uint, expr.All),
	}
}

// symbolic evaluates identifiers to circuit references of the same name.
var symbolic = EvaluatorFunc(func(t *Translator, e expr.Expression) (ir.Expr, error) {
	if id, ok := e.(*expr.Identifier); ok {
		return ir.Ref(id.Name), nil
	}
	return circuitEvaluator{}.Evaluate(t, e)
})

func statements(tr *tracker.Tracker) []string {
	var res []string
	for _, s := range tr.Statements() {
		res = append(res, s.String())
	}
	return res
}

func paramNames(tr *tracker.Tracker) []string {
	var res []string
	for _, p := range tr.Parameters() {
		res = append(res, p.Name)
	}
	return res
}

func publicNames(tr *tracker.Tracker) []string {
	var res []string
	for _, p := range tr.PublicParams() {
		res = append(res, p.Name)
	}
	return res
}

func TestIntoCircuitPublic(t *testing.T) {
	tr := tracker.New()
	tl := New(tr, WithEvaluator(symbolic))

	arg, err := tl.IntoCircuit(sum(expr.All))
	require.NoError(t, err)
	require.Equal(t, "param[0]", arg)

	require.Equal(t, []string{"param0 == x + y"}, statements(tr))
	require.Equal(t, 0, tr.Allocated(tracker.Randomness))
	require.Equal(t, 0, tr.Allocated(tracker.Key))
	require.Equal(t, []string{"param0"}, paramNames(tr))
	require.Equal(t, []string{"param0"}, publicNames(tr))
	require.Len(t, tr.ProofArguments(), 1)
	require.IsType(t, tracker.FromCircuit{}, tr.ProofArguments()[0])
	require.False(t, tl.UsesKeyRegistry())
	require.Empty(t, tl.HostStatements())
	require.NoError(t, tr.Validate())
}

func TestIntoCircuitOwned(t *testing.T) {
	tr := tracker.New()
	tl := New(tr, WithEvaluator(symbolic))

	arg, err := tl.IntoCircuit(sum(expr.OwnedBy(me)))
	require.NoError(t, err)
	require.Equal(t, "param[0]", arg)

	require.Equal(t, []string{
		"field temp0 = x + y",
		"param0 == encrypt(temp0, randomness0, key0)",
	}, statements(tr))
	require.Equal(t, 1, tr.Allocated(tracker.Randomness))
	require.Equal(t, 1, tr.Allocated(tracker.Key))
	require.Equal(t, []string{"param0", "randomness0", "key0"}, paramNames(tr))
	require.Equal(t, []string{"param0", "key0"}, publicNames(tr))

	args := tr.Arguments()
	require.Equal(t, tracker.WitnessArgument, args[1].Kind)
	require.Equal(t, "genPublicKeyInfrastructure.getPk(msg.sender)", args[2].Expr)
	require.True(t, tl.UsesKeyRegistry())

	require.Len(t, tr.ProofArguments(), 1)
	require.Equal(t, 3, tr.ProofArguments()[0].Arity())
	require.NoError(t, tr.Validate())
}

func TestIntoCircuitBool(t *testing.T) {
	tr := tracker.New()
	tl := New(tr, WithEvaluator(symbolic))

	less := &expr.BinaryOp{
		Annotation: expr.Annotate(expr.Bool, expr.All),
		Op:         "<",
		L:          ident("x", expr.Uint, expr.All),
		R:          ident("y", expr.Uint, expr.All),
	}
	_, err := tl.IntoCircuit(less)
	require.NoError(t, err)
	require.Equal(t, []string{"param0 == if x < y then 1 else 0 fi"}, statements(tr))
}

func TestArraysCannotCross(t *testing.T) {
	xs := func(p expr.Privacy) *expr.Identifier { return ident("xs", expr.ArrayOf(expr.Uint, 3), p) }
	crossings := map[string]func(tl *Translator) error{
		"into owned": func(tl *Translator) error {
			_, err := tl.IntoCircuit(xs(expr.OwnedBy(me)))
			return err
		},
		"into public": func(tl *Translator) error {
			_, err := tl.IntoCircuit(xs(expr.All))
			return err
		},
		"out of public": func(tl *Translator) error {
			_, err := tl.OutOfCircuit(xs(expr.All))
			return err
		},
		"out of owned": func(tl *Translator) error {
			_, err := tl.OutOfCircuit(xs(expr.OwnedBy(me)))
			return err
		},
		"check owned": func(tl *Translator) error {
			return tl.CheckEncryptedInput(&expr.Parameter{Annotation: expr.Annotate(expr.ArrayOf(expr.Uint, 3), expr.OwnedBy(me)), Name: "xs"})
		},
	}
	for name, cross := range crossings {
		t.Run(name, func(t *testing.T) {
			tr := tracker.New()
			tl := New(tr, WithEvaluator(symbolic))
			require.ErrorIs(t, cross(tl), ErrUnsupportedPrivateType)
			require.Empty(t, tr.Parameters())
			require.Zero(t, tr.Allocated(tracker.Param))
			require.Empty(t, tl.HostStatements())
			require.Nil(t, tl.HostDeclarations())
		})
	}
}

// anonymous has no host rendering.
type anonymous struct {
	expr.Annotation
}

func TestUnrenderableOwnerAllocatesNothing(t *testing.T) {
	tr := tracker.New()
	tl := New(tr, WithEvaluator(symbolic))
	owner := &anonymous{Annotation: expr.Annotate(expr.Address, expr.All)}

	_, err := tl.IntoCircuit(sum(expr.OwnedBy(owner)))
	require.Error(t, err)
	require.Zero(t, tr.Allocated(tracker.Param))
	require.Zero(t, tr.Allocated(tracker.Randomness))
	require.Nil(t, tl.HostDeclarations())

	err = tl.CheckEncryptedInput(&expr.Parameter{Annotation: expr.Annotate(expr.Uint, expr.OwnedBy(owner)), Name: "amount"})
	require.Error(t, err)
	require.Zero(t, tr.Allocated(tracker.Param))

	// the next crossing starts at param0
	arg, err := tl.IntoCircuit(sum(expr.All))
	require.NoError(t, err)
	require.Equal(t, "param[0]", arg)
	require.Equal(t, []string{"uint[] memory param = new uint[](1);"}, tl.HostDeclarations())
}

func TestCheckEncryptedInput(t *testing.T) {
	t.Run("owned", func(t *testing.T) {
		tr := tracker.New()
		tl := New(tr)
		p := &expr.Parameter{Annotation: expr.Annotate(expr.Uint, expr.OwnedBy(me)), Name: "amount"}

		require.NoError(t, tl.CheckEncryptedInput(p))
		require.Equal(t, []string{"param0 == encrypt(value0, randomness0, key0)"}, statements(tr))
		require.Equal(t, []string{"param[0] = amount;"}, tl.HostStatements())
		require.Equal(t, []string{"param0", "value0", "randomness0", "key0"}, paramNames(tr))
		require.Equal(t, []string{"param0", "key0"}, publicNames(tr))

		pas := tr.ProofArguments()
		require.Len(t, pas, 1)
		check, ok := pas[0].(tracker.ParameterCheck)
		require.True(t, ok)
		require.Same(t, p, check.Param)
		require.NoError(t, tr.Validate())
	})
	t.Run("public", func(t *testing.T) {
		tr := tracker.New()
		tl := New(tr)
		p := &expr.Parameter{Annotation: expr.Annotate(expr.Uint, expr.All), Name: "amount"}

		require.NoError(t, tl.CheckEncryptedInput(p))
		require.Empty(t, tr.Statements())
		require.Empty(t, tr.ProofArguments())
		require.Empty(t, tl.HostStatements())
		require.Nil(t, tl.HostDeclarations())
	})
}

func TestOutOfCircuit(t *testing.T) {
	tr := tracker.New()
	tl := New(tr)

	res, err := tl.OutOfCircuit(ident("balance", expr.Uint, expr.OwnedBy(me)))
	require.NoError(t, err)
	require.Equal(t, "decrypt(param0, key0)", res.String())

	res, err = tl.OutOfCircuit(ident("flag", expr.Bool, expr.All))
	require.NoError(t, err)
	require.Equal(t, "param1 == 1", res.String())

	require.Equal(t, []string{"param[0] = balance;", "param[1] = flag;"}, tl.HostStatements())
	require.Equal(t, []string{"param0", "key0", "param1"}, paramNames(tr))
	require.Equal(t, []string{"param0", "param1"}, publicNames(tr))
	require.Empty(t, tr.Statements())
	require.NoError(t, tr.Validate())

	for _, pa := range tr.ProofArguments() {
		require.IsType(t, tracker.FromHost{}, pa)
	}
}

func TestOutOfCircuitUnsupportedType(t *testing.T) {
	for _, typ := range []expr.Type{expr.Address, expr.MappingOf(expr.Address, expr.Uint)} {
		tr := tracker.New()
		_, err := New(tr).OutOfCircuit(ident("v", typ, expr.All))
		require.ErrorIs(t, err, ErrUnsupportedPrivateType, typ.String())
		require.Empty(t, tr.Parameters())
		require.Empty(t, tr.ProofArguments())
	}
}

func TestDefaultEvaluatorFetchesLeavesFromHost(t *testing.T) {
	tr := tracker.New()
	tl := New(tr)

	arg, err := tl.IntoCircuit(sum(expr.All))
	require.NoError(t, err)
	require.Equal(t, "param[2]", arg)
	require.Equal(t, []string{"param2 == param0 + param1"}, statements(tr))
	require.Equal(t, []string{"param[0] = x;", "param[1] = y;"}, tl.HostStatements())
	require.Equal(t, []string{"uint[] memory param = new uint[](3);"}, tl.HostDeclarations())

	pas := tr.ProofArguments()
	require.Len(t, pas, 3)
	assert.IsType(t, tracker.FromHost{}, pas[0])
	assert.IsType(t, tracker.FromHost{}, pas[1])
	assert.IsType(t, tracker.FromCircuit{}, pas[2])
	require.NoError(t, tr.Validate())
}

func TestDefaultEvaluatorOperators(t *testing.T) {
	tr := tracker.New()
	tl := New(tr)

	cond := &expr.Conditional{
		Annotation: expr.Annotate(expr.Uint, expr.All),
		Cond:       &expr.Boolean{Annotation: expr.Annotate(expr.Bool, expr.All), Value: true},
		Then:       &expr.UnaryOp{Annotation: expr.Annotate(expr.Uint, expr.All), Op: "-", X: &expr.Number{Annotation: expr.Annotate(expr.Uint, expr.All), Value: "2"}},
		Else:       &expr.Reclassify{Annotation: expr.Annotate(expr.Uint, expr.All), X: &expr.Number{Annotation: expr.Annotate(expr.Uint, expr.All), Value: "3"}},
	}
	v, err := tl.Circuit(cond)
	require.NoError(t, err)
	require.Equal(t, "if 1 == 1 then 0 - 2 else 3 fi", v.String())
	require.Empty(t, tr.Parameters())
}

func TestCustomKeyRegistry(t *testing.T) {
	tr := tracker.New()
	tl := New(tr, WithEvaluator(symbolic), WithKeyRegistry(ContractRegistry("pki")))
	_, err := tl.IntoCircuit(sum(expr.OwnedBy(ident("owner", expr.Address, expr.All))))
	require.NoError(t, err)
	require.Equal(t, "pki.getPk(owner)", tr.Arguments()[2].Expr)
}

// Any sequence of boundary crossings keeps the ledgers consistent.
func TestLedgerInvariantsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	privacies := []expr.Privacy{expr.All, expr.OwnedBy(me)}

	for run := 0; run < 50; run++ {
		tr := tracker.New()
		tl := New(tr)
		for i := 0; i < 1+rng.Intn(8); i++ {
			priv := privacies[rng.Intn(2)]
			var err error
			switch rng.Intn(3) {
			case 0:
				_, err = tl.IntoCircuit(sum(priv))
			case 1:
				err = tl.CheckEncryptedInput(&expr.Parameter{Annotation: expr.Annotate(expr.Uint, priv), Name: "p"})
			case 2:
				_, err = tl.OutOfCircuit(ident("v", expr.Uint, priv))
			}
			require.NoError(t, err)

			require.Len(t, tr.Arguments(), len(tr.Parameters()))
			names := map[string]bool{}
			for _, p := range tr.Parameters() {
				names[p.Name] = true
			}
			for _, pp := range tr.PublicParams() {
				require.True(t, names[pp.Name], pp.Name)
			}
		}
		require.NoError(t, tr.Validate())

		witness := 0
		for _, pa := range tr.ProofArguments() {
			witness += pa.Arity()
		}
		require.Equal(t, ir.Arity(tr.Parameters()), witness)
	}
}
