// Package translator moves values across the boundary between a host
// contract and its proof circuit. Each crossing emits the circuit statements
// checking the value into the tracker and returns what the other side needs:
// the host-language argument for values leaving the circuit, the circuit
// expression for values entering it.
//
// After an error the tracker is in an unspecified state and must be
// discarded together with the translator.
package translator

import (
	"fmt"
	"strconv"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/ir"
	"github.com/cloakzk/zkcircuit/tracker"
)

const (
	// helper array of the host function holding circuit arguments
	hostParamArray = "param"

	encryptFunc = "encrypt"
	decryptFunc = "decrypt"
)

type Translator struct {
	tracker  *tracker.Tracker
	keys     KeyRegistry
	eval     Evaluator
	host     []string
	usesKeys bool
}

// Option configures a Translator.
type Option func(*Translator)

// WithEvaluator replaces the default circuit expression evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(t *Translator) {
		t.eval = e
	}
}

// WithKeyRegistry replaces the public key lookup rendered on the host side.
func WithKeyRegistry(r KeyRegistry) Option {
	return func(t *Translator) {
		t.keys = r
	}
}

// New returns a translator recording into tr.
func New(tr *tracker.Tracker, opts ...Option) *Translator {
	t := &Translator{
		tracker: tr,
		keys:    ContractRegistry(DefaultKeyRegistry),
		eval:    circuitEvaluator{},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Translator) Tracker() *tracker.Tracker {
	return t.tracker
}

// Circuit evaluates e in the circuit's expression language.
func (t *Translator) Circuit(e expr.Expression) (ir.Expr, error) {
	return t.eval.Evaluate(t, e)
}

// IntoCircuit exposes a value computed inside the circuit to the host. It
// returns the host expression the caller must pass at call time.
func (t *Translator) IntoCircuit(e expr.Expression) (string, error) {
	typ, priv := e.Type(), e.Privacy()
	var owner string
	if priv.IsAll() {
		if typ.Width() != 1 {
			return "", fmt.Errorf("%w: %s does not fit one field element", ErrUnsupportedPrivateType, typ)
		}
	} else {
		if err := checkPrivate(typ); err != nil {
			return "", err
		}
		var err error
		if owner, err = expr.Host(priv.Owner); err != nil {
			return "", err
		}
	}
	value, err := t.Circuit(e)
	if err != nil {
		return "", err
	}
	if typ.IsBool() {
		value = ir.BoolToField(value)
	}

	name, hostArg := t.freshParam()
	p := single(name)
	desc := describe(e)

	if priv.IsAll() {
		t.tracker.AddPublicParam(p, hostArg, e, desc)
		t.tracker.AddStatement(ir.Assert{Left: ir.Ref(name), Right: value})
	} else {
		randomness, _ := t.tracker.Fresh(tracker.Randomness)
		key, _ := t.tracker.Fresh(tracker.Key)
		local, _ := t.tracker.Fresh(tracker.Temporary)

		t.tracker.AddPublicParam(p, hostArg, e, desc+" encrypted for "+owner)
		t.tracker.AddSecretParam(single(randomness), "randomness for "+name)
		t.tracker.AddPublicParam(single(key), t.publicKey(owner), priv.Owner, "public key of "+owner)
		t.tracker.AddStatement(
			ir.Define{Name: local, Width: 1, Value: value},
			ir.Assert{Left: ir.Ref(name), Right: encrypt(local, randomness, key)},
		)
	}
	t.tracker.AddProofArgument(tracker.FromCircuit{Expr: e})
	return hostArg, nil
}

// CheckEncryptedInput proves that the ciphertext passed for p encrypts some
// value under the owner's key. Public parameters need no check.
func (t *Translator) CheckEncryptedInput(p *expr.Parameter) error {
	priv := p.Privacy()
	if priv.IsAll() {
		return nil
	}
	if err := checkPrivate(p.Type()); err != nil {
		return err
	}
	owner, err := expr.Host(priv.Owner)
	if err != nil {
		return err
	}

	name, hostArg := t.freshParam()
	t.stage(hostArg + " = " + p.Name + ";")
	value, _ := t.tracker.Fresh(tracker.Value)
	randomness, _ := t.tracker.Fresh(tracker.Randomness)
	key, _ := t.tracker.Fresh(tracker.Key)

	t.tracker.AddPublicParam(single(name), hostArg, p, "argument "+p.Name+" encrypted for "+owner)
	t.tracker.AddSecretParam(single(value), "plaintext of "+p.Name)
	t.tracker.AddSecretParam(single(randomness), "randomness for "+name)
	t.tracker.AddPublicParam(single(key), t.publicKey(owner), priv.Owner, "public key of "+owner)
	t.tracker.AddStatement(ir.Assert{Left: ir.Ref(name), Right: encrypt(value, randomness, key)})
	t.tracker.AddProofArgument(tracker.ParameterCheck{Param: p})
	return nil
}

// OutOfCircuit hands the value of a host expression to the circuit and
// returns the circuit expression standing for it. Owned values are decrypted
// with the owner's private key, which the prover supplies.
func (t *Translator) OutOfCircuit(e expr.Expression) (ir.Expr, error) {
	typ, priv := e.Type(), e.Privacy()
	if err := checkPrivate(typ); err != nil {
		return nil, err
	}
	hostExpr, err := expr.Host(e)
	if err != nil {
		return nil, err
	}

	name, hostArg := t.freshParam()
	t.stage(hostArg + " = " + hostExpr + ";")
	t.tracker.AddPublicParam(single(name), hostArg, e, "value of "+hostExpr)

	var res ir.Expr = ir.Ref(name)
	if !priv.IsAll() {
		key, _ := t.tracker.Fresh(tracker.Key)
		t.tracker.AddSecretParam(single(key), "private key for "+name)
		res = ir.Call{Func: decryptFunc, Args: []ir.Expr{ir.Ref(name), ir.Ref(key)}}
	}
	t.tracker.AddProofArgument(tracker.FromHost{Expr: e})

	if typ.IsBool() {
		res = ir.FieldToBool(res)
	}
	return res, nil
}

// HostStatements returns the host statements staged so far, in order. They
// must run before the circuit arguments are read.
func (t *Translator) HostStatements() []string {
	return append([]string(nil), t.host...)
}

// HostDeclarations returns the declarations of the host helper arrays.
func (t *Translator) HostDeclarations() []string {
	n := t.tracker.Allocated(tracker.Param)
	if n == 0 {
		return nil
	}
	return []string{fmt.Sprintf("uint[] memory %s = new uint[](%d);", hostParamArray, n)}
}

// UsesKeyRegistry reports whether the host needs a reference to the key
// registry.
func (t *Translator) UsesKeyRegistry() bool {
	return t.usesKeys
}

func (t *Translator) freshParam() (string, string) {
	name, i := t.tracker.Fresh(tracker.Param)
	return name, hostParamArray + "[" + strconv.Itoa(i) + "]"
}

func (t *Translator) stage(s string) {
	t.host = append(t.host, s)
}

func (t *Translator) publicKey(owner string) string {
	t.usesKeys = true
	return t.keys.PublicKey(owner)
}

// checkPrivate rejects types that cannot be encrypted or that do not fit a
// single field element, the unit of the host helper array.
func checkPrivate(typ expr.Type) error {
	if !typ.CanBePrivate() || typ.Width() != 1 {
		return fmt.Errorf("%w: %s", ErrUnsupportedPrivateType, typ)
	}
	return nil
}

func single(name string) ir.Parameter {
	return ir.Parameter{Name: name, Width: 1}
}

func encrypt(value, randomness, key string) ir.Expr {
	return ir.Call{Func: encryptFunc, Args: []ir.Expr{ir.Ref(value), ir.Ref(randomness), ir.Ref(key)}}
}

func describe(e expr.Expression) string {
	if s, err := expr.Host(e); err == nil {
		return "value of " + s
	}
	return "value of type " + e.Type().String()
}
