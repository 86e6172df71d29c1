package test

import (
	"math/big"
	"math/rand"
	"strconv"

	"github.com/cloakzk/zkcircuit/expr"
	"github.com/cloakzk/zkcircuit/translator"
)

const randomValueBits = 32

type randomTranslationConfig struct {
	seed          int
	nbOps         randRange
	intoPercent   int
	checkPercent  int
	ownedPercent  int
	revealPercent int
}

type randRange struct {
	l int
	r int
}

func (rr *randRange) sample(r *rand.Rand) int {
	return r.Intn(rr.r-rr.l+1) + rr.l
}

// randomTranslationGenerator drives a translator through random boundary
// crossings and computes a witness satisfying the resulting circuit, using
// the encryption of the circuit library.
type randomTranslationGenerator struct {
	conf    *randomTranslationConfig
	rand    *rand.Rand
	witness []*big.Int
	nbVars  int
}

var owner = &expr.Me{Annotation: expr.Annotate(expr.Address, expr.All)}

func newRandomTranslationGenerator(conf *randomTranslationConfig) *randomTranslationGenerator {
	return &randomTranslationGenerator{
		conf: conf,
		rand: rand.New(rand.NewSource(int64(conf.seed))),
	}
}

func (g *randomTranslationGenerator) value() *big.Int {
	return new(big.Int).Rand(g.rand, new(big.Int).Lsh(big.NewInt(1), randomValueBits))
}

func (g *randomTranslationGenerator) variable(p expr.Privacy) *expr.Identifier {
	g.nbVars++
	return &expr.Identifier{Annotation: expr.Annotate(expr.Uint, p), Name: "v" + strconv.Itoa(g.nbVars)}
}

func (g *randomTranslationGenerator) privacy() expr.Privacy {
	if g.rand.Intn(100) < g.conf.ownedPercent {
		return expr.OwnedBy(owner)
	}
	return expr.All
}

func add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

// run translates a random sequence of crossings and returns the witness
// values of every circuit parameter, in declaration order.
func (g *randomTranslationGenerator) run(tl *translator.Translator) ([]*big.Int, error) {
	n := g.conf.nbOps.sample(g.rand)
	for i := 0; i < n; i++ {
		op := g.rand.Intn(100)
		var err error
		if op < g.conf.intoPercent {
			err = g.into(tl)
		} else if op < g.conf.checkPercent {
			err = g.check(tl)
		} else if op < g.conf.revealPercent {
			err = g.reveal(tl)
		} else {
			_, err = tl.OutOfCircuit(g.variable(expr.All))
			g.witness = append(g.witness, g.value())
		}
		if err != nil {
			return nil, err
		}
	}
	return g.witness, nil
}

// into exposes the sum of two public variables.
func (g *randomTranslationGenerator) into(tl *translator.Translator) error {
	priv := g.privacy()
	e := &expr.BinaryOp{
		Annotation: expr.Annotate(expr.Uint, priv),
		Op:         "+",
		L:          g.variable(expr.All),
		R:          g.variable(expr.All),
	}
	if _, err := tl.IntoCircuit(e); err != nil {
		return err
	}
	x, y := g.value(), g.value()
	if priv.IsAll() {
		g.witness = append(g.witness, x, y, add(x, y))
		return nil
	}
	randomness, key := g.value(), g.value()
	g.witness = append(g.witness, x, y, add(add(x, y), key), randomness, key)
	return nil
}

// check validates the ciphertext of a function argument.
func (g *randomTranslationGenerator) check(tl *translator.Translator) error {
	priv := g.privacy()
	p := &expr.Parameter{Annotation: expr.Annotate(expr.Uint, priv), Name: "arg"}
	if err := tl.CheckEncryptedInput(p); err != nil {
		return err
	}
	if priv.IsAll() {
		return nil
	}
	plain, randomness, key := g.value(), g.value(), g.value()
	g.witness = append(g.witness, add(plain, key), plain, randomness, key)
	return nil
}

// reveal publishes the plaintext of an owned variable.
func (g *randomTranslationGenerator) reveal(tl *translator.Translator) error {
	e := &expr.Reclassify{
		Annotation: expr.Annotate(expr.Uint, expr.All),
		X:          g.variable(expr.OwnedBy(owner)),
	}
	if _, err := tl.IntoCircuit(e); err != nil {
		return err
	}
	plain, key := g.value(), g.value()
	g.witness = append(g.witness, add(plain, key), key, plain)
	return nil
}
