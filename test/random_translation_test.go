package test

import (
	"math/big"
	"testing"

	"github.com/cloakzk/zkcircuit/assembler"
	"github.com/cloakzk/zkcircuit/tracker"
	"github.com/cloakzk/zkcircuit/translator"
)

func testRandomTranslation(t *testing.T, conf *randomTranslationConfig, seedL int, seedR int) {
	a := NewAssert(t)
	for seed := seedL; seed <= seedR; seed++ {
		conf.seed = seed
		rtg := newRandomTranslationGenerator(conf)
		tr := tracker.New()
		values, err := rtg.run(translator.New(tr))
		if err != nil {
			t.Fatal(err)
		}
		a.LedgerConsistent(tr)

		p, ok := assembler.Assemble(tr)
		if !ok {
			continue
		}
		a.SingleHashGuard(p)

		witness, err := CompleteWitness(p, values)
		if err != nil {
			t.Fatal(err)
		}
		a.ProveSucceeded(p, witness)

		// the first parameter is always public, so the stale hash must reject it
		witness[0] = new(big.Int).Add(witness[0], big.NewInt(1))
		a.ProveFailed(p, witness)
	}
}

func TestRandomTranslation1(t *testing.T) {
	testRandomTranslation(t, &randomTranslationConfig{
		nbOps:         randRange{1, 10},
		intoPercent:   40,
		checkPercent:  70,
		ownedPercent:  50,
		revealPercent: 100,
	}, 1, 200)
}

func TestRandomTranslation2(t *testing.T) {
	testRandomTranslation(t, &randomTranslationConfig{
		nbOps:         randRange{50, 50},
		intoPercent:   30,
		checkPercent:  50,
		ownedPercent:  80,
		revealPercent: 80,
	}, 11, 20)
}

func TestRandomTranslation3(t *testing.T) {
	testRandomTranslation(t, &randomTranslationConfig{
		nbOps:         randRange{1, 1},
		intoPercent:   100,
		checkPercent:  100,
		ownedPercent:  0,
		revealPercent: 100,
	}, 1, 20)
}
