// Package calldata encodes calls of the check_verify entry point that every
// rewritten verifier contract exposes.
package calldata

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/cloakzk/zkcircuit/integration"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrMalformedProof is returned for proof elements or inputs that are not
// uint256 values.
var ErrMalformedProof = errors.New("malformed proof element")

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Signature is the canonical signature of check_verify for n public inputs.
func Signature(n int) string {
	return fmt.Sprintf("check_verify(uint256[%d],uint256[%d])", integration.ProofElements, n)
}

// Selector is the 4 byte function selector of check_verify for n public
// inputs.
func Selector(n int) []byte {
	return crypto.Keccak256([]byte(Signature(n)))[:4]
}

// Pack encodes a check_verify call.
func Pack(proof [integration.ProofElements]string, inputs []string) ([]byte, error) {
	p, err := parseAll(proof[:])
	if err != nil {
		return nil, fmt.Errorf("proof: %w", err)
	}
	in, err := parseAll(inputs)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	proofType, err := abi.NewType(fmt.Sprintf("uint256[%d]", integration.ProofElements), "", nil)
	if err != nil {
		return nil, err
	}
	inputType, err := abi.NewType(fmt.Sprintf("uint256[%d]", len(inputs)), "", nil)
	if err != nil {
		return nil, err
	}
	args := abi.Arguments{{Name: "proof", Type: proofType}, {Name: "input", Type: inputType}}
	data, err := args.Pack(p, in)
	if err != nil {
		return nil, err
	}
	return append(Selector(len(inputs)), data...), nil
}

// PackProof encodes a check_verify call for a generated proof and the public
// inputs it records.
func PackProof(p *integration.Proof) ([]byte, error) {
	elements, err := p.Elements()
	if err != nil {
		return nil, err
	}
	return Pack(elements, p.PublicInputs())
}

func parseAll(values []string) ([]*big.Int, error) {
	res := make([]*big.Int, len(values))
	for i, s := range values {
		v, err := parse(s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		res[i] = v
	}
	return res, nil
}

func parse(s string) (*big.Int, error) {
	base, digits := 10, s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" || v.Sign() < 0 || v.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedProof, s)
	}
	return v, nil
}
