// Package field encodes witness values as elements of the BN254 scalar
// field, the field every circuit parameter lives in.
package field

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrNotInField is returned for values that are not canonical scalar
	// field elements.
	ErrNotInField = errors.New("value is not in the scalar field")
	// ErrNotPackable is returned for public inputs that do not fit the
	// 128 bit lanes of the packed input hash.
	ErrNotPackable = errors.New("value does not fit a packed hash lane")
)

const laneBytes = 16

// Parse reads a decimal or 0x-prefixed hexadecimal number. Leading zeros
// never switch to octal.
func Parse(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, fmt.Errorf("%w: %q is not a number", ErrNotInField, s)
	}
	if v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotInField, s)
	}
	return v, nil
}

// Canonical returns the decimal form of a witness argument.
func Canonical(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// CanonicalAll applies Canonical to every argument, reporting the position of
// the first bad one.
func CanonicalAll(args []string) ([]string, error) {
	res := make([]string, len(args))
	for i, a := range args {
		c, err := Canonical(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		res[i] = c
	}
	return res, nil
}

// Element converts v to a field element.
func Element(v *big.Int) fr.Element {
	var e fr.Element
	e.SetBigInt(v)
	return e
}

// InputHash chains the packed SHA-256 over the public inputs the way the
// circuit's checkHash does: starting from a zero digest, every input is
// hashed together with the previous digest halves. It returns the two halves
// of the final digest.
func InputHash(inputs []*big.Int) (*big.Int, *big.Int, error) {
	d0, d1 := new(big.Int), new(big.Int)
	limit := new(big.Int).Lsh(big.NewInt(1), 8*laneBytes)
	for i, in := range inputs {
		if in.Sign() < 0 || in.Cmp(limit) >= 0 {
			return nil, nil, fmt.Errorf("%w: input %d", ErrNotPackable, i)
		}
		var block [4 * laneBytes]byte
		d0.FillBytes(block[0:laneBytes])
		d1.FillBytes(block[laneBytes : 2*laneBytes])
		in.FillBytes(block[3*laneBytes:])
		sum := sha256.Sum256(block[:])
		d0 = new(big.Int).SetBytes(sum[:laneBytes])
		d1 = new(big.Int).SetBytes(sum[laneBytes:])
	}
	return d0, d1, nil
}
