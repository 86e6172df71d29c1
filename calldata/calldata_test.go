package calldata

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/cloakzk/zkcircuit/integration"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func word(v int64) []byte {
	return new(big.Int).SetInt64(v).FillBytes(make([]byte, 32))
}

func TestSelector(t *testing.T) {
	require.Equal(t, "check_verify(uint256[8],uint256[3])", Signature(3))
	require.Equal(t, crypto.Keccak256([]byte("check_verify(uint256[8],uint256[3])"))[:4], Selector(3))
	require.NotEqual(t, Selector(3), Selector(4))
}

func TestPack(t *testing.T) {
	proof := [integration.ProofElements]string{"1", "2", "0x03", "4", "5", "6", "7", "0x08"}
	data, err := Pack(proof, []string{"010", "0x0a"})
	require.NoError(t, err)
	require.Len(t, data, 4+32*10)
	require.Equal(t, Selector(2), data[:4])

	body := data[4:]
	for i := 0; i < 8; i++ {
		require.Equal(t, word(int64(i+1)), body[32*i:32*(i+1)], "proof element %d", i)
	}
	// leading zeros are decimal
	require.Equal(t, word(10), body[32*8:32*9])
	require.Equal(t, word(10), body[32*9:])
}

func TestPackRejectsMalformedElements(t *testing.T) {
	proof := [integration.ProofElements]string{"1", "2", "3", "4", "5", "6", "7", "x"}
	_, err := Pack(proof, nil)
	require.ErrorIs(t, err, ErrMalformedProof)

	proof[7] = "8"
	tooBig := "0x1" + hex.EncodeToString(make([]byte, 32))
	_, err = Pack(proof, []string{tooBig})
	require.ErrorIs(t, err, ErrMalformedProof)

	_, err = Pack(proof, []string{"-1"})
	require.ErrorIs(t, err, ErrMalformedProof)
}

func TestPackProof(t *testing.T) {
	p, err := integration.ParseProof([]byte(`{
		"proof": {"a": [0x01, 0x02], "b": [[0x03, 0x04], [0x05, 0x06]], "c": [0x07, 0x08]},
		"inputs": [0x01]
	}`))
	require.NoError(t, err)
	data, err := PackProof(p)
	require.NoError(t, err)
	require.Len(t, data, 4+32*9)
	require.Equal(t, word(1), data[4+32*8:])

	p, err = integration.ParseProof([]byte(`{"proof": {"a": [], "b": [], "c": []}, "inputs": []}`))
	require.NoError(t, err)
	_, err = PackProof(p)
	require.ErrorIs(t, err, integration.ErrFormatAssumptionViolated)
}
