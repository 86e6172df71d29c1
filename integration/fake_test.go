package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const fakeVerifier = `
contract Verifier {
    using Pairing for *;
    function verifyTx(
            uint[2] memory a,
            uint[2][2] memory b,
            uint[2] memory c,
            uint[3] memory input
        ) public returns (bool r) {
        return true;
    }
}
`

const fakeProof = `{
    "proof": {
        "a": [0x01, 0x02],
        "b": [[0x03, 0x04], [0x05, 0x06]],
        "c": [0x07, 0x08],
    },
    "inputs": [01, 2, 0x0a],
}
`

// fakeToolchain stands in for the toolchain binary. It writes the artifacts
// the real one would produce.
type fakeToolchain struct {
	mu       sync.Mutex
	calls    [][]string
	verifier string
	proof    string
	fail     string
	// steps running per work dir, and whether two ever ran at once
	active  map[string]int
	overlap bool
	delay   time.Duration
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{
		verifier: defaultLibrary + fakeVerifier,
		proof:    fakeProof,
		active:   make(map[string]int),
	}
}

func (f *fakeToolchain) Run(ctx context.Context, dir string, binary string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{binary}, args...))
	f.active[dir]++
	if f.active[dir] > 1 {
		f.overlap = true
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active[dir]--
		f.mu.Unlock()
	}()
	time.Sleep(f.delay)

	if args[0] == f.fail {
		return []byte("error: " + args[0]), errors.New("exit status 1")
	}
	switch args[0] {
	case "compile":
		if _, err := os.Stat(filepath.Join(dir, args[2])); err != nil {
			return nil, err
		}
	case "export-verifier":
		return nil, os.WriteFile(filepath.Join(dir, verifierFile), []byte(f.verifier), 0o644)
	case "generate-proof":
		return nil, os.WriteFile(filepath.Join(dir, proofFile), []byte(f.proof), 0o644)
	}
	return nil, nil
}

func (f *fakeToolchain) overlapped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlap
}

func (f *fakeToolchain) steps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]string, len(f.calls))
	for i, c := range f.calls {
		res[i] = c[1]
	}
	return res
}
