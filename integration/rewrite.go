package integration

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloakzk/zkcircuit/utils"
)

// ProofElements is the number of field elements of a proof of the default
// scheme, split 2/4/2 over the three pairing arguments of verifyTx.
const ProofElements = 8

// LibraryFile is the name of the shared library extracted from every
// verifier, relative to the output directory.
const LibraryFile = "verify_libs.sol"

const (
	generatedContract = "contract Verifier"
	libraryPragma     = "pragma solidity ^0.5.0;"
	wrapperPragma     = "pragma solidity ^0.4.0;"
)

//go:embed verify_libs.sol
var defaultLibrary string

var (
	verifySignature = regexp.MustCompile(`function verifyTx\(([^)]*)\)`)
	inputArity      = regexp.MustCompile(`uint\[([0-9]+)\] memory input`)
)

const wrapperTemplate = `
	function check_verify(uint[%d] memory proof, uint[%s] memory input) public{
		require(verifyTx(
		[proof[0], proof[1]],
		[[proof[2], proof[3]], [proof[4], proof[5]]],
		[proof[6], proof[7]],
		input));
	}
`

// PrependSource documents the circuit source at the top of the contract.
func PrependSource(contract, source string) string {
	return utils.PrependToLines(source, "// ") + "\n\n" + contract
}

// RenameContract renames the generated verifier contract to name.
func RenameContract(contract, name string) (string, error) {
	if !strings.Contains(contract, generatedContract) {
		return "", &FormatError{Rewrite: "rename contract", Marker: generatedContract}
	}
	return strings.ReplaceAll(contract, generatedContract, "contract "+name), nil
}

// LibraryImport is what replaces the library block in every verifier.
func LibraryImport() string {
	return wrapperPragma + "\nimport \"./" + LibraryFile + "\";\n"
}

// ExtractLibrary replaces the library block, which must occur verbatim, by
// an import of LibraryFile.
func ExtractLibrary(contract, library string) (string, error) {
	if library == "" || !strings.Contains(contract, library) {
		return "", &FormatError{Rewrite: "extract library", Marker: firstLine(library)}
	}
	return strings.Replace(contract, library, LibraryImport(), 1), nil
}

// LibraryFileContent returns the library as saved next to the verifiers,
// with the pragma of the importing contracts.
func LibraryFileContent(library string) string {
	return strings.Replace(library, libraryPragma, wrapperPragma, 1)
}

// AddWrapper appends check_verify to the last contract. The number of public
// inputs is read from the signature of verifyTx.
func AddWrapper(contract string) (string, error) {
	m := verifySignature.FindStringSubmatch(contract)
	if m == nil {
		return "", &FormatError{Rewrite: "add wrapper", Marker: "function verifyTx("}
	}
	n := inputArity.FindStringSubmatch(m[1])
	if n == nil {
		return "", &FormatError{Rewrite: "add wrapper", Marker: "uint[N] memory input"}
	}
	wrapper := fmt.Sprintf(wrapperTemplate, ProofElements, n[1])
	res, ok := utils.ReplaceLast(contract, "\n}", wrapper+"\n}")
	if !ok {
		return "", &FormatError{Rewrite: "add wrapper", Marker: `\n}`}
	}
	return res, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
