package integration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolchainFailure is wrapped by every failed toolchain invocation.
	ErrToolchainFailure = errors.New("toolchain failure")
	// ErrFormatAssumptionViolated is wrapped when toolchain output lacks a
	// marker a rewrite depends on.
	ErrFormatAssumptionViolated = errors.New("toolchain output format assumption violated")
)

// ToolchainError reports a toolchain step that did not succeed. Compile
// failures carry the circuit source, proof failures the witness arguments.
type ToolchainError struct {
	Step   string
	Dir    string
	Source string
	Args   []string
	Output []byte
	Err    error
}

func (e *ToolchainError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s in %s: %v", e.Step, e.Dir, e.Err)
	if len(e.Args) > 0 {
		fmt.Fprintf(&sb, "\nargs: %s", strings.Join(e.Args, " "))
	}
	if len(e.Output) > 0 {
		fmt.Fprintf(&sb, "\noutput:\n%s", strings.TrimRight(string(e.Output), "\n"))
	}
	if e.Source != "" {
		fmt.Fprintf(&sb, "\nsource:\n%s", e.Source)
	}
	return sb.String()
}

func (e *ToolchainError) Unwrap() []error {
	return []error{ErrToolchainFailure, e.Err}
}

// FormatError names the rewrite that failed and the marker it looked for.
type FormatError struct {
	Rewrite string
	Marker  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s: marker %q not found", ErrFormatAssumptionViolated, e.Rewrite, e.Marker)
}

func (e *FormatError) Unwrap() error {
	return ErrFormatAssumptionViolated
}
