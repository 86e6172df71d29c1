package integration

import (
	"context"
	"os/exec"
)

// Runner executes a toolchain command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir string, binary string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
