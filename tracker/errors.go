package tracker

import (
	"errors"
	"fmt"
)

// ErrLedgerMisuse marks a violated contract of the tracker. It signals a bug
// in the caller, never bad input, and is raised by panicking.
var ErrLedgerMisuse = errors.New("ledger misuse")

func misuse(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrLedgerMisuse, fmt.Sprintf(format, args...)))
}
