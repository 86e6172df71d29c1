package translator

import "errors"

// ErrUnsupportedPrivateType is returned when a value whose type has no
// private representation is asked to cross into the circuit encrypted.
var ErrUnsupportedPrivateType = errors.New("type cannot be represented privately")
