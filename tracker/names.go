package tracker

import "strconv"

// NameKind selects a fresh-name factory.
type NameKind int

const (
	// Param names circuit parameters backed by the host-side helper array.
	Param NameKind = iota
	// Temporary names circuit locals.
	Temporary
	Randomness
	Key
	Value
	nbNameKinds
)

var namePrefixes = [nbNameKinds]string{
	Param:      "param",
	Temporary:  "temp",
	Randomness: "randomness",
	Key:        "key",
	Value:      "value",
}

func (k NameKind) String() string {
	return namePrefixes[k]
}

// names hands out collision-free names, one monotonically increasing counter
// per kind.
type names struct {
	next [nbNameKinds]int
}

func (n *names) fresh(k NameKind) (string, int) {
	i := n.next[k]
	n.next[k]++
	return namePrefixes[k] + strconv.Itoa(i), i
}

func (n *names) count(k NameKind) int {
	return n.next[k]
}
