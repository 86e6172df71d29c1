package translator

// DefaultKeyRegistry is the name under which the host contract references
// the public key infrastructure.
const DefaultKeyRegistry = "genPublicKeyInfrastructure"

// KeyRegistry renders the host-side lookup of a party's public key.
type KeyRegistry interface {
	PublicKey(owner string) string
}

// ContractRegistry looks keys up through a registry contract exposing getPk.
type ContractRegistry string

func (r ContractRegistry) PublicKey(owner string) string {
	return string(r) + ".getPk(" + owner + ")"
}
