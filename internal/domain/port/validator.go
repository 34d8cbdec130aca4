package port

import "context"

// AddressValidator is the port for chain-specific address checks
type AddressValidator interface {
	Validate(ctx context.Context, cryptoType, address string) error
}
