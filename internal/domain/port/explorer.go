package port

import (
	"context"

	"cryptotracker.io/internal/domain/entity"
)

// Explorer is the port for the upstream blockchain explorer.
// Failures are absorbed by the adapter: a nil address or an empty slice means nothing usable came back.
type Explorer interface {
	FetchBalance(ctx context.Context, cryptoType, address string) *entity.Address
	FetchTransactions(ctx context.Context, cryptoType, address string, pageLimit, offset int) []entity.Transaction
}
