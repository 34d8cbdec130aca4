package usecase

import (
	"context"

	"cryptotracker.io/internal/domain/entity"
	"cryptotracker.io/internal/domain/port"
)

// ListTransactionsUseCase handles transaction history retrieval
type ListTransactionsUseCase struct {
	explorer  port.Explorer
	validator port.AddressValidator
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase. validator may be nil.
func NewListTransactionsUseCase(explorer port.Explorer, validator port.AddressValidator) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		explorer:  explorer,
		validator: validator,
	}
}

// Execute returns the transactions selected by query. An empty history is not an error.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, query entity.TransactionQuery) ([]entity.Transaction, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if uc.validator != nil {
		if err := uc.validator.Validate(ctx, query.CryptoType, query.Address); err != nil {
			return nil, err
		}
	}

	return uc.explorer.FetchTransactions(ctx, query.CryptoType, query.Address, query.PageLimit, query.Offset), nil
}
