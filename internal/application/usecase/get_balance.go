package usecase

import (
	"context"
	"fmt"

	"cryptotracker.io/internal/domain/entity"
	"cryptotracker.io/internal/domain/port"
)

// GetBalanceUseCase handles balance retrieval
type GetBalanceUseCase struct {
	explorer  port.Explorer
	validator port.AddressValidator
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase. validator may be nil.
func NewGetBalanceUseCase(explorer port.Explorer, validator port.AddressValidator) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		explorer:  explorer,
		validator: validator,
	}
}

// Execute retrieves the balance summary of an address
func (uc *GetBalanceUseCase) Execute(ctx context.Context, cryptoType, address string) (*entity.Address, error) {
	if cryptoType == "" {
		return nil, entity.ErrMissingCryptoType
	}
	if address == "" {
		return nil, entity.ErrMissingAddress
	}
	if uc.validator != nil {
		if err := uc.validator.Validate(ctx, cryptoType, address); err != nil {
			return nil, err
		}
	}

	summary := uc.explorer.FetchBalance(ctx, cryptoType, address)
	if summary == nil {
		return nil, fmt.Errorf("%w: %s %s", entity.ErrBalanceUnavailable, cryptoType, address)
	}
	return summary, nil
}
