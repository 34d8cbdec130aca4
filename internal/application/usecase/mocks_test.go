package usecase

import (
	"context"

	"cryptotracker.io/internal/domain/entity"
)

// mockExplorer is a mock implementation of port.Explorer
type mockExplorer struct {
	fetchBalanceFunc      func(ctx context.Context, cryptoType, address string) *entity.Address
	fetchTransactionsFunc func(ctx context.Context, cryptoType, address string, pageLimit, offset int) []entity.Transaction
	calls                 int
}

func (m *mockExplorer) FetchBalance(ctx context.Context, cryptoType, address string) *entity.Address {
	m.calls++
	if m.fetchBalanceFunc != nil {
		return m.fetchBalanceFunc(ctx, cryptoType, address)
	}
	return nil
}

func (m *mockExplorer) FetchTransactions(ctx context.Context, cryptoType, address string, pageLimit, offset int) []entity.Transaction {
	m.calls++
	if m.fetchTransactionsFunc != nil {
		return m.fetchTransactionsFunc(ctx, cryptoType, address, pageLimit, offset)
	}
	return []entity.Transaction{}
}

// mockValidator is a mock implementation of port.AddressValidator
type mockValidator struct {
	err error
}

func (m *mockValidator) Validate(ctx context.Context, cryptoType, address string) error {
	return m.err
}
