package usecase

import (
	"context"
	"errors"
	"testing"

	"cryptotracker.io/internal/domain/entity"
)

func TestListTransactionsUseCase_Execute(t *testing.T) {
	history := []entity.Transaction{
		{Address: "addr", CryptoType: "bitcoin", BlockID: "1", Hash: "a", BalanceChange: 10},
		{Address: "addr", CryptoType: "bitcoin", BlockID: "2", Hash: "b", BalanceChange: -4},
	}

	tests := []struct {
		name         string
		query        entity.TransactionQuery
		validatorErr error
		explorerRes  []entity.Transaction
		wantErr      error
		wantLen      int
		wantCalls    int
	}{
		{
			name:        "transactions returned in upstream order",
			query:       entity.TransactionQuery{CryptoType: "bitcoin", Address: "addr", PageLimit: 10},
			explorerRes: history,
			wantLen:     2,
			wantCalls:   1,
		},
		{
			name:        "empty history is not an error",
			query:       entity.TransactionQuery{CryptoType: "bitcoin", Address: "addr", PageLimit: 10, Offset: 60},
			explorerRes: []entity.Transaction{},
			wantLen:     0,
			wantCalls:   1,
		},
		{
			name:      "invalid page limit",
			query:     entity.TransactionQuery{CryptoType: "bitcoin", Address: "addr"},
			wantErr:   entity.ErrInvalidPageLimit,
			wantCalls: 0,
		},
		{
			name:      "negative offset",
			query:     entity.TransactionQuery{CryptoType: "bitcoin", Address: "addr", PageLimit: 10, Offset: -2},
			wantErr:   entity.ErrInvalidOffset,
			wantCalls: 0,
		},
		{
			name:         "address rejected",
			query:        entity.TransactionQuery{CryptoType: "bitcoin", Address: "addr", PageLimit: 10},
			validatorErr: entity.ErrInvalidAddress,
			wantErr:      entity.ErrInvalidAddress,
			wantCalls:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			explorer := &mockExplorer{
				fetchTransactionsFunc: func(ctx context.Context, cryptoType, address string, pageLimit, offset int) []entity.Transaction {
					gotLimit, gotOffset = pageLimit, offset
					return tt.explorerRes
				},
			}

			useCase := NewListTransactionsUseCase(explorer, &mockValidator{err: tt.validatorErr})
			result, err := useCase.Execute(context.Background(), tt.query)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ListTransactionsUseCase.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if explorer.calls != tt.wantCalls {
				t.Errorf("explorer calls = %v, want %v", explorer.calls, tt.wantCalls)
			}
			if tt.wantErr != nil {
				return
			}
			if len(result) != tt.wantLen {
				t.Errorf("len(Result) = %v, want %v", len(result), tt.wantLen)
			}
			if gotLimit != tt.query.PageLimit || gotOffset != tt.query.Offset {
				t.Errorf("explorer got limit/offset %d/%d, want %d/%d", gotLimit, gotOffset, tt.query.PageLimit, tt.query.Offset)
			}
			for i := range result {
				if result[i].Hash != tt.explorerRes[i].Hash {
					t.Errorf("Result[%d].Hash = %v, want %v", i, result[i].Hash, tt.explorerRes[i].Hash)
				}
			}
		})
	}
}
