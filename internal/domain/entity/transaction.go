package entity

import "time"

// Transaction is one ledger entry of an address, in the order the explorer returned it.
type Transaction struct {
	Address       string     `json:"address"`
	CryptoType    string     `json:"crypto_type"`
	BlockID       string     `json:"block_id"`
	Hash          string     `json:"hash"`
	Time          *time.Time `json:"time"` // nil when the upstream time could not be parsed
	BalanceChange int64      `json:"balance_change"`
}

// TransactionQuery selects a window of an address's transaction history.
type TransactionQuery struct {
	CryptoType string
	Address    string
	PageLimit  int
	Offset     int
}

// Validate validates the transaction query
func (q *TransactionQuery) Validate() error {
	if q.CryptoType == "" {
		return ErrMissingCryptoType
	}
	if q.Address == "" {
		return ErrMissingAddress
	}
	if q.PageLimit < 1 {
		return ErrInvalidPageLimit
	}
	if q.Offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}
