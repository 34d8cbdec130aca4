package entity

import "github.com/shopspring/decimal"

// Address is the balance snapshot of a single crypto address.
// AddressID and CryptoType always come from the caller, never from the explorer response.
type Address struct {
	AddressID   string          `json:"address_id"`
	CryptoType  string          `json:"crypto_type"`
	Balance     int64           `json:"balance"`
	BalanceUSD  decimal.Decimal `json:"balance_usd"`
	Received    int64           `json:"received"`
	ReceivedUSD decimal.Decimal `json:"received_usd"`
}
