package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"cryptotracker.io/internal/domain/entity"
)

// dashboardResponse is the envelope of /<crypto>/dashboards/address/<address>:
// {"data": {"<address>": {"address": {...}, "transactions": [...]}}, "context": {...}}
type dashboardResponse struct {
	Data    json.RawMessage `json:"data"`
	Context json.RawMessage `json:"context"`
}

type responseContext struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// FetchBalance returns the balance summary of address, or nil if the explorer
// could not be reached or its response lacked any of the expected fields.
func (c *Client) FetchBalance(ctx context.Context, cryptoType, address string) *entity.Address {
	summary, err := c.balance(ctx, cryptoType, address)
	if err != nil {
		c.log(ctx).LogError(ctx, "Failed to get balance", err,
			"crypto_type", cryptoType,
			"address", address)
		return nil
	}

	c.log(ctx).LogDebug(ctx, "Fetched balance",
		"crypto_type", cryptoType,
		"address", address,
		"balance", summary.Balance,
		"received", summary.Received)
	return summary
}

// FetchTransactions returns the transactions at indexes offset up to, but not
// including, min(len, pageLimit) in upstream order.
//
// pageLimit bounds the index, not the window size: an offset at or past pageLimit
// yields nothing. Callers that page with offset=k*pageLimit depend on this, so it
// stays. The result is never nil.
func (c *Client) FetchTransactions(ctx context.Context, cryptoType, address string, pageLimit, offset int) []entity.Transaction {
	transactions := make([]entity.Transaction, 0)
	if offset < 0 {
		c.log(ctx).LogWarning(ctx, "Negative transaction offset",
			"crypto_type", cryptoType,
			"address", address,
			"offset", offset)
		return transactions
	}

	items, err := c.transactionList(ctx, cryptoType, address)
	if err != nil {
		c.log(ctx).LogError(ctx, "Failed to get transactions", err,
			"crypto_type", cryptoType,
			"address", address)
		return transactions
	}

	end := min(len(items), pageLimit)
	for i := offset; i < end; i++ {
		tx, err := c.transaction(ctx, items[i], cryptoType, address)
		if err != nil {
			// entries before i are kept
			c.log(ctx).LogError(ctx, "Failed to parse transaction", err,
				"crypto_type", cryptoType,
				"address", address,
				"index", i,
				"parsed", len(transactions))
			break
		}
		transactions = append(transactions, tx)
	}

	c.log(ctx).LogDebug(ctx, "Fetched transactions",
		"crypto_type", cryptoType,
		"address", address,
		"available", len(items),
		"returned", len(transactions))
	return transactions
}

func (c *Client) balance(ctx context.Context, cryptoType, address string) (*entity.Address, error) {
	entry, err := c.dashboard(ctx, cryptoType, address)
	if err != nil {
		return nil, err
	}

	summary, err := asObject(entry["address"], "address")
	if err != nil {
		return nil, err
	}

	balance, err := intField(summary, "balance")
	if err != nil {
		return nil, err
	}
	balanceUSD, err := decimalField(summary, "balance_usd")
	if err != nil {
		return nil, err
	}
	received, err := intField(summary, "received")
	if err != nil {
		return nil, err
	}
	receivedUSD, err := decimalField(summary, "received_usd")
	if err != nil {
		return nil, err
	}

	return &entity.Address{
		AddressID:   address,
		CryptoType:  cryptoType,
		Balance:     balance,
		BalanceUSD:  balanceUSD,
		Received:    received,
		ReceivedUSD: receivedUSD,
	}, nil
}

func (c *Client) transactionList(ctx context.Context, cryptoType, address string) ([]json.RawMessage, error) {
	entry, err := c.dashboard(ctx, cryptoType, address)
	if err != nil {
		return nil, err
	}

	raw, ok := entry["transactions"]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%w: transactions", errMissingField)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: transactions: %w", errDecode, err)
	}
	return items, nil
}

func (c *Client) transaction(ctx context.Context, raw json.RawMessage, cryptoType, address string) (entity.Transaction, error) {
	fields, err := asObject(raw, "transaction")
	if err != nil {
		return entity.Transaction{}, err
	}

	blockID, err := textField(fields, "block_id")
	if err != nil {
		return entity.Transaction{}, err
	}
	hash, err := textField(fields, "hash")
	if err != nil {
		return entity.Transaction{}, err
	}
	timeText, err := textField(fields, "time")
	if err != nil {
		return entity.Transaction{}, err
	}
	balanceChange, err := intField(fields, "balance_change")
	if err != nil {
		return entity.Transaction{}, err
	}

	return entity.Transaction{
		Address:       address,
		CryptoType:    cryptoType,
		BlockID:       blockID,
		Hash:          hash,
		Time:          c.parseTimestamp(ctx, timeText, DateFormat),
		BalanceChange: balanceChange,
	}, nil
}

// dashboard fetches the dashboard and returns the object keyed by address under data.
func (c *Client) dashboard(ctx context.Context, cryptoType, address string) (map[string]json.RawMessage, error) {
	resp, err := c.get(ctx, c.DashboardURL(cryptoType, address))
	if err != nil {
		return nil, err
	}

	var envelope dashboardResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", errDecode, err)
	}

	var upstream responseContext
	if len(envelope.Context) > 0 && json.Unmarshal(envelope.Context, &upstream) == nil && upstream.Error != "" {
		c.log(ctx).LogWarning(ctx, "Explorer reported an error",
			"status", resp.StatusCode,
			"code", upstream.Code,
			"upstream_error", upstream.Error)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &data); err != nil || data == nil {
		return nil, fmt.Errorf("%w: data", errMissingField)
	}

	raw, ok := lookupAddress(data, address)
	if !ok {
		return nil, fmt.Errorf("%w: data.%s", errMissingField, address)
	}
	return asObject(raw, "data."+address)
}

// lookupAddress prefers an exact key and falls back to a case-insensitive match,
// since some chains key the dashboard by the lower-cased address.
func lookupAddress(data map[string]json.RawMessage, address string) (json.RawMessage, bool) {
	if raw, ok := data[address]; ok {
		return raw, true
	}
	for key, raw := range data {
		if strings.EqualFold(key, address) {
			return raw, true
		}
	}
	return nil, false
}

func asObject(raw json.RawMessage, path string) (map[string]json.RawMessage, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("%w: %s", errMissingField, path)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errDecode, path, err)
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// textField returns a scalar as text: strings unquoted, anything else verbatim.
func textField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingField, name)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %s: %w", errDecode, name, err)
		}
		return s, nil
	}
	return string(raw), nil
}

// intField reads an integer leniently: non-numeric values read as 0 and
// fractional values are truncated. Only absence is an error.
func intField(fields map[string]json.RawMessage, name string) (int64, error) {
	text, err := textField(fields, name)
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	if d, err := decimal.NewFromString(text); err == nil {
		return d.IntPart(), nil
	}
	return 0, nil
}

func decimalField(fields map[string]json.RawMessage, name string) (decimal.Decimal, error) {
	text, err := textField(fields, name)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %w", errDecode, name, err)
	}
	return d, nil
}
