package entity

import "errors"

var (
	ErrMissingCryptoType  = errors.New("missing required field: crypto type")
	ErrMissingAddress     = errors.New("missing required field: address")
	ErrInvalidPageLimit   = errors.New("page limit must be at least 1")
	ErrInvalidOffset      = errors.New("offset must not be negative")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrBalanceUnavailable = errors.New("balance unavailable")
)
