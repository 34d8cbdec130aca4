package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	ltcchaincfg "github.com/ltcsuite/ltcd/chaincfg"
	"github.com/ltcsuite/ltcd/ltcutil"

	"cryptotracker.io/internal/domain/entity"
	"cryptotracker.io/internal/domain/port"
	"cryptotracker.io/internal/infrastructure/logger"
)

// base58 version bytes (P2PKH, P2SH) of chains without a Go address package
var (
	dogecoinVersions = []byte{0x1e, 0x16}
	dashVersions     = []byte{0x4c, 0x10}
)

const hash160Size = 20

// ChainAddressValidator rejects addresses that cannot belong to the chain named by
// the explorer crypto type. Chains it does not know are passed through.
type ChainAddressValidator struct {
	logger logger.Logger
}

// NewChainAddressValidator creates a new address validator
func NewChainAddressValidator(logger logger.Logger) port.AddressValidator {
	return &ChainAddressValidator{
		logger: logger,
	}
}

// Validate checks address against the mainnet rules of cryptoType
func (v *ChainAddressValidator) Validate(ctx context.Context, cryptoType, address string) error {
	if address == "" {
		return entity.ErrMissingAddress
	}

	var err error
	switch strings.ToLower(cryptoType) {
	case "bitcoin":
		err = validateBitcoin(address)
	case "litecoin":
		err = validateLitecoin(address)
	case "ethereum":
		if !common.IsHexAddress(address) {
			err = errors.New("not a 20-byte hex address")
		}
	case "dogecoin":
		err = validateBase58Check(address, dogecoinVersions)
	case "dash":
		err = validateBase58Check(address, dashVersions)
	default:
		return nil
	}

	if err != nil {
		v.logger.LogWarning(ctx, "Address rejected",
			"crypto_type", cryptoType,
			"address", address,
			"reason", err.Error())
		return fmt.Errorf("%w: %s address %q: %w", entity.ErrInvalidAddress, cryptoType, address, err)
	}
	return nil
}

func validateBitcoin(address string) error {
	addr, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
	if err != nil {
		return err
	}
	if !addr.IsForNet(&chaincfg.MainNetParams) {
		return errors.New("not a mainnet address")
	}
	return nil
}

func validateLitecoin(address string) error {
	addr, err := ltcutil.DecodeAddress(address, &ltcchaincfg.MainNetParams)
	if err != nil {
		return err
	}
	if !addr.IsForNet(&ltcchaincfg.MainNetParams) {
		return errors.New("not a mainnet address")
	}
	return nil
}

func validateBase58Check(address string, versions []byte) error {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return err
	}
	if len(payload) != hash160Size {
		return fmt.Errorf("payload is %d bytes, want %d", len(payload), hash160Size)
	}
	for _, v := range versions {
		if version == v {
			return nil
		}
	}
	return fmt.Errorf("unknown version byte 0x%02x", version)
}
