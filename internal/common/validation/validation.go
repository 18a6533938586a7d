package validation

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

const (
	// Longest accepted decimal form of a 256-bit value
	MaxDecimalLength = 78
	// 0x plus 64 hex digits
	MaxHexLength = 66
	// Payment ids come from the relay, usually a transaction hash
	MaxPaymentIDLength = 128
)

// ParseAddress parses a 0x-prefixed 20-byte account address
func ParseAddress(value, fieldName string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Address{}, fmt.Errorf("%s cannot be empty", fieldName)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s is not a valid address", fieldName)
	}
	return common.HexToAddress(value), nil
}

// ParseNonZeroAddress is ParseAddress that also rejects the zero address
func ParseNonZeroAddress(value, fieldName string) (common.Address, error) {
	addr, err := ParseAddress(value, fieldName)
	if err != nil {
		return addr, err
	}
	if addr == (common.Address{}) {
		return addr, fmt.Errorf("%s cannot be the zero address", fieldName)
	}
	return addr, nil
}

// ParseHash parses a 0x-prefixed 32-byte hash
func ParseHash(value, fieldName string) (common.Hash, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Hash{}, fmt.Errorf("%s cannot be empty", fieldName)
	}
	raw, err := hexutil.Decode(value)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s is not valid hex: %v", fieldName, err)
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%s must be %d bytes, got %d", fieldName, common.HashLength, len(raw))
	}
	return common.BytesToHash(raw), nil
}

// ParseUint256 parses a decimal or 0x-prefixed hex unsigned 256-bit value.
// Hex input may carry leading zeros so fixed-width secrets round trip.
func ParseUint256(value, fieldName string) (*uint256.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		digits := value[2:]
		if digits == "" || len(value) > MaxHexLength || !isHexDigits(digits) {
			return nil, fmt.Errorf("%s is not a valid 256-bit hex value", fieldName)
		}
		b, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return nil, fmt.Errorf("%s is not a valid 256-bit hex value", fieldName)
		}
		v, overflow := uint256.FromBig(b)
		if overflow {
			return nil, fmt.Errorf("%s exceeds 256 bits", fieldName)
		}
		return v, nil
	}

	if len(value) > MaxDecimalLength {
		return nil, fmt.Errorf("%s exceeds 256 bits", fieldName)
	}
	v, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid unsigned integer: %v", fieldName, err)
	}
	return v, nil
}

// ParsePositiveUint256 is ParseUint256 that also rejects zero
func ParsePositiveUint256(value, fieldName string) (*uint256.Int, error) {
	v, err := ParseUint256(value, fieldName)
	if err != nil {
		return nil, err
	}
	if v.IsZero() {
		return nil, fmt.Errorf("%s must be positive", fieldName)
	}
	return v, nil
}

// ValidateLotteryID checks that id is a uuid as issued by the service
func ValidateLotteryID(id string) error {
	if id == "" {
		return fmt.Errorf("lottery id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("lottery id is not a valid uuid")
	}
	return nil
}

// ValidatePaymentID checks an external payment id: 1 to MaxPaymentIDLength
// printable ASCII characters without spaces
func ValidatePaymentID(id, fieldName string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if len(id) > MaxPaymentIDLength {
		return fmt.Errorf("%s exceeds %d characters", fieldName, MaxPaymentIDLength)
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return fmt.Errorf("%s contains an invalid character", fieldName)
		}
	}
	return nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
