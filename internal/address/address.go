package address

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HexLength is the number of hex digits in a canonical account address.
const HexLength = 64

// Standardize returns the canonical form of an account address: a 0x prefix
// followed by lower-case hex left-padded with zeros to 64 digits.
func Standardize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		trimmed = trimmed[2:]
	}
	trimmed = strings.ToLower(trimmed)
	if len(trimmed) < HexLength {
		trimmed = strings.Repeat("0", HexLength-len(trimmed)) + trimmed
	}
	return "0x" + trimmed
}

// Validate checks that raw is a hex address of at most 32 bytes.
func Validate(raw string) error {
	std := Standardize(raw)
	if len(std) != HexLength+2 {
		return fmt.Errorf("address too long: %s", raw)
	}
	if _, err := hexutil.Decode(std); err != nil {
		return fmt.Errorf("invalid address %q: %w", raw, err)
	}
	return nil
}
