package report

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// checksumAddress renders addr in EIP-55 mixed-case checksum form for
// display. Inputs that are not plain hex addresses are returned unchanged.
func checksumAddress(addr string) string {
	lower := strings.ToLower(strings.TrimPrefix(addr, "0x"))
	if len(lower) != 40 {
		return addr
	}
	if _, err := hex.DecodeString(lower); err != nil {
		return addr
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := hex.EncodeToString(h.Sum(nil))

	var result strings.Builder
	result.WriteString("0x")
	for i, c := range lower {
		// Uppercase a hex letter when the matching hash nibble is >= 8.
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			result.WriteByte(byte(c - 32))
		} else {
			result.WriteByte(byte(c))
		}
	}
	return result.String()
}
