package scan

import (
	"strings"

	"walletscan/internal/chain"
)

// Matches reports whether tx involves address as sender or receiver.
// Comparison is case-insensitive. Contract-creation transactions have no
// recipient and never match on the To side.
func Matches(tx chain.Transaction, address string) bool {
	if strings.EqualFold(tx.From, address) {
		return true
	}
	return tx.To != "" && strings.EqualFold(tx.To, address)
}

func anyMatch(txs []chain.Transaction, address string) bool {
	for _, tx := range txs {
		if Matches(tx, address) {
			return true
		}
	}
	return false
}
