package chain

import (
	"math/big"
	"strings"
)

// Transaction is a simplified native-transfer record decoded from a block's
// transaction list.
type Transaction struct {
	Hash        string
	From        string
	To          string // empty for contract-creation transactions
	Value       *big.Int
	BlockNumber uint64
}

// rawTx mirrors the wire shape of a full transaction object.
type rawTx struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber string `json:"blockNumber"`
}

func (rt rawTx) decode() Transaction {
	tx := Transaction{
		Hash:  rt.Hash,
		From:  rt.From,
		To:    rt.To,
		Value: new(big.Int),
	}
	if v, ok := parseBigHex(rt.Value); ok {
		tx.Value = v
	}
	if bn, ok := parseBigHex(rt.BlockNumber); ok {
		tx.BlockNumber = bn.Uint64()
	}
	return tx
}

// parseBigHex parses a 0x-prefixed hex quantity. Values may exceed 64 bits.
func parseBigHex(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 16)
}
