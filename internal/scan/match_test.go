package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"walletscan/internal/chain"
)

func TestMatchesFromSide(t *testing.T) {
	tx := chain.Transaction{From: "0xABC", To: "0xDEF"}
	assert.True(t, Matches(tx, "0xabc"))
	assert.True(t, Matches(tx, "0xABC"))
}

func TestMatchesToSide(t *testing.T) {
	tx := chain.Transaction{From: "0xABC", To: "0xDEF"}
	assert.True(t, Matches(tx, "0xdef"))
}

func TestMatchesNeitherSide(t *testing.T) {
	tx := chain.Transaction{From: "0xABC", To: "0xDEF"}
	assert.False(t, Matches(tx, "0x123"))
}

func TestMatchesContractCreation(t *testing.T) {
	// No recipient: the To side must never match, not even an empty address.
	tx := chain.Transaction{From: "0xABC", To: ""}
	assert.False(t, Matches(tx, ""))
	assert.True(t, Matches(tx, "0xabc"))
}
