// Package report assembles the final human-readable summary of a wallet
// history run: creation block, transaction count, and the most recent
// transfers.
package report

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"

	"walletscan/internal/chain"
	"walletscan/internal/scan"
	"walletscan/internal/ui"
)

// maxShown caps how many of the most recent transactions are listed.
const maxShown = 5

// Render builds the display-ready summary for address from the creation
// search outcome and the collected transactions. currency labels the native
// unit (e.g. "AVAX").
func Render(address string, loc scan.Location, txs []chain.Transaction, currency string) string {
	if len(txs) == 0 {
		return ui.Meta("No transactions found for this address.")
	}

	var sb strings.Builder
	sb.WriteString(ui.StyleTitle.Render("Wallet History"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Address:          %s\n", ui.Addr(checksumAddress(address))))
	if loc.Found {
		sb.WriteString(fmt.Sprintf("Created at block: %s\n", ui.Val(fmt.Sprintf("%d", loc.Block))))
	}
	sb.WriteString(fmt.Sprintf("Transactions:     %s\n", ui.Val(fmt.Sprintf("%d", len(txs)))))
	if loc.Degraded {
		sb.WriteString(ui.Warn("some block ranges could not be fetched; results may be incomplete"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	t := ui.NewTable([]ui.Column{
		{Title: "Type", Width: 8},
		{Title: "Hash", Width: 14},
		{Title: "From", Width: 14},
		{Title: "To", Width: 14},
		{Title: "Value (" + currency + ")", Width: 14},
		{Title: "Block", Width: 10},
	})

	shown := txs
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for _, tx := range shown {
		t.AddRow(ui.Row{
			direction(tx, address),
			ui.TruncateAddr(tx.Hash),
			ui.TruncateAddr(checksumAddress(tx.From)),
			recipient(tx),
			FormatAmount(tx.Value),
			fmt.Sprintf("%d", tx.BlockNumber),
		})
	}
	sb.WriteString(t.Render())
	return sb.String()
}

func direction(tx chain.Transaction, address string) string {
	if strings.EqualFold(tx.From, address) {
		return "Sent"
	}
	return "Received"
}

func recipient(tx chain.Transaction) string {
	if tx.To == "" {
		return "(contract)"
	}
	return ui.TruncateAddr(checksumAddress(tx.To))
}

// FormatAmount converts a wei amount to whole native-currency units at four
// decimal places.
func FormatAmount(wei *big.Int) string {
	if wei == nil {
		return "0.0000"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, new(big.Float).SetUint64(params.Ether))
	return f.Text('f', 4)
}
