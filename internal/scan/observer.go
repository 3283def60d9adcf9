package scan

import (
	"context"
	"log/slog"

	"walletscan/internal/chain"
)

// Fetcher supplies the transactions of a set of blocks. Implemented by
// *chain.Client; faked in tests.
type Fetcher interface {
	BlockTransactions(ctx context.Context, blocks []uint64) ([]chain.Transaction, error)
}

// Observer receives search and scan events. Implementations must not block;
// the algorithms call them synchronously. The algorithmic decisions (skip a
// batch, narrow the window) never depend on the observer.
type Observer interface {
	// SearchNarrowed reports the locator's window after each coarse iteration.
	SearchNarrowed(start, end uint64)
	// BatchSkipped reports a block range dropped because its fetch failed.
	BatchSkipped(from, to uint64, err error)
	// BlocksScanned reports forward progress of the reverse scanner.
	BlocksScanned(count uint64)
	// TransactionsCollected reports the scanner's running match total.
	TransactionsCollected(total int)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) SearchNarrowed(start, end uint64)        {}
func (NopObserver) BatchSkipped(from, to uint64, err error) {}
func (NopObserver) BlocksScanned(count uint64)              {}
func (NopObserver) TransactionsCollected(total int)         {}

// LogObserver writes events to a structured logger.
type LogObserver struct {
	Log *slog.Logger
}

func (o LogObserver) SearchNarrowed(start, end uint64) {
	o.Log.Debug("search window narrowed", "start", start, "end", end)
}

func (o LogObserver) BatchSkipped(from, to uint64, err error) {
	o.Log.Warn("block batch skipped", "from", from, "to", to, "error", err.Error())
}

func (o LogObserver) BlocksScanned(count uint64) {
	o.Log.Debug("blocks scanned", "count", count)
}

func (o LogObserver) TransactionsCollected(total int) {
	o.Log.Debug("transactions collected", "total", total)
}
