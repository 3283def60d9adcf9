package scan

import (
	"context"
)

// DefaultBatchSize is the number of blocks fetched per batched RPC request.
const DefaultBatchSize = 1000

// Location is the outcome of a first-activity search.
type Location struct {
	Block uint64
	Found bool
	// Degraded is set when at least one failed batch was optimistically
	// skipped. The result may then miss earlier activity inside the skipped
	// window.
	Degraded bool
}

// Locator binary-searches a block range for the earliest block containing a
// transaction that involves an address.
type Locator struct {
	fetcher   Fetcher
	batchSize uint64
	obs       Observer
}

// NewLocator creates a Locator. batchSize 0 selects DefaultBatchSize; a nil
// observer discards events.
func NewLocator(f Fetcher, batchSize uint64, obs Observer) *Locator {
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &Locator{fetcher: f, batchSize: batchSize, obs: obs}
}

// Locate returns the first block in [low, high] with a transaction involving
// address.
//
// Coarse phase: binary search on "any match in [start, mid]", scanning each
// candidate range in fixed-size batches. A match shrinks the window to end at
// the matching batch's last block; no match advances start past mid. A batch
// whose fetch fails is reported and treated as containing no match — the
// search continues optimistically and the result is flagged Degraded.
//
// Fine phase: blocks of the narrowed window are fetched one by one; the first
// match wins. Failed blocks are reported and skipped.
func (l *Locator) Locate(ctx context.Context, address string, low, high uint64) (Location, error) {
	if low > high {
		return Location{}, nil
	}

	start, end := low, high
	degraded := false

	for start < end {
		mid := start + (end-start)/2
		matched := false

		for bs := start; bs <= mid; {
			be := bs + l.batchSize - 1
			if be > mid {
				be = mid
			}
			txs, err := l.fetcher.BlockTransactions(ctx, blockRange(bs, be))
			if err != nil {
				if ctx.Err() != nil {
					return Location{}, ctx.Err()
				}
				l.obs.BatchSkipped(bs, be, err)
				degraded = true
			} else if anyMatch(txs, address) {
				// First activity is no later than this batch's last block.
				matched = true
				end = be
				break
			}
			bs = be + 1
		}

		if !matched {
			start = mid + 1
		}
		l.obs.SearchNarrowed(start, end)
	}

	for b := start; ; b++ {
		txs, err := l.fetcher.BlockTransactions(ctx, []uint64{b})
		if err != nil {
			if ctx.Err() != nil {
				return Location{}, ctx.Err()
			}
			l.obs.BatchSkipped(b, b, err)
			degraded = true
		} else {
			for _, tx := range txs {
				if Matches(tx, address) {
					return Location{Block: b, Found: true, Degraded: degraded}, nil
				}
			}
		}
		if b >= end {
			break
		}
	}
	return Location{Degraded: degraded}, nil
}

func blockRange(from, to uint64) []uint64 {
	out := make([]uint64, 0, to-from+1)
	for b := from; ; b++ {
		out = append(out, b)
		if b == to {
			break
		}
	}
	return out
}
