package scan

import (
	"context"
	"time"

	"walletscan/internal/chain"
)

// errPause is how long the scanner backs off after a failed batch before
// moving on, to avoid hot-looping against a struggling endpoint.
const errPause = time.Second

// Scanner collects transactions involving an address by walking a block range
// backward from its upper bound in fixed-size batches.
type Scanner struct {
	fetcher   Fetcher
	batchSize uint64
	obs       Observer

	// Injectable for tests; defaults to a context-aware sleep.
	pause func(ctx context.Context, d time.Duration) error
}

// NewScanner creates a Scanner. batchSize 0 selects DefaultBatchSize; a nil
// observer discards events.
func NewScanner(f Fetcher, batchSize uint64, obs Observer) *Scanner {
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &Scanner{fetcher: f, batchSize: batchSize, obs: obs, pause: pauseCtx}
}

// Scan walks [low, high] newest-to-oldest and returns up to max transactions
// involving address. Batches are processed in reverse-chronological order;
// within a batch, transactions keep provider order. A failed batch is
// reported, the scanner pauses briefly, and the cursor still advances —
// retries already happened in the transport. Returns fewer than max entries
// when the range is exhausted first.
func (s *Scanner) Scan(ctx context.Context, address string, low, high uint64, max int) ([]chain.Transaction, error) {
	var collected []chain.Transaction
	if max <= 0 || low > high {
		return collected, nil
	}

	cursor := high
	for cursor >= low && len(collected) < max {
		batchStart := low
		if cursor >= low+s.batchSize {
			batchStart = cursor - s.batchSize + 1
		}

		txs, err := s.fetcher.BlockTransactions(ctx, blockRange(batchStart, cursor))
		if err != nil {
			if ctx.Err() != nil {
				return collected, ctx.Err()
			}
			s.obs.BatchSkipped(batchStart, cursor, err)
			if err := s.pause(ctx, errPause); err != nil {
				return collected, err
			}
		} else {
			for _, tx := range txs {
				if !Matches(tx, address) {
					continue
				}
				collected = append(collected, tx)
				if len(collected) == max {
					break
				}
			}
			s.obs.TransactionsCollected(len(collected))
		}

		// Progress is reported regardless of batch success.
		s.obs.BlocksScanned(cursor - batchStart + 1)

		if batchStart == low {
			break
		}
		cursor = batchStart - 1
	}
	return collected, nil
}

func pauseCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
