package chain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BlockNumber returns the latest block number. A response without a result is
// a protocol error and aborts the run.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	resp, err := c.Call(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	if !resp.HasResult() {
		return 0, fmt.Errorf("eth_blockNumber: %w", ErrMissingResult)
	}
	var hex string
	if err := json.Unmarshal(resp.Result, &hex); err != nil {
		return 0, fmt.Errorf("eth_blockNumber: %w", err)
	}
	n, err := hexutil.DecodeUint64(hex)
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber: %w", err)
	}
	return n, nil
}

// BlockTransactions fetches the full transaction lists for blocks in a single
// batched request. A block with a missing or null result (not found, not yet
// mined) contributes zero transactions. Blocks are processed in submission
// order, preserving per-block transaction order.
func (c *Client) BlockTransactions(ctx context.Context, blocks []uint64) ([]Transaction, error) {
	reqs := make([]Request, len(blocks))
	for i, n := range blocks {
		reqs[i] = NewRequest(i, "eth_getBlockByNumber", hexutil.EncodeUint64(n), true)
	}

	resps, err := c.CallBatch(ctx, reqs)
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	for _, resp := range resps {
		if !resp.HasResult() {
			continue
		}
		var block struct {
			Transactions []rawTx `json:"transactions"`
		}
		if err := json.Unmarshal(resp.Result, &block); err != nil {
			return nil, fmt.Errorf("parsing block: %w", err)
		}
		for _, rt := range block.Transactions {
			txs = append(txs, rt.decode())
		}
	}
	return txs, nil
}
