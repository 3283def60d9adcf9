package chain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletscan/internal/logging"
)

func init() {
	logging.Discard()
}

// newTestClient builds a client against url with no rate limit and an
// instant, recorded backoff.
func newTestClient(url string) (*Client, *[]time.Duration) {
	c := NewClient(url, nil)
	waits := &[]time.Duration{}
	c.backoff = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	return c, waits
}

// rpcMock serves a fixed JSON-RPC result per method.
func rpcMock(t *testing.T, responses map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]any{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

func TestCallReturnsResult(t *testing.T) {
	srv := rpcMock(t, map[string]any{"eth_blockNumber": "0x10"})
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	resp, err := c.Call(context.Background(), "eth_blockNumber")

	require.NoError(t, err)
	assert.Equal(t, `"0x10"`, string(resp.Result))
}

func TestCallRPCError(t *testing.T) {
	srv := rpcMock(t, nil)
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	_, err := c.Call(context.Background(), "eth_unknown")

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.Code)
}

func TestCallRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c, waits := newTestClient(srv.URL)
	resp, err := c.Call(context.Background(), "eth_blockNumber")

	require.NoError(t, err, "two failures then success must not surface an error")
	assert.Equal(t, `"0x1"`, string(resp.Result))
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits, "exponential backoff between attempts")
}

func TestCallFailsAfterThreeAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	_, err := c.Call(context.Background(), "eth_blockNumber")

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, 3, callErr.Attempts)
	assert.Equal(t, int32(3), hits.Load())
}

func TestCallConsumesRateBudgetPerAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	limiter := &countingLimiter{}
	c := NewClient(srv.URL, limiter)
	c.backoff = func(ctx context.Context, d time.Duration) error { return nil }

	_, err := c.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.Equal(t, 3, limiter.waits)
}

type countingLimiter struct{ waits int }

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.waits++
	return ctx.Err()
}

func TestCallBatchCorrelatesByID(t *testing.T) {
	// Answer batches in reverse order: correlation must use ids, not position.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqs []Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqs))

		out := make([]map[string]any, 0, len(reqs))
		for i := len(reqs) - 1; i >= 0; i-- {
			out = append(out, map[string]any{
				"jsonrpc": "2.0",
				"id":      reqs[i].ID,
				"result":  reqs[i].Params[0],
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out) //nolint:errcheck
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	reqs := []Request{
		NewRequest(0, "eth_getBlockByNumber", "0xa", true),
		NewRequest(1, "eth_getBlockByNumber", "0xb", true),
		NewRequest(2, "eth_getBlockByNumber", "0xc", true),
	}
	resps, err := c.CallBatch(context.Background(), reqs)

	require.NoError(t, err)
	require.Len(t, resps, 3)
	assert.Equal(t, `"0xa"`, string(resps[0].Result))
	assert.Equal(t, `"0xb"`, string(resps[1].Result))
	assert.Equal(t, `"0xc"`, string(resps[2].Result))
}

func TestCallBatchMissingResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqs []Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqs))

		// Only answer the first request.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      reqs[0].ID,
			"result":  "0x1",
		}})
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	resps, err := c.CallBatch(context.Background(), []Request{
		NewRequest(0, "eth_getBlockByNumber", "0x1", true),
		NewRequest(1, "eth_getBlockByNumber", "0x2", true),
	})

	require.NoError(t, err)
	require.Len(t, resps, 2)
	assert.True(t, resps[0].HasResult())
	assert.False(t, resps[1].HasResult(), "unanswered request must read as a null result")
}

func TestCallBatchEmpty(t *testing.T) {
	c, _ := newTestClient("http://unused.invalid")
	resps, err := c.CallBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, resps)
}

func TestCallTransportError(t *testing.T) {
	c, _ := newTestClient("http://127.0.0.1:0")
	_, err := c.Call(context.Background(), "eth_blockNumber")

	var callErr *CallError
	assert.True(t, errors.As(err, &callErr))
}
