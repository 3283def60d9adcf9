package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"walletscan/internal/logging"
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 3
)

// ErrMissingResult reports a well-formed RPC response that lacks the required
// result field. Not retried; callers treat it as fatal.
var ErrMissingResult = errors.New("RPC response missing result")

// Request is a single JSON-RPC request object.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

// NewRequest builds a v2.0 request. IDs only need to be unique within a batch.
func NewRequest(id int, method string, params ...any) Request {
	if params == nil {
		params = []any{}
	}
	return Request{JSONRPC: "2.0", Method: method, Params: params, ID: id}
}

// Response is a single JSON-RPC response object.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// HasResult reports whether the response carries a non-null result.
func (r Response) HasResult() bool {
	return len(r.Result) > 0 && string(r.Result) != "null"
}

// RPCError is the JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// CallError wraps a transport or HTTP-status failure that survived every
// retry attempt.
type CallError struct {
	Attempts int
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("RPC call failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Client is a rate-limited, retrying JSON-RPC transport. It does not
// interpret payload semantics beyond the JSON-RPC envelope.
type Client struct {
	http    *resty.Client
	limiter Limiter
	log     *slog.Logger

	// Injectable for tests; defaults to a context-aware sleep.
	backoff func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client for endpoint. A nil limiter disables rate
// limiting.
func NewClient(endpoint string, limiter Limiter) *Client {
	if limiter == nil {
		limiter = nopLimiter{}
	}
	rc := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)
	return &Client{
		http:    rc,
		limiter: limiter,
		log:     logging.Logger(),
		backoff: sleepCtx,
	}
}

// Call submits a single request and returns its response. A JSON-RPC error
// object is returned as a *RPCError.
func (c *Client) Call(ctx context.Context, method string, params ...any) (Response, error) {
	data, err := c.post(ctx, NewRequest(1, method, params...))
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}
	if resp.Error != nil {
		return Response{}, resp.Error
	}
	return resp, nil
}

// CallBatch submits reqs as one JSON array. The returned slice is aligned to
// the request order, correlated by id — providers are not required to answer
// a batch in submission order. A request with no matching response yields a
// zero Response (null result).
func (c *Client) CallBatch(ctx context.Context, reqs []Request) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	data, err := c.post(ctx, reqs)
	if err != nil {
		return nil, err
	}
	var resps []Response
	if err := json.Unmarshal(data, &resps); err != nil {
		return nil, fmt.Errorf("parsing batch response: %w", err)
	}

	byID := make(map[int]Response, len(resps))
	for _, r := range resps {
		byID[r.ID] = r
	}
	out := make([]Response, len(reqs))
	for i, req := range reqs {
		out[i] = byID[req.ID]
	}
	return out, nil
}

// post sends body, retrying transient failures with exponential backoff
// (1s, 2s, 4s). Every outbound attempt consumes rate-limit budget; every
// failed attempt emits one log line.
func (c *Client) post(ctx context.Context, body any) ([]byte, error) {
	var last error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.http.R().SetContext(ctx).SetBody(body).Post("")
		switch {
		case err != nil:
			last = err
		case resp.IsError():
			last = fmt.Errorf("unexpected status %s", resp.Status())
		default:
			return resp.Body(), nil
		}

		c.log.Warn("RPC call failed", "attempt", attempt+1, "error", last.Error())
		if attempt < maxAttempts-1 {
			if err := c.backoff(ctx, time.Duration(1<<attempt)*time.Second); err != nil {
				return nil, err
			}
		}
	}
	return nil, &CallError{Attempts: maxAttempts, Err: last}
}
