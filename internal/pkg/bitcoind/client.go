// Package bitcoind implements a minimal JSON-RPC client for a bitcoind node.
//
// Each call is a single synchronous HTTP exchange authenticated with static
// basic-auth credentials. The client never retries: transient failures are
// surfaced to the caller, whose next synchronization pass is the retry
// mechanism. Failures are classified into TransportError, ProtocolError and
// DecodeError so callers branch structurally instead of parsing error text.
package bitcoind

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client talks to a single bitcoind node.
type Client struct {
	endpoint   string
	user       string
	password   string
	httpClient *http.Client
}

// NewClient returns a Client for the node at endpoint. A non-positive timeout
// falls back to 30s.
func NewClient(endpoint, user, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		user:       user,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Error  *rpcError       `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Call performs one JSON-RPC exchange and unmarshals the result field into
// result when it is non-nil.
func (c *Client) Call(ctx context.Context, method string, params []any, result any) error {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "1.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return &TransportError{Method: method, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	defer res.Body.Close()

	// bitcoind answers RPC-level failures with a non-200 status AND a JSON
	// error body, so the body is decoded before the status is judged.
	var data rpcResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		if res.StatusCode != http.StatusOK {
			return &TransportError{Method: method, Err: fmt.Errorf("http status %d", res.StatusCode)}
		}
		return &DecodeError{Method: method, Err: err}
	}

	if data.Error != nil {
		return &ProtocolError{Method: method, Code: data.Error.Code, Message: data.Error.Message}
	}
	if res.StatusCode != http.StatusOK {
		return &TransportError{Method: method, Err: fmt.Errorf("http status %d", res.StatusCode)}
	}

	if result == nil {
		return nil
	}
	if len(data.Result) == 0 || bytes.Equal(data.Result, []byte("null")) {
		return &DecodeError{Method: method, Err: errors.New("missing result")}
	}
	if err := json.Unmarshal(data.Result, result); err != nil {
		return &DecodeError{Method: method, Err: err}
	}
	return nil
}

// GetBlockCount returns the height of the node's best chain.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.Call(ctx, "getblockcount", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockChainInfo returns the node's chain state, including the prune
// height when the node prunes.
func (c *Client) GetBlockChainInfo(ctx context.Context) (*btcjson.GetBlockChainInfoResult, error) {
	var info btcjson.GetBlockChainInfoResult
	if err := c.Call(ctx, "getblockchaininfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBlockHash returns the hash of the block at the given height.
func (c *Client) GetBlockHash(ctx context.Context, height int64) (string, error) {
	var hash string
	if err := c.Call(ctx, "getblockhash", []any{height}, &hash); err != nil {
		return "", err
	}
	if _, err := chainhash.NewHashFromStr(hash); err != nil {
		return "", &DecodeError{Method: "getblockhash", Err: fmt.Errorf("invalid block hash %q: %w", hash, err)}
	}
	return hash, nil
}

// GetBlockVerboseTx fetches a block at verbosity 2 so the full transaction
// detail arrives embedded and no per-transaction round-trip is needed.
func (c *Client) GetBlockVerboseTx(ctx context.Context, hash string) (*VerboseBlock, error) {
	var block VerboseBlock
	if err := c.Call(ctx, "getblock", []any{hash, 2}, &block); err != nil {
		return nil, err
	}
	return &block, nil
}
