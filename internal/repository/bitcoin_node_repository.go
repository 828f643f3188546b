package repository

import (
	"context"
	"time"

	"go.uber.org/ratelimit"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/metrics"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/pkg/bitcoind"
)

// BitcoinNodeRepository wraps the JSON-RPC client with request pacing and
// metrics. Calls are never retried here; the next sync pass is the retry.
type BitcoinNodeRepository struct {
	client  *bitcoind.Client
	limiter ratelimit.Limiter
}

func NewBitcoinNodeRepository(client *bitcoind.Client, requestsPerSecond int) *BitcoinNodeRepository {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 25
	}
	return &BitcoinNodeRepository{
		client:  client,
		limiter: ratelimit.New(requestsPerSecond),
	}
}

func (r *BitcoinNodeRepository) GetBlockCount(ctx context.Context) (count int64, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveNodeRPC("get_block_count", err, started)
	}()
	r.limiter.Take()
	return r.client.GetBlockCount(ctx)
}

// PruneHeight reports the lowest height the node still has block data for.
// A node that never pruned reports zero.
func (r *BitcoinNodeRepository) PruneHeight(ctx context.Context) (height int64, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveNodeRPC("get_blockchain_info", err, started)
	}()
	r.limiter.Take()

	info, err := r.client.GetBlockChainInfo(ctx)
	if err != nil {
		return 0, err
	}
	return int64(info.PruneHeight), nil
}

func (r *BitcoinNodeRepository) GetBlockHash(ctx context.Context, height int64) (hash string, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveNodeRPC("get_block_hash", err, started)
	}()
	r.limiter.Take()
	return r.client.GetBlockHash(ctx, height)
}

func (r *BitcoinNodeRepository) GetBlockVerboseTx(ctx context.Context, hash string) (block *bitcoind.VerboseBlock, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveNodeRPC("get_block_verbose_tx", err, started)
	}()
	r.limiter.Take()
	return r.client.GetBlockVerboseTx(ctx, hash)
}
