package postgres

import (
	"context"
	"time"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/metrics"
)

// MaxBlockHeight reports the highest stored block height. The second return
// is false when no blocks have been stored yet.
func (r *Repository) MaxBlockHeight(ctx context.Context) (height int64, ok bool, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveChainRepository("max_block_height", err, started)
	}()

	var max *int64
	if err := r.pool.QueryRow(ctx, `SELECT MAX(height) FROM blocks`).Scan(&max); err != nil {
		return 0, false, &DatabaseError{Operation: "max block height", Err: err}
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}
