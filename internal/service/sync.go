package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/metrics"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/pkg/bitcoind"
)

// SyncService brings the relational store up to date with the node's chain.
// Each pass is independent: the resume point is recomputed from the store,
// so a crashed or aborted pass costs nothing but time.
type SyncService struct {
	node   NodeClient
	store  ChainRepository
	mapper *BlockMapper
	logger *zap.Logger
}

func NewSyncService(node NodeClient, store ChainRepository, network string, logger *zap.Logger) (*SyncService, error) {
	mapper, err := NewBlockMapper(network)
	if err != nil {
		return nil, err
	}
	return &SyncService{
		node:   node,
		store:  store,
		mapper: mapper,
		logger: logger,
	}, nil
}

// RunPass performs one sync pass. Failures abort the pass at the last
// stored height; the next pass is the retry. Heights the node has pruned
// are skipped, not retried.
func (s *SyncService) RunPass(ctx context.Context) error {
	started := time.Now()
	outcome := "aborted"
	defer func() {
		metrics.ObserveSyncPass(outcome, started)
	}()

	lastSynced, exists, err := s.store.MaxBlockHeight(ctx)
	if err != nil {
		return fmt.Errorf("resume point: %w", err)
	}
	if !exists {
		lastSynced = 0
	}

	chainHeight, err := s.node.GetBlockCount(ctx)
	if err != nil {
		return fmt.Errorf("get chain height: %w", err)
	}

	// Pruned nodes refuse getblock below their prune height, so the pass
	// starts no lower than that. A failed probe is treated as unpruned;
	// the pass then discovers any pruned heights one skip at a time.
	var pruneHeight int64
	if ph, err := s.node.PruneHeight(ctx); err != nil {
		s.logger.Warn("prune height unavailable, assuming unpruned node", zap.Error(err))
	} else {
		pruneHeight = ph
	}

	startHeight := lastSynced + 1
	if pruneHeight > startHeight {
		startHeight = pruneHeight
	}

	if chainHeight <= startHeight {
		outcome = "idle"
		s.logger.Info("store is up to date with chain",
			zap.Int64("last_synced", lastSynced),
			zap.Int64("chain_height", chainHeight))
		return nil
	}

	s.logger.Info("starting sync pass",
		zap.Int64("start_height", startHeight),
		zap.Int64("chain_height", chainHeight))

	for height := startHeight; height <= chainHeight; height++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.syncHeight(ctx, height); err != nil {
			if bitcoind.IsPrunedBlock(err) {
				s.logger.Warn("skipping pruned block", zap.Int64("height", height))
				metrics.AddPrunedSkip()
				continue
			}
			s.logger.Error("sync pass aborted",
				zap.Int64("height", height),
				zap.Error(err))
			return fmt.Errorf("sync height %d: %w", height, err)
		}

		metrics.AddBlockStored()
		metrics.SetLastSyncedHeight(height)
	}

	outcome = "complete"
	s.logger.Info("sync pass complete",
		zap.Int64("start_height", startHeight),
		zap.Int64("chain_height", chainHeight))
	return nil
}

func (s *SyncService) syncHeight(ctx context.Context, height int64) error {
	hash, err := s.node.GetBlockHash(ctx, height)
	if err != nil {
		return fmt.Errorf("get block hash: %w", err)
	}

	block, err := s.node.GetBlockVerboseTx(ctx, hash)
	if err != nil {
		return fmt.Errorf("get block %s: %w", hash, err)
	}

	record, err := s.mapper.MapBlock(block)
	if err != nil {
		return fmt.Errorf("map block %s: %w", hash, err)
	}

	if err := s.store.StoreBlock(ctx, record); err != nil {
		return fmt.Errorf("store block %s: %w", hash, err)
	}

	s.logger.Info("stored block",
		zap.Int64("height", height),
		zap.String("hash", hash),
		zap.Int("transactions", len(record.Transactions)))
	return nil
}
