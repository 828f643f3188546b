package service

import (
	"context"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/model"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/pkg/bitcoind"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	NodeClient interface {
		GetBlockCount(ctx context.Context) (int64, error)
		PruneHeight(ctx context.Context) (int64, error)
		GetBlockHash(ctx context.Context, height int64) (string, error)
		GetBlockVerboseTx(ctx context.Context, hash string) (*bitcoind.VerboseBlock, error)
	}
	ChainRepository interface {
		MaxBlockHeight(ctx context.Context) (int64, bool, error)
		StoreBlock(ctx context.Context, record model.BlockRecord) error
	}
)
