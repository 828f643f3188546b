package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/metrics"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/model"
)

// StoreBlock writes a block and its whole transaction tree in one database
// transaction. A failure anywhere rolls back the entire block, so a stored
// height is always a complete height.
func (r *Repository) StoreBlock(ctx context.Context, record model.BlockRecord) (err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveChainRepository("store_block", err, started)
	}()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &DatabaseError{Operation: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var blockID int64
	err = tx.QueryRow(ctx, `
INSERT INTO blocks (hash, height, version, timestamp, size, weight, merkle_root, nonce, bits, difficulty, previous_hash, next_hash)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id
`,
		record.Block.Hash,
		record.Block.Height,
		record.Block.Version,
		record.Block.Timestamp,
		record.Block.Size,
		record.Block.Weight,
		record.Block.MerkleRoot,
		int64(record.Block.Nonce),
		record.Block.Bits,
		record.Block.Difficulty,
		record.Block.PreviousHash,
		record.Block.NextHash,
	).Scan(&blockID)
	if err != nil {
		return &DatabaseError{Operation: "insert block", Err: err}
	}

	for _, txn := range record.Transactions {
		var transactionID int64
		err = tx.QueryRow(ctx, `
INSERT INTO transactions (txid, block_id, version, size, weight, fee)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, txn.TxID, blockID, txn.Version, txn.Size, txn.Weight, txn.Fee).Scan(&transactionID)
		if err != nil {
			return &DatabaseError{Operation: "insert transaction", Err: err}
		}

		if err := insertInputsOutputs(ctx, tx, transactionID, txn); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &DatabaseError{Operation: "commit", Err: err}
	}
	return nil
}

func insertInputsOutputs(ctx context.Context, tx pgx.Tx, transactionID int64, txn model.Transaction) error {
	batch := &pgx.Batch{}
	for _, in := range txn.Inputs {
		batch.Queue(`
INSERT INTO inputs (transaction_id, previous_txid, previous_vout, sequence, script_sig)
VALUES ($1, $2, $3, $4, $5)
`, transactionID, in.PreviousTxID, in.PreviousVout, int64(in.Sequence), in.ScriptSig)
	}
	for _, out := range txn.Outputs {
		batch.Queue(`
INSERT INTO outputs (transaction_id, vout, value, script_pubkey, address)
VALUES ($1, $2, $3, $4, $5)
`, transactionID, out.Index, out.Value, out.ScriptPubKey, out.Address)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return &DatabaseError{Operation: "insert inputs/outputs", Err: err}
		}
	}
	return results.Close()
}
