package service

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/model"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/pkg/bitcoind"
)

// BlockMapper converts decoded node payloads into relational records. It is
// pure; fetching and storing happen around it.
type BlockMapper struct {
	decoder *scriptDecoder
}

func NewBlockMapper(network string) (*BlockMapper, error) {
	decoder, err := newScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	return &BlockMapper{decoder: decoder}, nil
}

func (m *BlockMapper) MapBlock(src *bitcoind.VerboseBlock) (model.BlockRecord, error) {
	if src.Hash == "" {
		return model.BlockRecord{}, fmt.Errorf("block at height %d has no hash", src.Height)
	}
	if src.Height < 0 {
		return model.BlockRecord{}, fmt.Errorf("block %s has negative height %d", src.Hash, src.Height)
	}

	block := model.Block{
		Hash:         src.Hash,
		Height:       src.Height,
		Version:      src.Version,
		Timestamp:    src.Time,
		Size:         src.Size,
		Weight:       src.Weight,
		MerkleRoot:   src.MerkleRoot,
		Nonce:        src.Nonce,
		Bits:         src.Bits,
		Difficulty:   src.Difficulty,
		PreviousHash: optionalString(src.PreviousHash),
		NextHash:     optionalString(src.NextHash),
	}

	transactions := make([]model.Transaction, 0, len(src.Tx))
	for _, tx := range src.Tx {
		mapped, err := m.mapTransaction(tx)
		if err != nil {
			return model.BlockRecord{}, fmt.Errorf("block %s: %w", src.Hash, err)
		}
		transactions = append(transactions, mapped)
	}

	return model.BlockRecord{Block: block, Transactions: transactions}, nil
}

func (m *BlockMapper) mapTransaction(tx bitcoind.RawTransaction) (model.Transaction, error) {
	if tx.TxID == "" {
		return model.Transaction{}, fmt.Errorf("transaction has no txid")
	}

	var fee *int64
	if tx.Fee != nil {
		sats, err := btcToSatoshis(*tx.Fee)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s convert fee: %w", tx.TxID, err)
		}
		fee = &sats
	}

	inputs := make([]model.Input, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		inputs = append(inputs, mapInput(vin))
	}

	outputs := make([]model.Output, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return model.Transaction{}, fmt.Errorf("tx %s output %d negative value: %f", tx.TxID, idx, vout.Value)
		}
		value, err := btcToSatoshis(vout.Value)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d convert value: %w", tx.TxID, idx, err)
		}

		outputs = append(outputs, model.Output{
			Index:        int64(vout.N),
			Value:        value,
			ScriptPubKey: vout.ScriptPubKey.Hex,
			Address:      m.decoder.firstAddress(vout),
		})
	}

	return model.Transaction{
		TxID:    tx.TxID,
		Version: tx.Version,
		Size:    tx.Size,
		Weight:  tx.Weight,
		Fee:     fee,
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}

func mapInput(vin bitcoind.Vin) model.Input {
	if vin.IsCoinbase() {
		return model.Input{
			Sequence:  vin.Sequence,
			ScriptSig: vin.Coinbase,
		}
	}

	prevTxID := vin.TxID
	prevVout := int64(vin.Vout)
	scriptSig := ""
	if vin.ScriptSig != nil {
		scriptSig = vin.ScriptSig.Hex
	}
	return model.Input{
		PreviousTxID: &prevTxID,
		PreviousVout: &prevVout,
		Sequence:     vin.Sequence,
		ScriptSig:    scriptSig,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func btcToSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	return int64(amt), nil
}
