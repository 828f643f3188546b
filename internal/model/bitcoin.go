// Package model defines the relational record shapes the synchronizer writes.
package model

// Block is one row of the blocks table.
type Block struct {
	Hash       string
	Height     int64
	Version    int64
	Timestamp  int64 // chain-reported, seconds since epoch
	Size       int64
	Weight     int64
	MerkleRoot string
	Nonce      uint32
	Bits       string
	Difficulty float64
	// PreviousHash is nil for the genesis block, NextHash is nil at the tip.
	PreviousHash *string
	NextHash     *string
}

// Transaction is one row of the transactions table together with its
// input and output rows.
type Transaction struct {
	TxID    string
	Version int64
	Size    int64
	Weight  int64
	Fee     *int64 // satoshis; nil when the node does not report a fee
	Inputs  []Input
	Outputs []Output
}

// Input is one row of the inputs table.
type Input struct {
	// PreviousTxID and PreviousVout are nil for coinbase inputs.
	PreviousTxID *string
	PreviousVout *int64
	Sequence     uint32
	// ScriptSig holds the serialized script hex; for coinbase inputs it is
	// the coinbase payload.
	ScriptSig string
}

// Output is one row of the outputs table.
type Output struct {
	Index        int64
	Value        int64 // satoshis
	ScriptPubKey string
	// Address is the first address associated with the output script, or nil
	// when none decodes. Scripts carrying several addresses keep only the
	// first; a known lossy simplification of the store schema.
	Address *string
}

// BlockRecord is the full record tree for one block. The whole tree is
// committed as a single atomic unit.
type BlockRecord struct {
	Block        Block
	Transactions []Transaction
}
