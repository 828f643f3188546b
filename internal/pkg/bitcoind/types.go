package bitcoind

// Wire shapes for getblock at verbosity 2. btcd's btcjson definitions omit
// the per-transaction fee bitcoind reports at this verbosity, so the block
// payload is decoded into these local types instead.

// VerboseBlock is a block with embedded transaction detail.
type VerboseBlock struct {
	Hash       string  `json:"hash"`
	Height     int64   `json:"height"`
	Version    int64   `json:"version"`
	Time       int64   `json:"time"`
	Size       int64   `json:"size"`
	Weight     int64   `json:"weight"`
	MerkleRoot string  `json:"merkleroot"`
	Nonce      uint32  `json:"nonce"`
	Bits       string  `json:"bits"`
	Difficulty float64 `json:"difficulty"`
	// PreviousHash is absent for the genesis block, NextHash for the tip.
	PreviousHash string           `json:"previousblockhash"`
	NextHash     string           `json:"nextblockhash"`
	Tx           []RawTransaction `json:"tx"`
}

// RawTransaction is one embedded transaction of a verbose block.
type RawTransaction struct {
	TxID    string   `json:"txid"`
	Version int64    `json:"version"`
	Size    int64    `json:"size"`
	Weight  int64    `json:"weight"`
	Fee     *float64 `json:"fee"` // BTC; nil when the node does not report it
	Vin     []Vin    `json:"vin"`
	Vout    []Vout   `json:"vout"`
}

// Vin is a transaction input as reported by the node.
type Vin struct {
	Coinbase  string     `json:"coinbase"`
	TxID      string     `json:"txid"`
	Vout      uint32     `json:"vout"`
	ScriptSig *ScriptSig `json:"scriptSig"`
	Sequence  uint32     `json:"sequence"`
}

// IsCoinbase reports whether the input is the block's coinbase input.
func (v Vin) IsCoinbase() bool { return v.Coinbase != "" }

// ScriptSig is the signature script of an input.
type ScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

// Vout is a transaction output as reported by the node.
type Vout struct {
	Value        float64      `json:"value"` // BTC
	N            uint32       `json:"n"`
	ScriptPubKey ScriptPubKey `json:"scriptPubKey"`
}

// ScriptPubKey is the locking script of an output. Depending on the node
// version the decoded address arrives in Address (modern) or Addresses
// (historic).
type ScriptPubKey struct {
	Asm       string   `json:"asm"`
	Hex       string   `json:"hex"`
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	Addresses []string `json:"addresses"`
}
