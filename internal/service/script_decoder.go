package service

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/pkg/bitcoind"
)

// scriptDecoder extracts a human-readable address from ScriptPubKey results.
type scriptDecoder struct {
	params *chaincfg.Params
}

func newScriptDecoder(network string) (*scriptDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

// firstAddress returns the first address associated with an output script,
// or nil when none decodes. Older nodes report addresses, modern ones a
// single address; when neither is present the script bytes are decoded
// directly. Address extraction is best effort and never fails the mapping.
func (d *scriptDecoder) firstAddress(vout bitcoind.Vout) *string {
	if len(vout.ScriptPubKey.Addresses) > 0 {
		addr := vout.ScriptPubKey.Addresses[0]
		return &addr
	}
	if vout.ScriptPubKey.Address != "" {
		addr := vout.ScriptPubKey.Address
		return &addr
	}
	if vout.ScriptPubKey.Hex == "" {
		return nil
	}

	scriptBytes, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil || len(addrs) == 0 {
		return nil
	}
	addr := addrs[0].EncodeAddress()
	return &addr
}

func chainParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
