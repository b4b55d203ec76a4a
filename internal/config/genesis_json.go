package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LeJamon/goQortald/internal/core/chain"
)

// GenesisJSON represents the JSON genesis file format
//
//	{
//	  "timestamp": 1593450000000,
//	  "native_asset_name": "QORT",
//	  "native_asset_description": "...",
//	  "transactions": [{"recipient": "Q...", "amount": "1000"}]
//	}
type GenesisJSON struct {
	Timestamp              int64                      `json:"timestamp"`
	NativeAssetName        string                     `json:"native_asset_name"`
	NativeAssetDescription string                     `json:"native_asset_description"`
	Transactions           []chain.GenesisTransaction `json:"transactions"`
}

// LoadGenesisJSON reads and validates a genesis file.
func LoadGenesisJSON(path string) (chain.Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chain.Genesis{}, fmt.Errorf("failed to read genesis file %s: %w", path, err)
	}
	return ParseGenesisJSON(data)
}

// ParseGenesisJSON decodes a genesis document. Amounts are decimal strings.
func ParseGenesisJSON(data []byte) (chain.Genesis, error) {
	var doc GenesisJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return chain.Genesis{}, fmt.Errorf("failed to parse genesis JSON: %w", err)
	}

	g := chain.Genesis{
		Timestamp:              doc.Timestamp,
		NativeAssetName:        doc.NativeAssetName,
		NativeAssetDescription: doc.NativeAssetDescription,
		Transactions:           doc.Transactions,
	}
	if g.NativeAssetName == "" {
		g.NativeAssetName = "QORT"
	}
	if err := validateGenesis(&g); err != nil {
		return chain.Genesis{}, err
	}
	return g, nil
}
