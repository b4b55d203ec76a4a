package config

import (
	"fmt"
	"strings"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/log"
	"github.com/LeJamon/goQortald/internal/storage/database/backend"
)

// Config represents the complete node configuration
type Config struct {
	Chain   ChainConfig    `toml:"chain" mapstructure:"chain"`
	Storage backend.Config `toml:"storage" mapstructure:"storage"`
	Log     log.Config     `toml:"log" mapstructure:"log"`

	// Internal fields
	configPath string
}

// ChainConfig holds the consensus parameters of the chain section.
type ChainConfig struct {
	// QortalTimestamp activates every timestamp-triggered feature unless
	// overridden in Activations.
	QortalTimestamp int64 `toml:"qortal_timestamp" mapstructure:"qortal_timestamp"`
	// MessageReleaseHeight is the first block height accepting MESSAGE.
	MessageReleaseHeight int `toml:"message_release_height" mapstructure:"message_release_height"`
	// Activations overrides individual thresholds by feature name. A negative
	// threshold removes the feature from the table.
	Activations map[string]int64 `toml:"activations" mapstructure:"activations"`

	Limits                  chain.Limits `toml:"limits" mapstructure:"limits"`
	UnitFee                 string       `toml:"unit_fee" mapstructure:"unit_fee"`
	RequireGroupForApproval bool         `toml:"require_group_for_approval" mapstructure:"require_group_for_approval"`

	// GenesisFile, when set, replaces Genesis with the contents of a JSON file.
	GenesisFile string        `toml:"genesis_file" mapstructure:"genesis_file"`
	Genesis     GenesisConfig `toml:"genesis" mapstructure:"genesis"`
}

// GenesisConfig describes the genesis block inline.
type GenesisConfig struct {
	Timestamp              int64                      `toml:"timestamp" mapstructure:"timestamp"`
	NativeAssetName        string                     `toml:"native_asset_name" mapstructure:"native_asset_name"`
	NativeAssetDescription string                     `toml:"native_asset_description" mapstructure:"native_asset_description"`
	Transactions           []GenesisTransactionConfig `toml:"transactions" mapstructure:"transactions"`
}

// GenesisTransactionConfig credits Amount (a decimal string) to Recipient.
type GenesisTransactionConfig struct {
	Recipient string `toml:"recipient" mapstructure:"recipient"`
	Amount    string `toml:"amount" mapstructure:"amount"`
}

// GetConfigPath returns the path to the main config file, empty when the
// configuration came from defaults and environment only.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Rules builds the activation table.
func (c *ChainConfig) Rules() (*chain.Rules, error) {
	b := chain.NewRulesBuilder()
	for _, a := range chain.QortalRules(c.QortalTimestamp, c.MessageReleaseHeight).Table() {
		b.Activate(a.Feature, a.Threshold)
	}
	for name, threshold := range c.Activations {
		f, ok := featureByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown feature %q in activations", name)
		}
		if threshold < 0 {
			b.Remove(f)
			continue
		}
		b.Activate(f, threshold)
	}
	return b.Build()
}

// viper lower-cases keys, so feature names match case-insensitively.
func featureByName(name string) (chain.Feature, bool) {
	for _, f := range chain.AllFeatures() {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return 0, false
}

// ChainParams converts the chain section into consensus parameters, loading
// the genesis file when one is configured.
func (c *Config) ChainParams() (*chain.Config, error) {
	rules, err := c.Chain.Rules()
	if err != nil {
		return nil, err
	}
	unitFee, err := amount.Parse(c.Chain.UnitFee)
	if err != nil {
		return nil, fmt.Errorf("invalid unit fee %q: %w", c.Chain.UnitFee, err)
	}

	var genesis chain.Genesis
	if c.Chain.GenesisFile != "" {
		genesis, err = LoadGenesisJSON(c.Chain.GenesisFile)
	} else {
		genesis, err = c.Chain.Genesis.toGenesis()
	}
	if err != nil {
		return nil, err
	}

	cfg := &chain.Config{
		Rules:                   rules,
		Limits:                  c.Chain.Limits,
		UnitFee:                 unitFee,
		RequireGroupForApproval: c.Chain.RequireGroupForApproval,
		Genesis:                 genesis,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *GenesisConfig) toGenesis() (chain.Genesis, error) {
	out := chain.Genesis{
		Timestamp:              g.Timestamp,
		NativeAssetName:        g.NativeAssetName,
		NativeAssetDescription: g.NativeAssetDescription,
	}
	for i, gt := range g.Transactions {
		amt, err := amount.Parse(gt.Amount)
		if err != nil {
			return chain.Genesis{}, fmt.Errorf("genesis transaction %d: invalid amount %q: %w", i, gt.Amount, err)
		}
		out.Transactions = append(out.Transactions, chain.GenesisTransaction{
			Recipient: gt.Recipient,
			Amount:    amt,
		})
	}
	if err := validateGenesis(&out); err != nil {
		return chain.Genesis{}, err
	}
	return out, nil
}
