package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "pebble", config.Storage.Type)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "0.001", config.Chain.UnitFee)
	assert.Equal(t, chain.DefaultLimits(), config.Chain.Limits)
	assert.Empty(t, config.GetConfigPath())

	params, err := config.ChainParams()
	require.NoError(t, err)
	assert.Equal(t, amount.MustParse("0.001"), params.UnitFee)
	assert.True(t, params.Rules.ActiveAt(chain.FeatureTxGroupID, 0))
	assert.Equal(t, "QORT", params.Genesis.NativeAssetName)
}

func TestLoadConfig(t *testing.T) {
	alice := qortalTesting.NewAccount("alice")
	path := writeFile(t, "qortald.toml", `
[chain]
qortal_timestamp = 1600000000000
message_release_height = 20
unit_fee = "0.01"
require_group_for_approval = true

[chain.activations]
transactionV4 = 1700000000000

[chain.limits]
group_max_name_size = 64

[chain.genesis]
timestamp = 1590000000000

[[chain.genesis.transactions]]
recipient = "`+alice.Address+`"
amount = "1000.5"

[storage]
type = "leveldb"
path = "/tmp/qortald/leveldb"
compression = true

[log]
level = "debug"
format = "json"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, config.GetConfigPath())

	assert.Equal(t, "leveldb", config.Storage.Type)
	assert.Equal(t, "/tmp/qortald/leveldb", config.Storage.Path)
	assert.True(t, config.Storage.Compression)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 64, config.Chain.Limits.GroupMaxNameSize)
	assert.Equal(t, chain.DefaultLimits().PollMaxOptions, config.Chain.Limits.PollMaxOptions)

	params, err := config.ChainParams()
	require.NoError(t, err)
	assert.True(t, params.RequireGroupForApproval)
	assert.Equal(t, amount.MustParse("0.01"), params.UnitFee)

	threshold, ok := params.Rules.Threshold(chain.FeatureTxGroupID)
	require.True(t, ok)
	assert.Equal(t, int64(1600000000000), threshold)
	threshold, ok = params.Rules.Threshold(chain.FeatureTransactionV4)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), threshold)
	threshold, ok = params.Rules.Threshold(chain.FeatureMessageRelease)
	require.True(t, ok)
	assert.Equal(t, int64(20), threshold)

	require.Len(t, params.Genesis.Transactions, 1)
	assert.Equal(t, alice.Address, params.Genesis.Transactions[0].Recipient)
	assert.Equal(t, amount.MustParse("1000.5"), params.Genesis.Transactions[0].Amount)
	assert.Equal(t, int64(1590000000000), params.Genesis.Timestamp)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("QORTALD_STORAGE_TYPE", "memory")
	t.Setenv("QORTALD_LOG_LEVEL", "warn")
	t.Setenv("QORTALD_CHAIN_UNIT_FEE", "0.5")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "memory", config.Storage.Type)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "0.5", config.Chain.UnitFee)
}

func TestRemoveActivation(t *testing.T) {
	c := ChainConfig{Activations: map[string]int64{"messagerelease": -1}}
	rules, err := c.Rules()
	require.NoError(t, err)

	_, ok := rules.Threshold(chain.FeatureMessageRelease)
	assert.False(t, ok)
	_, ok = rules.Threshold(chain.FeatureTxGroupID)
	assert.True(t, ok)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		config, err := LoadConfig("")
		require.NoError(t, err)
		return config
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown feature", func(c *Config) { c.Chain.Activations = map[string]int64{"sidechains": 5} }},
		{"negative qortal timestamp", func(c *Config) { c.Chain.QortalTimestamp = -1 }},
		{"zero limit", func(c *Config) { c.Chain.Limits.PollMaxOptions = 0 }},
		{"unparseable fee", func(c *Config) { c.Chain.UnitFee = "one" }},
		{"zero fee", func(c *Config) { c.Chain.UnitFee = "0" }},
		{"bad recipient", func(c *Config) {
			c.Chain.Genesis.Transactions = []GenesisTransactionConfig{{Recipient: "nobody", Amount: "1"}}
		}},
		{"bad storage", func(c *Config) { c.Storage.Type = "nudb" }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			require.NoError(t, ValidateConfig(config))
			tt.mutate(config)
			assert.Error(t, ValidateConfig(config))
		})
	}
}

func TestGenesisJSON(t *testing.T) {
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")

	path := writeFile(t, "genesis.json", `{
  "timestamp": 1593450000000,
  "native_asset_description": "native coin",
  "transactions": [
    {"recipient": "`+alice.Address+`", "amount": "1000"},
    {"recipient": "`+bob.Address+`", "amount": "0.00000001"}
  ]
}`)

	genesis, err := LoadGenesisJSON(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1593450000000), genesis.Timestamp)
	assert.Equal(t, "QORT", genesis.NativeAssetName)
	require.Len(t, genesis.Transactions, 2)
	assert.Equal(t, amount.New(1), genesis.Transactions[1].Amount)

	config, err := LoadConfig("")
	require.NoError(t, err)
	config.Chain.GenesisFile = path
	params, err := config.ChainParams()
	require.NoError(t, err)
	assert.Equal(t, genesis, params.Genesis)
}

func TestGenesisJSONRejects(t *testing.T) {
	alice := qortalTesting.NewAccount("alice")

	_, err := ParseGenesisJSON([]byte(`{"transactions": [`))
	assert.Error(t, err)

	_, err = ParseGenesisJSON([]byte(`{"transactions": [{"recipient": "` + alice.Address + `", "amount": "-5"}]}`))
	assert.Error(t, err)

	_, err = ParseGenesisJSON([]byte(`{"transactions": [{"recipient": "` + alice.Address + `", "amount": "1.000000001"}]}`))
	assert.Error(t, err)

	_, err = LoadGenesisJSON(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
