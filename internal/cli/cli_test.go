package cli

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goQortald/internal/config"
	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/block"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGenesisTimestamp int64 = 1_600_000_000_000

type cliFixture struct {
	dir    string
	conf   string
	params *chain.Config
	codec  *tx.Codec
	alice  *qortalTesting.Account
	bob    *qortalTesting.Account
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		dir:   t.TempDir(),
		alice: qortalTesting.NewAccount("alice"),
		bob:   qortalTesting.NewAccount("bob"),
	}
	f.conf = filepath.Join(f.dir, "qortald.toml")
	content := `
[chain.genesis]
timestamp = 1600000000000

[[chain.genesis.transactions]]
recipient = "` + f.alice.Address + `"
amount = "1000"

[storage]
type = "leveldb"
path = "` + filepath.ToSlash(filepath.Join(f.dir, "ledger")) + `"

[log]
output = "` + filepath.ToSlash(filepath.Join(f.dir, "qortald.log")) + `"
`
	require.NoError(t, os.WriteFile(f.conf, []byte(content), 0o644))

	cfg, err := config.LoadConfig(f.conf)
	require.NoError(t, err)
	f.params, err = cfg.ChainParams()
	require.NoError(t, err)
	f.codec = tx.NewCodec(f.params)
	return f
}

func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, debug, verbose = "", false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--conf", f.conf}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// payment returns alice's first payment to bob, on top of her genesis credit.
func (f *cliFixture) payment(t *testing.T, amt string) *tx.PaymentTransaction {
	t.Helper()
	genesis, err := block.GenesisBlock(f.params)
	require.NoError(t, err)

	ts := testGenesisTimestamp + 1000
	p := &tx.PaymentTransaction{
		BaseTransaction: tx.BaseTransaction{
			Type:             tx.TypePayment,
			Timestamp:        ts,
			Reference:        genesis.Transactions[0].Base().Signature,
			CreatorPublicKey: f.alice.PublicKey,
			Fee:              f.params.UnitFee,
			Version:          f.params.Rules.TransactionVersion(ts),
		},
		Recipient: f.bob.Address,
		Amount:    amount.MustParse(amt),
	}
	msg, err := f.codec.SigningBytes(p)
	require.NoError(t, err)
	p.Signature = f.alice.Sign(msg)
	return p
}

func (f *cliFixture) writeBlocks(t *testing.T, blocks ...*block.Block) string {
	t.Helper()
	encoded := make([]block.Encoded, 0, len(blocks))
	for _, b := range blocks {
		e, err := block.Encode(f.codec, b)
		require.NoError(t, err)
		encoded = append(encoded, e)
	}
	data, err := json.Marshal(encoded)
	require.NoError(t, err)
	path := filepath.Join(f.dir, "blocks.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVersion(t *testing.T) {
	f := newCLIFixture(t)
	out, err := f.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "goQortald version 0.1.0-dev")
}

func TestChainCommands(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized chain")

	_, err = f.run(t, "init")
	assert.ErrorIs(t, err, block.ErrAlreadyInitialized)

	out, err = f.run(t, "balance", f.alice.Address)
	require.NoError(t, err)
	assert.Equal(t, "asset 0: 1000.00000000\n", out)

	payment := f.payment(t, "10")
	path := f.writeBlocks(t, &block.Block{Timestamp: testGenesisTimestamp + 2000, Transactions: []tx.Transaction{payment}})
	out, err = f.run(t, "apply", path)
	require.NoError(t, err)
	assert.Equal(t, "Applied block 2 with 1 transactions\n", out)

	out, err = f.run(t, "balance", f.bob.Address)
	require.NoError(t, err)
	assert.Equal(t, "asset 0: 10.00000000\n", out)

	out, err = f.run(t, "balance", f.alice.Address)
	require.NoError(t, err)
	assert.Equal(t, "asset 0: 989.99900000\n", out)

	// Replaying the same block fails: the reference is no longer alice's last.
	_, err = f.run(t, "apply", path)
	require.Error(t, err)

	out, err = f.run(t, "orphan")
	require.NoError(t, err)
	assert.Equal(t, "Orphaned block 2\n", out)

	out, err = f.run(t, "balance", f.bob.Address)
	require.NoError(t, err)
	assert.Contains(t, out, "has no balances")

	_, err = f.run(t, "orphan")
	assert.ErrorIs(t, err, block.ErrOrphanGenesis)
}

func TestApplyRejectsInvalidBlock(t *testing.T) {
	f := newCLIFixture(t)
	_, err := f.run(t, "init")
	require.NoError(t, err)

	payment := f.payment(t, "10")
	payment.Signature[0] ^= 0xff
	path := f.writeBlocks(t, &block.Block{Timestamp: testGenesisTimestamp + 2000, Transactions: []tx.Transaction{payment}})

	_, err = f.run(t, "apply", path)
	require.Error(t, err)
	verr, ok := block.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, tx.InvalidSignature, verr.Result)
}

func TestDecode(t *testing.T) {
	f := newCLIFixture(t)
	payment := f.payment(t, "2.5")
	raw, err := f.codec.Encode(payment)
	require.NoError(t, err)

	out, err := f.run(t, "decode", hex.EncodeToString(raw))
	require.NoError(t, err)

	var decoded struct {
		Type         string `json:"type"`
		SigningBytes string `json:"signingBytes"`
		WireLength   int    `json:"wireLength"`
		Transaction  struct {
			Recipient string `json:"recipient"`
			Amount    string `json:"amount"`
		} `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "PAYMENT", decoded.Type)
	assert.Equal(t, len(raw), decoded.WireLength)
	assert.Equal(t, f.bob.Address, decoded.Transaction.Recipient)
	assert.Equal(t, "2.50000000", decoded.Transaction.Amount)

	signing, err := f.codec.SigningBytes(payment)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(signing), decoded.SigningBytes)
}

func TestArgumentErrors(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run(t, "decode", "zz")
	assert.Error(t, err)

	_, err = f.run(t, "balance", "not-an-address")
	assert.Error(t, err)

	_, err = f.run(t, "orphan", "0")
	assert.Error(t, err)

	_, err = f.run(t, "apply", filepath.Join(f.dir, "missing.json"))
	assert.Error(t, err)
}
