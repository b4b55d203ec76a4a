package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
	_ "github.com/LeJamon/goQortald/internal/core/tx/handler/all"
	"github.com/LeJamon/goQortald/internal/core/txstore"
	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
	"github.com/LeJamon/goQortald/internal/repository/kv"
	"github.com/LeJamon/goQortald/internal/storage/database/memory"
	"go.uber.org/zap/zaptest"
)

// DefaultFee is the fee builders put on transactions. It equals the unit fee
// of chain.TestConfig.
var DefaultFee = amount.MustParse("0.001")

// DefaultFunding is what Fund credits when no amount is given.
var DefaultFunding = Coins(1000)

// TestEnv manages a ledger held in memory for transaction testing. It
// creates the native asset, funds accounts directly, signs transactions and
// drives them through their handlers the way block processing does.
type TestEnv struct {
	t        testing.TB
	ctx      context.Context
	config   *chain.Config
	db       *memory.DB
	manager  *kv.Manager
	repo     repository.Repository
	env      *handler.Env
	clock    *ManualClock
	accounts map[string]*Account

	// height is the block height recorded on applied transactions
	height int
	// unsigned counts transactions that could not be encoded for signing
	unsigned int
}

// NewTestEnv creates a test environment over chain.TestConfig.
func NewTestEnv(t testing.TB) *TestEnv {
	t.Helper()
	return NewTestEnvWithConfig(t, chain.TestConfig())
}

// NewTestEnvWithConfig creates a test environment with custom consensus
// parameters.
func NewTestEnvWithConfig(t testing.TB, cfg *chain.Config) *TestEnv {
	t.Helper()

	db := memory.New()
	manager := kv.NewManager(db, kv.WithLogger(zaptest.NewLogger(t)))
	t.Cleanup(func() { _ = manager.Close() })

	ctx := context.Background()
	repo, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	e := &TestEnv{
		t:        t,
		ctx:      ctx,
		config:   cfg,
		db:       db,
		manager:  manager,
		repo:     repo,
		env:      handler.NewEnv(repo, cfg),
		clock:    NewManualClock(),
		accounts: make(map[string]*Account),
		height:   1,
	}

	native := &repository.AssetData{
		AssetID:     chain.NativeAssetID,
		Name:        "QORT",
		Description: "native coin",
		Quantity:    0,
		IsDivisible: true,
	}
	if err := repo.Assets().Save(ctx, native); err != nil {
		t.Fatalf("Failed to create native asset: %v", err)
	}
	e.Commit()
	return e
}

func (e *TestEnv) Context() context.Context     { return e.ctx }
func (e *TestEnv) Config() *chain.Config        { return e.config }
func (e *TestEnv) Repo() repository.Repository  { return e.repo }
func (e *TestEnv) Manager() *kv.Manager         { return e.manager }
func (e *TestEnv) HandlerEnv() *handler.Env     { return e.env }
func (e *TestEnv) Codec() *tx.Codec             { return e.env.Codec }
func (e *TestEnv) Clock() *ManualClock          { return e.clock }
func (e *TestEnv) Account(name string) *Account { return e.accounts[name] }

// Now returns the current transaction timestamp.
func (e *TestEnv) Now() int64 {
	return e.clock.Millis()
}

// Advance moves the clock forward.
func (e *TestEnv) Advance(d time.Duration) {
	e.clock.Advance(d)
}

// Fund credits each account with DefaultFunding in native coin.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, DefaultFunding)
	}
}

// FundAmount credits acc with native coin. An account without a last
// reference gets one derived from its name, so it can sign transactions.
func (e *TestEnv) FundAmount(acc *Account, amt amount.Amount) {
	e.t.Helper()
	e.FundAsset(acc, chain.NativeAssetID, amt)

	if e.LastReference(acc) == nil {
		seed := crypto.Digest([]byte(acc.Name))
		ref := append(append([]byte(nil), seed...), seed...)
		if err := e.repo.Accounts().SetLastReference(e.ctx, acc.Address, ref); err != nil {
			e.t.Fatalf("Failed to seed reference of %s: %v", acc, err)
		}
	}
}

// FundAsset adds amt of assetID to the balance of acc.
func (e *TestEnv) FundAsset(acc *Account, assetID int64, amt amount.Amount) {
	e.t.Helper()
	e.accounts[acc.Name] = acc

	balance := e.Balance(acc, assetID)
	if err := e.repo.Accounts().SetBalance(e.ctx, acc.Address, assetID, balance.Add(amt)); err != nil {
		e.t.Fatalf("Failed to fund %s: %v", acc, err)
	}
}

// Balance returns the confirmed balance of acc in assetID.
func (e *TestEnv) Balance(acc *Account, assetID int64) amount.Amount {
	e.t.Helper()
	return e.BalanceOf(acc.Address, assetID)
}

// BalanceOf is Balance for an address.
func (e *TestEnv) BalanceOf(address string, assetID int64) amount.Amount {
	e.t.Helper()
	balance, err := e.repo.Accounts().GetBalance(e.ctx, address, assetID)
	if err != nil {
		e.t.Fatalf("Failed to read balance of %s: %v", address, err)
	}
	return balance
}

// NativeBalance returns the native coin balance of acc.
func (e *TestEnv) NativeBalance(acc *Account) amount.Amount {
	e.t.Helper()
	return e.Balance(acc, chain.NativeAssetID)
}

// LastReference returns the last reference of acc, or nil.
func (e *TestEnv) LastReference(acc *Account) []byte {
	e.t.Helper()
	return e.ReferenceOf(acc.Address)
}

// ReferenceOf is LastReference for an address.
func (e *TestEnv) ReferenceOf(address string) []byte {
	e.t.Helper()
	ref, err := e.repo.Accounts().GetLastReference(e.ctx, address)
	if err != nil {
		e.t.Fatalf("Failed to read reference of %s: %v", address, err)
	}
	return ref
}

// Sign completes the common fields of t and signs it as signer. Timestamp,
// version and reference are filled only when unset. The clock advances one
// second per signature so successive transactions are ordered.
//
// Records that cannot be encoded, such as ones carrying invalid addresses,
// receive a unique signature that is not over their content; they are only
// useful for validation tests.
func (e *TestEnv) Sign(t tx.Transaction, signer *Account) tx.Transaction {
	e.t.Helper()
	b := t.Base()
	if b.Timestamp == 0 {
		b.Timestamp = e.Now()
		e.clock.Advance(time.Second)
	}
	if b.Version == 0 {
		b.Version = e.config.Rules.TransactionVersion(b.Timestamp)
	}

	if t.TxType().IsPseudoTransaction() {
		if b.Reference == nil && t.TxType() != tx.TypeGenesis {
			b.Reference = make([]byte, tx.ReferenceLength)
		}
		b.CreatorPublicKey = append([]byte(nil), tx.GenesisPublicKey...)
		sig, err := e.Codec().PseudoSignature(t)
		if err != nil {
			e.t.Fatalf("Failed to derive %s signature: %v", t.TxType(), err)
		}
		b.Signature = sig
		return t
	}

	b.CreatorPublicKey = signer.PublicKey
	if b.Reference == nil {
		b.Reference = e.LastReference(signer)
		if b.Reference == nil {
			b.Reference = make([]byte, tx.ReferenceLength)
		}
	}

	msg, err := e.Codec().SigningBytes(t)
	if err != nil {
		e.unsigned++
		msg = []byte(fmt.Sprintf("unencodable %s #%d", t.TxType(), e.unsigned))
	}
	b.Signature = signer.Sign(msg)
	return t
}

// Handler binds a handler to t.
func (e *TestEnv) Handler(t tx.Transaction) handler.Handler {
	e.t.Helper()
	h, err := handler.New(e.env, t)
	if err != nil {
		e.t.Fatalf("No handler for %s: %v", t.TxType(), err)
	}
	return h
}

// Validate runs IsValid then IsProcessable and returns the first failure.
func (e *TestEnv) Validate(t tx.Transaction) tx.Result {
	e.t.Helper()
	h := e.Handler(t)

	result, err := h.IsValid(e.ctx)
	if err != nil {
		e.t.Fatalf("IsValid(%s) failed: %v", t.TxType(), err)
	}
	if !result.IsOK() {
		return result
	}
	result, err = h.IsProcessable(e.ctx)
	if err != nil {
		e.t.Fatalf("IsProcessable(%s) failed: %v", t.TxType(), err)
	}
	return result
}

// Submit validates t and, when it is OK, stores and processes it. The
// result is returned either way.
func (e *TestEnv) Submit(t tx.Transaction) TxResult {
	e.t.Helper()
	result := e.Validate(t)
	if !result.IsOK() {
		return TxResult{Result: result}
	}

	h := e.Handler(t)
	if err := txstore.Save(e.ctx, e.repo, e.Codec(), t, e.height); err != nil {
		e.t.Fatalf("Failed to store %s: %v", t.TxType(), err)
	}
	if err := h.Process(e.ctx); err != nil {
		e.t.Fatalf("Process(%s) failed: %v", t.TxType(), err)
	}
	if err := h.ProcessReferencesAndFees(e.ctx); err != nil {
		e.t.Fatalf("ProcessReferencesAndFees(%s) failed: %v", t.TxType(), err)
	}
	return TxResult{Result: result, Applied: true}
}

// Apply submits t and fails the test unless it was applied.
func (e *TestEnv) Apply(t tx.Transaction) {
	e.t.Helper()
	result := e.Submit(t)
	if !result.Applied {
		e.t.Fatalf("Expected %s to apply, got %s", t.TxType(), result.Result)
	}
}

// Orphan undoes a transaction applied by Submit and removes it from the
// store. The stored copy is used, so ledger state recorded during
// processing is available to the handler.
func (e *TestEnv) Orphan(t tx.Transaction) {
	e.t.Helper()
	stored, err := txstore.Load(e.ctx, e.repo, e.Codec(), t.Base().Signature)
	if err != nil {
		e.t.Fatalf("Failed to load %s for orphaning: %v", t.TxType(), err)
	}

	h := e.Handler(stored)
	if err := h.OrphanReferencesAndFees(e.ctx); err != nil {
		e.t.Fatalf("OrphanReferencesAndFees(%s) failed: %v", t.TxType(), err)
	}
	if err := h.Orphan(e.ctx); err != nil {
		e.t.Fatalf("Orphan(%s) failed: %v", t.TxType(), err)
	}
	if err := e.repo.Transactions().Delete(e.ctx, t.Base().Signature); err != nil {
		e.t.Fatalf("Failed to delete %s: %v", t.TxType(), err)
	}
}

// Load returns the stored copy of t with its ledger state.
func (e *TestEnv) Load(t tx.Transaction) tx.Transaction {
	e.t.Helper()
	stored, err := txstore.Load(e.ctx, e.repo, e.Codec(), t.Base().Signature)
	if err != nil {
		e.t.Fatalf("Failed to load %s: %v", t.TxType(), err)
	}
	return stored
}

// Commit saves the pending changes of the environment's repository.
func (e *TestEnv) Commit() {
	e.t.Helper()
	if err := e.repo.SaveChanges(e.ctx); err != nil {
		e.t.Fatalf("Failed to save changes: %v", err)
	}
}

// Snapshot commits and returns every stored key and value.
func (e *TestEnv) Snapshot() map[string]string {
	e.t.Helper()
	e.Commit()

	it, err := e.db.Iterator(e.ctx, nil, nil)
	if err != nil {
		e.t.Fatalf("Failed to iterate store: %v", err)
	}
	defer it.Close()

	state := make(map[string]string)
	for it.Next() {
		state[string(it.Key())] = string(it.Value())
	}
	if err := it.Error(); err != nil {
		e.t.Fatalf("Failed to iterate store: %v", err)
	}
	return state
}
