package block

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/LeJamon/goQortald/internal/core/chain"
	groups "github.com/LeJamon/goQortald/internal/core/group"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
	"github.com/LeJamon/goQortald/internal/core/txstore"
	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Validator runs the checks a transaction must pass before it is included
// in a block.
type Validator struct {
	config   *chain.Config
	verifier *crypto.Verifier
	logger   *zap.Logger
}

// NewValidator creates a validator. Successful signature checks are
// remembered by verifier.
func NewValidator(cfg *chain.Config, verifier *crypto.Verifier, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{config: cfg, verifier: verifier, logger: logger}
}

// RejectPseudoTransactions fails on the first machine-generated record in
// txs. Genesis records are only created by Bootstrap and AT records only by
// AT execution, so neither is accepted in a submitted block.
func (v *Validator) RejectPseudoTransactions(txs []tx.Transaction) error {
	for i, t := range txs {
		switch t.TxType() {
		case tx.TypeAT:
			return &ValidationError{Index: i, Result: tx.InvalidATTransaction}
		case tx.TypeGenesis:
			return &ValidationError{Index: i, Result: tx.InvalidSignature}
		}
	}
	return nil
}

// VerifySignatures checks the creator signature of every transaction
// concurrently. Pseudo-transactions must carry the digest of their own
// encoding. The lowest failing index is reported.
func (v *Validator) VerifySignatures(ctx context.Context, codec *tx.Codec, txs []tx.Transaction) error {
	valid := make([]bool, len(txs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range txs {
		if t.TxType().IsPseudoTransaction() {
			digest, err := codec.PseudoSignature(t)
			if err != nil {
				return fmt.Errorf("failed to derive signature of transaction %d: %w", i, err)
			}
			valid[i] = bytes.Equal(digest, t.Base().Signature)
			continue
		}
		i, t := i, t
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msg, err := codec.SigningBytes(t)
			if err != nil {
				return fmt.Errorf("failed to build signing bytes of transaction %d: %w", i, err)
			}
			b := t.Base()
			valid[i] = v.verifier.Verify(b.CreatorPublicKey, msg, b.Signature)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, ok := range valid {
		if !ok {
			return &ValidationError{Index: i, Result: tx.InvalidSignature}
		}
	}
	return nil
}

// Check runs the inclusion checks of one transaction against the state
// of env: group context, minimum fee, reference, then the handler's
// IsValid and IsProcessable. Signatures are checked by VerifySignatures.
func (v *Validator) Check(ctx context.Context, env *handler.Env, h handler.Handler) (tx.Result, error) {
	t := h.Transaction()
	b := t.Base()

	if !t.TxType().IsPseudoTransaction() {
		result, err := v.checkTxGroup(ctx, env, t)
		if err != nil || !result.IsOK() {
			return result, err
		}
		if b.Fee.Cmp(v.config.UnitFee) < 0 {
			return tx.InsufficientFee, nil
		}
	}

	ok, err := h.HasValidReference(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check reference: %w", err)
	}
	if !ok {
		return tx.InvalidReference, nil
	}

	result, err := h.IsValid(ctx)
	if err != nil || !result.IsOK() {
		return result, err
	}
	return h.IsProcessable(ctx)
}

// checkTxGroup requires NoGroup for types that never need approval and
// membership of an existing group otherwise. Before group ids exist on the
// wire every transaction is NoGroup and passes.
func (v *Validator) checkTxGroup(ctx context.Context, env *handler.Env, t tx.Transaction) (tx.Result, error) {
	b := t.Base()

	if !v.config.Rules.ActiveAt(chain.FeatureTxGroupID, b.Timestamp) {
		return tx.OK, nil
	}

	if b.TxGroupID == chain.NoGroup {
		if t.TxType().NeedsApproval() && v.config.RequireGroupForApproval {
			return tx.InvalidTxGroupID, nil
		}
		return tx.OK, nil
	}
	if !t.TxType().NeedsApproval() {
		return tx.InvalidTxGroupID, nil
	}

	exists, err := env.Repo.Groups().GroupExists(ctx, b.TxGroupID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up group %d: %w", b.TxGroupID, err)
	}
	if !exists {
		return tx.InvalidTxGroupID, nil
	}
	member, err := groups.New(env.Repo, env.Codec).IsMember(ctx, b.TxGroupID, crypto.PublicKeyToAddress(b.CreatorPublicKey))
	if err != nil {
		return 0, err
	}
	if !member {
		return tx.InvalidTxGroupID, nil
	}
	return tx.OK, nil
}

// ValidateUnconfirmed checks that txs could form a block on the current tip
// of repo: each is validated and applied in turn, then all are orphaned
// again. repo is left as it was found. A rejection is a *ValidationError.
func (v *Validator) ValidateUnconfirmed(ctx context.Context, repo repository.Repository, txs []tx.Transaction) error {
	tip, err := repo.Blocks().Height(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chain height: %w", err)
	}

	if err := v.RejectPseudoTransactions(txs); err != nil {
		return err
	}
	env := handler.NewEnv(repo, v.config)
	if err := v.VerifySignatures(ctx, env.Codec, txs); err != nil {
		return err
	}

	applied, err := v.apply(ctx, env, txs, tip+1)
	if rollbackErr := v.orphanAll(ctx, env, applied); rollbackErr != nil {
		return fmt.Errorf("failed to roll back trial block: %w", rollbackErr)
	}
	return err
}

// apply validates and applies txs in order, returning the handlers of those
// applied. It stops at the first rejection or error.
func (v *Validator) apply(ctx context.Context, env *handler.Env, txs []tx.Transaction, height int) ([]handler.Handler, error) {
	applied := make([]handler.Handler, 0, len(txs))
	for i, t := range txs {
		h, err := handler.New(env, t)
		if err != nil {
			return applied, fmt.Errorf("transaction %d: %w", i, err)
		}

		result, err := v.Check(ctx, env, h)
		if err != nil {
			return applied, fmt.Errorf("failed to validate transaction %d: %w", i, err)
		}
		if !result.IsOK() {
			v.logger.Debug("Rejected transaction",
				zap.Int("index", i),
				zap.Stringer("type", t.TxType()),
				zap.Stringer("result", result))
			return applied, &ValidationError{Index: i, Result: result}
		}

		if err := txstore.Save(ctx, env.Repo, env.Codec, t, height); err != nil {
			return applied, fmt.Errorf("failed to store transaction %d: %w", i, err)
		}
		if err := h.Process(ctx); err != nil {
			return applied, fmt.Errorf("failed to process transaction %d: %w", i, err)
		}
		if err := h.ProcessReferencesAndFees(ctx); err != nil {
			return applied, fmt.Errorf("failed to process references and fees of transaction %d: %w", i, err)
		}
		applied = append(applied, h)
	}
	return applied, nil
}

// orphanAll undoes handlers in reverse order and deletes their stored
// transactions.
func (v *Validator) orphanAll(ctx context.Context, env *handler.Env, handlers []handler.Handler) error {
	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		if err := h.OrphanReferencesAndFees(ctx); err != nil {
			return fmt.Errorf("failed to orphan references and fees of transaction %d: %w", i, err)
		}
		if err := h.Orphan(ctx); err != nil {
			return fmt.Errorf("failed to orphan transaction %d: %w", i, err)
		}
		if err := env.Repo.Transactions().Delete(ctx, h.Transaction().Base().Signature); err != nil {
			return fmt.Errorf("failed to delete transaction %d: %w", i, err)
		}
	}
	return nil
}
