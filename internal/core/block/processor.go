package block

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
	_ "github.com/LeJamon/goQortald/internal/core/tx/handler/all"
	"github.com/LeJamon/goQortald/internal/core/txstore"
	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
	"go.uber.org/zap"
)

// Processor applies and orphans blocks on top of a repository.
type Processor struct {
	manager   repository.RepositoryManager
	config    *chain.Config
	verifier  *crypto.Verifier
	validator *Validator
	logger    *zap.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithVerifier shares a signature verifier, and its cache, with the
// processor.
func WithVerifier(verifier *crypto.Verifier) Option {
	return func(p *Processor) {
		p.verifier = verifier
	}
}

// NewProcessor creates a processor over manager.
func NewProcessor(manager repository.RepositoryManager, cfg *chain.Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chain config: %w", err)
	}
	p := &Processor{
		manager: manager,
		config:  cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.verifier == nil {
		verifier, err := crypto.NewVerifier(crypto.DefaultVerifierCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create signature verifier: %w", err)
		}
		p.verifier = verifier
	}
	p.validator = NewValidator(cfg, p.verifier, p.logger)
	return p, nil
}

// Validator returns the validator blocks are checked with.
func (p *Processor) Validator() *Validator {
	return p.validator
}

// Height returns the height of the chain tip, 0 for an empty chain.
func (p *Processor) Height(ctx context.Context) (int, error) {
	var height int
	err := p.manager.WithRepository(ctx, func(repo repository.Repository) error {
		var err error
		height, err = repo.Blocks().Height(ctx)
		return err
	})
	return height, err
}

// Process applies b on top of the chain tip. Transactions are validated and
// applied in order, each against the state left by the ones before it. If
// any fails, the applied ones are orphaned in reverse, the unit of work is
// discarded and the error returned; the repository is unchanged.
func (p *Processor) Process(ctx context.Context, b *Block) error {
	if err := p.validator.RejectPseudoTransactions(b.Transactions); err != nil {
		return err
	}

	repo, err := p.manager.Begin(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := p.process(ctx, repo, b); err != nil {
		p.discard(ctx, repo)
		return err
	}
	if err := repo.SaveChanges(ctx); err != nil {
		return fmt.Errorf("failed to save block %d: %w", b.Height, err)
	}

	p.logger.Info("Processed block",
		zap.Int("height", b.Height),
		zap.Int("transactions", len(b.Transactions)))
	return nil
}

func (p *Processor) process(ctx context.Context, repo repository.Repository, b *Block) error {
	tip, err := repo.Blocks().Height(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chain height: %w", err)
	}
	switch {
	case b.Height == 0:
		b.Height = tip + 1
	case b.Height != tip+1:
		return fmt.Errorf("%w: block %d on tip %d", ErrHeightMismatch, b.Height, tip)
	}

	env := handler.NewEnv(repo, p.config)
	if err := p.validator.VerifySignatures(ctx, env.Codec, b.Transactions); err != nil {
		return err
	}

	applied, err := p.validator.apply(ctx, env, b.Transactions, b.Height)
	if err != nil {
		p.unwind(ctx, env, applied)
		return err
	}

	if err := repo.Blocks().Save(ctx, b.data()); err != nil {
		p.unwind(ctx, env, applied)
		return fmt.Errorf("failed to save block %d: %w", b.Height, err)
	}
	return nil
}

// Orphan removes the block at the chain tip, undoing its transactions in
// reverse order, and returns its height.
func (p *Processor) Orphan(ctx context.Context) (int, error) {
	repo, err := p.manager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	height, err := p.orphan(ctx, repo)
	if err != nil {
		p.discard(ctx, repo)
		return 0, err
	}
	if err := repo.SaveChanges(ctx); err != nil {
		return 0, fmt.Errorf("failed to save orphaning of block %d: %w", height, err)
	}

	p.logger.Info("Orphaned block", zap.Int("height", height))
	return height, nil
}

func (p *Processor) orphan(ctx context.Context, repo repository.Repository) (int, error) {
	tip, err := repo.Blocks().Height(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load chain height: %w", err)
	}
	switch {
	case tip == 0:
		return 0, ErrEmptyChain
	case tip == GenesisHeight:
		return 0, ErrOrphanGenesis
	}

	data, err := repo.Blocks().FromHeight(ctx, tip)
	if err != nil {
		return 0, fmt.Errorf("failed to load block %d: %w", tip, err)
	}

	env := handler.NewEnv(repo, p.config)
	handlers := make([]handler.Handler, 0, len(data.Transactions))
	for _, sig := range data.Transactions {
		t, err := txstore.Load(ctx, repo, env.Codec, sig)
		if err != nil {
			return 0, fmt.Errorf("failed to load transaction of block %d: %w", tip, err)
		}
		h, err := handler.New(env, t)
		if err != nil {
			return 0, err
		}
		handlers = append(handlers, h)
	}

	if err := p.validator.orphanAll(ctx, env, handlers); err != nil {
		return 0, err
	}
	if err := repo.Blocks().Delete(ctx, tip); err != nil {
		return 0, fmt.Errorf("failed to delete block %d: %w", tip, err)
	}
	return tip, nil
}

// unwind orphans transactions applied before a failure. The unit of work is
// discarded afterwards, so a failure here is only logged.
func (p *Processor) unwind(ctx context.Context, env *handler.Env, applied []handler.Handler) {
	if err := p.validator.orphanAll(ctx, env, applied); err != nil {
		p.logger.Warn("Failed to orphan partially applied block", zap.Error(err))
	}
}

func (p *Processor) discard(ctx context.Context, repo repository.Repository) {
	if err := repo.DiscardChanges(ctx); err != nil {
		p.logger.Warn("Failed to discard repository changes", zap.Error(err))
	}
}
