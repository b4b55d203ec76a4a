package block

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/repository"
	"go.uber.org/zap"
)

// DefaultNativeAssetName names the native asset when the genesis definition
// leaves it empty.
const DefaultNativeAssetName = "QORT"

// GenesisBlock builds the first block from the genesis definition of cfg.
func GenesisBlock(cfg *chain.Config) (*Block, error) {
	codec := tx.NewCodec(cfg)
	genesis := cfg.Genesis

	txs := make([]tx.Transaction, 0, len(genesis.Transactions))
	for i, gt := range genesis.Transactions {
		t := &tx.GenesisTransaction{
			BaseTransaction: tx.BaseTransaction{
				Type:             tx.TypeGenesis,
				Timestamp:        genesis.Timestamp,
				CreatorPublicKey: append([]byte(nil), tx.GenesisPublicKey...),
				Version:          cfg.Rules.TransactionVersion(genesis.Timestamp),
			},
			Recipient: gt.Recipient,
			Amount:    gt.Amount,
		}
		sig, err := codec.PseudoSignature(t)
		if err != nil {
			return nil, fmt.Errorf("genesis transaction %d: %w", i, err)
		}
		t.Signature = sig
		txs = append(txs, t)
	}

	return &Block{
		Height:       GenesisHeight,
		Timestamp:    genesis.Timestamp,
		Transactions: txs,
	}, nil
}

// Bootstrap initializes an empty chain: it creates the native asset and
// applies the genesis block in one unit of work.
func (p *Processor) Bootstrap(ctx context.Context) (*Block, error) {
	b, err := GenesisBlock(p.config)
	if err != nil {
		return nil, err
	}

	repo, err := p.manager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	if err := p.bootstrap(ctx, repo, b); err != nil {
		p.discard(ctx, repo)
		return nil, err
	}
	if err := repo.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("failed to save genesis block: %w", err)
	}

	p.logger.Info("Created genesis block",
		zap.Int("transactions", len(b.Transactions)),
		zap.Binary("signature", b.Signature))
	return b, nil
}

func (p *Processor) bootstrap(ctx context.Context, repo repository.Repository, b *Block) error {
	height, err := repo.Blocks().Height(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chain height: %w", err)
	}
	if height != 0 {
		return ErrAlreadyInitialized
	}

	name := p.config.Genesis.NativeAssetName
	if name == "" {
		name = DefaultNativeAssetName
	}
	native := &repository.AssetData{
		AssetID:     chain.NativeAssetID,
		Name:        name,
		Description: p.config.Genesis.NativeAssetDescription,
		IsDivisible: true,
	}
	if err := repo.Assets().Save(ctx, native); err != nil {
		return fmt.Errorf("failed to create native asset: %w", err)
	}
	return p.process(ctx, repo, b)
}
