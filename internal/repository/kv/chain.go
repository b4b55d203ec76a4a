package kv

import (
	"context"
	"encoding/binary"

	"github.com/LeJamon/goQortald/internal/repository"
)

type transactions struct{ s *store }

func (t transactions) FromSignature(ctx context.Context, signature []byte) (*repository.TransactionData, error) {
	var data repository.TransactionData
	ok, err := t.s.get(ctx, "get transaction", makeKey(prefixTransaction, signature), &data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.NewError(repository.KindNotFound, "get transaction", nil)
	}
	return &data, nil
}

func (t transactions) Exists(ctx context.Context, signature []byte) (bool, error) {
	return t.s.has(ctx, "transaction exists", makeKey(prefixTransaction, signature))
}

func (t transactions) Save(ctx context.Context, transaction *repository.TransactionData) error {
	return t.s.put(ctx, "save transaction", makeKey(prefixTransaction, transaction.Signature), transaction)
}

func (t transactions) Delete(ctx context.Context, signature []byte) error {
	return t.s.del(ctx, "delete transaction", makeKey(prefixTransaction, signature))
}

type blocks struct{ s *store }

func (b blocks) FromHeight(ctx context.Context, height int) (*repository.BlockData, error) {
	var data repository.BlockData
	ok, err := b.s.get(ctx, "get block", makeKey(prefixBlock, be32(int32(height))), &data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.NewError(repository.KindNotFound, "get block", nil)
	}
	return &data, nil
}

func (b blocks) Height(ctx context.Context) (int, error) {
	raw, err := b.s.readRaw(ctx, "chain height", keyChainHeight)
	if err != nil || raw == nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, repository.NewError(repository.KindEncoding, "chain height", nil)
	}
	return int(binary.BigEndian.Uint32(raw)), nil
}

// Save stores block and advances the chain height when block extends it.
func (b blocks) Save(ctx context.Context, block *repository.BlockData) error {
	if err := b.s.put(ctx, "save block", makeKey(prefixBlock, be32(int32(block.Height))), block); err != nil {
		return err
	}
	height, err := b.Height(ctx)
	if err != nil {
		return err
	}
	if block.Height > height {
		return b.s.writeRaw(ctx, "save block", keyChainHeight, be32(int32(block.Height)))
	}
	return nil
}

// Delete removes the block at height, lowering the chain height when it was
// the tip.
func (b blocks) Delete(ctx context.Context, height int) error {
	if err := b.s.del(ctx, "delete block", makeKey(prefixBlock, be32(int32(height)))); err != nil {
		return err
	}
	current, err := b.Height(ctx)
	if err != nil || current != height {
		return err
	}
	if height <= 1 {
		return b.s.del(ctx, "delete block", keyChainHeight)
	}
	return b.s.writeRaw(ctx, "delete block", keyChainHeight, be32(int32(height-1)))
}
