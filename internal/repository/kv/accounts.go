package kv

import (
	"bytes"
	"context"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/repository"
)

type accounts struct{ s *store }

func (a accounts) GetBalance(ctx context.Context, address string, assetID int64) (amount.Amount, error) {
	var data repository.AccountBalanceData
	ok, err := a.s.get(ctx, "get balance", balanceKey(address, assetID), &data)
	if err != nil || !ok {
		return amount.Zero, err
	}
	return data.Balance, nil
}

func (a accounts) SetBalance(ctx context.Context, address string, assetID int64, balance amount.Amount) error {
	key := balanceKey(address, assetID)
	if balance.IsZero() {
		return a.s.del(ctx, "set balance", key)
	}
	return a.s.put(ctx, "set balance", key, &repository.AccountBalanceData{
		Address: address,
		AssetID: assetID,
		Balance: balance,
	})
}

func (a accounts) GetBalances(ctx context.Context, address string) ([]repository.AccountBalanceData, error) {
	return scanAll[repository.AccountBalanceData](ctx, a.s, "get balances", balancePrefix(address))
}

func (a accounts) GetLastReference(ctx context.Context, address string) ([]byte, error) {
	ref, err := a.s.readRaw(ctx, "get last reference", makeKey(prefixReference, []byte(address)))
	if err != nil || len(ref) == 0 {
		return nil, err
	}
	return bytes.Clone(ref), nil
}

func (a accounts) SetLastReference(ctx context.Context, address string, reference []byte) error {
	key := makeKey(prefixReference, []byte(address))
	if reference == nil {
		return a.s.del(ctx, "set last reference", key)
	}
	return a.s.writeRaw(ctx, "set last reference", key, reference)
}
