package kv

import (
	"context"
	"encoding/binary"

	"github.com/LeJamon/goQortald/internal/repository"
)

type assets struct{ s *store }

func (a assets) FromAssetID(ctx context.Context, assetID int64) (*repository.AssetData, error) {
	var data repository.AssetData
	ok, err := a.s.get(ctx, "get asset", makeKey(prefixAsset, be64(assetID)), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (a assets) FromAssetName(ctx context.Context, name string) (*repository.AssetData, error) {
	raw, err := a.s.readRaw(ctx, "get asset by name", makeKey(prefixAssetName, []byte(name)))
	if err != nil || raw == nil {
		return nil, err
	}
	if len(raw) != 8 {
		return nil, repository.NewError(repository.KindEncoding, "get asset by name", nil)
	}
	return a.FromAssetID(ctx, int64(binary.BigEndian.Uint64(raw)))
}

func (a assets) AssetExists(ctx context.Context, assetID int64) (bool, error) {
	return a.s.has(ctx, "asset exists", makeKey(prefixAsset, be64(assetID)))
}

func (a assets) MaxAssetID(ctx context.Context) (int64, error) {
	last, err := a.s.lastKey(ctx, "max asset id", prefixAsset)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return -1, nil
	}
	return int64(binary.BigEndian.Uint64(last[len(prefixAsset):])), nil
}

// Save stores asset and indexes its name. Renaming is not supported.
func (a assets) Save(ctx context.Context, asset *repository.AssetData) error {
	if err := a.s.put(ctx, "save asset", makeKey(prefixAsset, be64(asset.AssetID)), asset); err != nil {
		return err
	}
	return a.s.writeRaw(ctx, "save asset", makeKey(prefixAssetName, []byte(asset.Name)), be64(asset.AssetID))
}

func (a assets) Delete(ctx context.Context, assetID int64) error {
	asset, err := a.FromAssetID(ctx, assetID)
	if err != nil || asset == nil {
		return err
	}
	if err := a.s.del(ctx, "delete asset", makeKey(prefixAssetName, []byte(asset.Name))); err != nil {
		return err
	}
	return a.s.del(ctx, "delete asset", makeKey(prefixAsset, be64(assetID)))
}
