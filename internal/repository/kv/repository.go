package kv

import (
	"context"
	"errors"

	"github.com/LeJamon/goQortald/internal/repository"
	"github.com/LeJamon/goQortald/internal/storage/database"
	ugorji "github.com/ugorji/go/codec"
	"go.uber.org/zap"
)

var msgpack = &ugorji.MsgpackHandle{}

func encode(v any) ([]byte, error) {
	var out []byte
	if err := ugorji.NewEncoderBytes(&out, msgpack).Encode(v); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(data []byte, v any) error {
	return ugorji.NewDecoderBytes(data, msgpack).Decode(v)
}

// store is one unit of work. It is not safe for concurrent use.
type store struct {
	db     database.DB
	txn    database.Txn
	logger *zap.Logger
}

func newRepository(db database.DB, txn database.Txn, logger *zap.Logger) *store {
	return &store{db: db, txn: txn, logger: logger}
}

func (s *store) Accounts() repository.AccountRepository         { return accounts{s} }
func (s *store) Assets() repository.AssetRepository             { return assets{s} }
func (s *store) Groups() repository.GroupRepository             { return groups{s} }
func (s *store) Polls() repository.PollRepository               { return polls{s} }
func (s *store) Transactions() repository.TransactionRepository { return transactions{s} }
func (s *store) Blocks() repository.BlockRepository             { return blocks{s} }

func (s *store) SaveChanges(ctx context.Context) error {
	if s.txn == nil {
		return repository.NewError(repository.KindClosed, "save changes", nil)
	}
	if err := s.txn.Commit(ctx); err != nil {
		_ = s.txn.Discard()
		s.txn = nil
		s.logger.Error("repository commit failed", zap.Error(err))
		return repository.NewTransactionError("commit", err)
	}
	s.logger.Debug("repository changes saved")
	return s.renew(ctx)
}

func (s *store) DiscardChanges(ctx context.Context) error {
	if s.txn == nil {
		return repository.NewError(repository.KindClosed, "discard changes", nil)
	}
	if err := s.txn.Discard(); err != nil {
		s.txn = nil
		return repository.NewTransactionError("discard", err)
	}
	return s.renew(ctx)
}

func (s *store) renew(ctx context.Context) error {
	txn, err := s.db.Begin(ctx)
	if err != nil {
		s.txn = nil
		return repository.NewTransactionError("begin", err)
	}
	s.txn = txn
	return nil
}

func (s *store) Close() error {
	if s.txn == nil {
		return nil
	}
	err := s.txn.Discard()
	s.txn = nil
	if err != nil {
		return repository.NewTransactionError("close", err)
	}
	return nil
}

func (s *store) active(op string) error {
	if s.txn == nil {
		return repository.NewError(repository.KindClosed, op, nil)
	}
	return nil
}

// readRaw returns nil, nil for absent keys.
func (s *store) readRaw(ctx context.Context, op string, key []byte) ([]byte, error) {
	if err := s.active(op); err != nil {
		return nil, err
	}
	value, err := s.txn.Read(ctx, key)
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewQueryError(op, err)
	}
	return value, nil
}

// get decodes the entity under key into v and reports whether it exists.
func (s *store) get(ctx context.Context, op string, key []byte, v any) (bool, error) {
	raw, err := s.readRaw(ctx, op, key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := decode(raw, v); err != nil {
		return false, repository.NewEncodingError(op, err)
	}
	return true, nil
}

func (s *store) has(ctx context.Context, op string, key []byte) (bool, error) {
	raw, err := s.readRaw(ctx, op, key)
	return raw != nil, err
}

func (s *store) writeRaw(ctx context.Context, op string, key, value []byte) error {
	if err := s.active(op); err != nil {
		return err
	}
	if err := s.txn.Write(ctx, key, value); err != nil {
		return repository.NewQueryError(op, err)
	}
	return nil
}

func (s *store) put(ctx context.Context, op string, key []byte, v any) error {
	value, err := encode(v)
	if err != nil {
		return repository.NewEncodingError(op, err)
	}
	return s.writeRaw(ctx, op, key, value)
}

func (s *store) del(ctx context.Context, op string, key []byte) error {
	if err := s.active(op); err != nil {
		return err
	}
	if err := s.txn.Delete(ctx, key); err != nil {
		return repository.NewQueryError(op, err)
	}
	return nil
}

// scan calls fn for every entry under prefix in key order.
func (s *store) scan(ctx context.Context, op string, prefix []byte, fn func(key, value []byte) error) error {
	if err := s.active(op); err != nil {
		return err
	}
	it, err := s.txn.Iterator(ctx, prefix, database.PrefixEnd(prefix))
	if err != nil {
		return repository.NewQueryError(op, err)
	}
	defer it.Close()

	for it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return repository.NewQueryError(op, err)
	}
	return nil
}

// lastKey returns the greatest key under prefix, or nil.
func (s *store) lastKey(ctx context.Context, op string, prefix []byte) ([]byte, error) {
	var last []byte
	err := s.scan(ctx, op, prefix, func(key, _ []byte) error {
		last = append(last[:0], key...)
		return nil
	})
	return last, err
}

// scanAll decodes every entry under prefix into a fresh T.
func scanAll[T any](ctx context.Context, s *store, op string, prefix []byte) ([]T, error) {
	var out []T
	err := s.scan(ctx, op, prefix, func(_, value []byte) error {
		var v T
		if err := decode(value, &v); err != nil {
			return repository.NewEncodingError(op, err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

var _ repository.Repository = (*store)(nil)
