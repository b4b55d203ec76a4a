// Package handler provides the transaction handler interface and registry.
// Each transaction family registers its handlers from its own sub-package.
package handler

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/repository"
)

// Env binds handlers to a unit of work and the chain's consensus parameters.
type Env struct {
	Repo   repository.Repository
	Config *chain.Config
	Codec  *tx.Codec
}

// NewEnv creates an Env with a codec built from cfg.
func NewEnv(repo repository.Repository, cfg *chain.Config) *Env {
	return &Env{Repo: repo, Config: cfg, Codec: tx.NewCodec(cfg)}
}

// Handler drives one transaction through validation, processing and
// rollback. Process is always followed by ProcessReferencesAndFees; on
// rollback OrphanReferencesAndFees then Orphan undo them exactly.
type Handler interface {
	// Transaction returns the record the handler is bound to
	Transaction() tx.Transaction

	// IsValid checks the transaction against current state without
	// modifying it
	IsValid(ctx context.Context) (tx.Result, error)

	// IsProcessable runs the checks that depend on transaction ordering
	IsProcessable(ctx context.Context) (tx.Result, error)

	// HasValidReference reports whether the sender's last reference matches
	HasValidReference(ctx context.Context) (bool, error)

	Process(ctx context.Context) error
	ProcessReferencesAndFees(ctx context.Context) error
	Orphan(ctx context.Context) error
	OrphanReferencesAndFees(ctx context.Context) error
}

// Factory binds a handler to a decoded record.
type Factory func(env *Env, t tx.Transaction) (Handler, error)
