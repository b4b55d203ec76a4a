// Package poll implements CREATE_POLL and VOTE_ON_POLL.
package poll

import (
	"context"
	"strings"

	polls "github.com/LeJamon/goQortald/internal/core/poll"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeCreatePoll, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		create, err := handler.Typed[*tx.CreatePollTransaction](t)
		if err != nil {
			return nil, err
		}
		return &createHandler{Base: handler.NewBase(env, t), create: create}, nil
	})
}

type createHandler struct {
	handler.Base
	create *tx.CreatePollTransaction
}

func (h *createHandler) IsValid(ctx context.Context) (tx.Result, error) {
	limits := h.Limits()

	if !handler.ValidAddress(h.create.Owner) {
		return tx.InvalidAddress, nil
	}
	if !handler.ValidLength(h.create.PollName, limits.PollMaxNameSize) {
		return tx.InvalidNameLength, nil
	}
	if !handler.ValidLength(h.create.Description, limits.PollMaxDescriptionSize) {
		return tx.InvalidDescriptionLength, nil
	}
	if h.create.PollName != strings.ToLower(h.create.PollName) {
		return tx.NameNotLowerCase, nil
	}

	options := h.create.Options
	if len(options) < 1 || len(options) > limits.PollMaxOptions {
		return tx.InvalidOptionsCount, nil
	}
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		if !handler.ValidLength(option, limits.PollMaxNameSize) {
			return tx.InvalidOptionLength, nil
		}
		if _, dup := seen[option]; dup {
			return tx.DuplicateOption, nil
		}
		seen[option] = struct{}{}
	}

	return h.CheckFee(ctx)
}

func (h *createHandler) IsProcessable(ctx context.Context) (tx.Result, error) {
	exists, err := h.Env.Repo.Polls().PollExists(ctx, h.create.PollName)
	if err != nil {
		return 0, err
	}
	if exists {
		return tx.PollAlreadyExists, nil
	}
	return tx.OK, nil
}

func (h *createHandler) Process(ctx context.Context) error {
	return polls.New(h.Env.Repo).Publish(ctx, h.create)
}

func (h *createHandler) Orphan(ctx context.Context) error {
	return polls.New(h.Env.Repo).Unpublish(ctx, h.create)
}
