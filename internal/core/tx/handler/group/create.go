// Package group implements the group transactions: CREATE_GROUP,
// UPDATE_GROUP, JOIN_GROUP, LEAVE_GROUP, GROUP_BAN and CANCEL_GROUP_BAN.
package group

import (
	"context"
	"strings"

	groups "github.com/LeJamon/goQortald/internal/core/group"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeCreateGroup, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		create, err := handler.Typed[*tx.CreateGroupTransaction](t)
		if err != nil {
			return nil, err
		}
		return &createHandler{Base: handler.NewBase(env, t), create: create}, nil
	})
}

func ledger(env *handler.Env) *groups.Group {
	return groups.New(env.Repo, env.Codec)
}

// groupExists reports whether groupID names a stored group.
func groupExists(ctx context.Context, env *handler.Env, groupID int32) (bool, error) {
	return env.Repo.Groups().GroupExists(ctx, groupID)
}

type createHandler struct {
	handler.Base
	create *tx.CreateGroupTransaction
}

func (h *createHandler) IsValid(ctx context.Context) (tx.Result, error) {
	limits := h.Limits()

	if !handler.ValidAddress(h.create.Owner) {
		return tx.InvalidAddress, nil
	}
	if !h.create.ApprovalThreshold.Valid() {
		return tx.InvalidGroupApprovalThreshold, nil
	}
	if !handler.ValidLength(h.create.GroupName, limits.GroupMaxNameSize) {
		return tx.InvalidNameLength, nil
	}
	if !handler.ValidLength(h.create.Description, limits.GroupMaxDescriptionSize) {
		return tx.InvalidDescriptionLength, nil
	}
	if h.create.GroupName != strings.ToLower(h.create.GroupName) {
		return tx.NameNotLowerCase, nil
	}
	return h.CheckFee(ctx)
}

func (h *createHandler) IsProcessable(ctx context.Context) (tx.Result, error) {
	existing, err := h.Env.Repo.Groups().FromGroupName(ctx, h.create.GroupName)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return tx.GroupAlreadyExists, nil
	}
	return tx.OK, nil
}

func (h *createHandler) Process(ctx context.Context) error {
	if err := ledger(h.Env).Create(ctx, h.create); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *createHandler) Orphan(ctx context.Context) error {
	if err := ledger(h.Env).Uncreate(ctx, h.create); err != nil {
		return err
	}
	return h.SaveState(ctx)
}
