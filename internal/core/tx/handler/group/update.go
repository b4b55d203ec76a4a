package group

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeUpdateGroup, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		update, err := handler.Typed[*tx.UpdateGroupTransaction](t)
		if err != nil {
			return nil, err
		}
		return &updateHandler{Base: handler.NewBase(env, t), update: update}, nil
	})
}

type updateHandler struct {
	handler.Base
	update *tx.UpdateGroupTransaction
}

func (h *updateHandler) IsValid(ctx context.Context) (tx.Result, error) {
	if !handler.ValidAddress(h.update.NewOwner) {
		return tx.InvalidAddress, nil
	}
	if !h.update.NewApprovalThreshold.Valid() {
		return tx.InvalidGroupApprovalThreshold, nil
	}
	if !handler.ValidLength(h.update.NewDescription, h.Limits().GroupMaxDescriptionSize) {
		return tx.InvalidDescriptionLength, nil
	}

	group, err := h.Env.Repo.Groups().FromGroupID(ctx, h.update.GroupID)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return tx.GroupDoesNotExist, nil
	}
	// An update must be submitted in the same group context the group was
	// created in.
	if group.CreationGroupID != h.update.TxGroupID {
		return tx.TxGroupIDMismatch, nil
	}
	return h.CheckFee(ctx)
}

// IsProcessable checks ownership at processing time, since an earlier
// update in the same block may have changed it.
func (h *updateHandler) IsProcessable(ctx context.Context) (tx.Result, error) {
	group, err := h.Env.Repo.Groups().FromGroupID(ctx, h.update.GroupID)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return tx.GroupDoesNotExist, nil
	}
	if group.Owner != h.Creator().Address() {
		return tx.InvalidGroupOwner, nil
	}

	banned, err := ledger(h.Env).IsBanned(ctx, h.update.GroupID, h.update.NewOwner, h.update.Timestamp)
	if err != nil {
		return 0, err
	}
	if banned {
		return tx.BannedFromGroup, nil
	}
	return tx.OK, nil
}

func (h *updateHandler) Process(ctx context.Context) error {
	if err := ledger(h.Env).Update(ctx, h.update); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *updateHandler) Orphan(ctx context.Context) error {
	if err := ledger(h.Env).Unupdate(ctx, h.update); err != nil {
		return err
	}
	return h.SaveState(ctx)
}
