package group

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeGroupBan, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		ban, err := handler.Typed[*tx.GroupBanTransaction](t)
		if err != nil {
			return nil, err
		}
		return &banHandler{Base: handler.NewBase(env, t), ban: ban}, nil
	})
	handler.MustRegister(tx.TypeCancelGroupBan, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		cancel, err := handler.Typed[*tx.CancelGroupBanTransaction](t)
		if err != nil {
			return nil, err
		}
		return &cancelBanHandler{Base: handler.NewBase(env, t), cancel: cancel}, nil
	})
}

type banHandler struct {
	handler.Base
	ban *tx.GroupBanTransaction
}

func (h *banHandler) IsValid(ctx context.Context) (tx.Result, error) {
	groupID := h.ban.GroupID

	group, err := h.Env.Repo.Groups().FromGroupID(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return tx.GroupDoesNotExist, nil
	}
	if !handler.ValidAddress(h.ban.Offender) {
		return tx.InvalidAddress, nil
	}
	if !handler.ValidLength(h.ban.Reason, h.Limits().GroupMaxReasonSize) {
		return tx.InvalidReasonLength, nil
	}
	if h.ban.TimeToLive < 0 {
		return tx.InvalidLifetime, nil
	}

	g := ledger(h.Env)
	banner := h.Creator().Address()
	isAdmin, err := g.IsAdmin(ctx, groupID, banner)
	if err != nil {
		return 0, err
	}
	if !isAdmin {
		return tx.NotGroupAdmin, nil
	}

	// Only the owner may ban another admin.
	offenderIsAdmin, err := g.IsAdmin(ctx, groupID, h.ban.Offender)
	if err != nil {
		return 0, err
	}
	if offenderIsAdmin && banner != group.Owner {
		return tx.InvalidGroupOwner, nil
	}

	return h.CheckFee(ctx)
}

func (h *banHandler) Process(ctx context.Context) error {
	if err := ledger(h.Env).Ban(ctx, h.ban); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *banHandler) Orphan(ctx context.Context) error {
	if err := ledger(h.Env).Unban(ctx, h.ban); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

type cancelBanHandler struct {
	handler.Base
	cancel *tx.CancelGroupBanTransaction
}

func (h *cancelBanHandler) IsValid(ctx context.Context) (tx.Result, error) {
	groupID := h.cancel.GroupID

	exists, err := groupExists(ctx, h.Env, groupID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return tx.GroupDoesNotExist, nil
	}
	if !handler.ValidAddress(h.cancel.Member) {
		return tx.InvalidAddress, nil
	}

	isAdmin, err := ledger(h.Env).IsAdmin(ctx, groupID, h.Creator().Address())
	if err != nil {
		return 0, err
	}
	if !isAdmin {
		return tx.NotGroupAdmin, nil
	}

	ban, err := h.Env.Repo.Groups().GetBan(ctx, groupID, h.cancel.Member)
	if err != nil {
		return 0, err
	}
	if ban == nil {
		return tx.BanUnknown, nil
	}

	return h.CheckFee(ctx)
}

func (h *cancelBanHandler) Process(ctx context.Context) error {
	if err := ledger(h.Env).CancelBan(ctx, h.cancel); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *cancelBanHandler) Orphan(ctx context.Context) error {
	if err := ledger(h.Env).UncancelBan(ctx, h.cancel); err != nil {
		return err
	}
	return h.SaveState(ctx)
}
