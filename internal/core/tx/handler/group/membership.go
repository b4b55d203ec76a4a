package group

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeJoinGroup, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		join, err := handler.Typed[*tx.JoinGroupTransaction](t)
		if err != nil {
			return nil, err
		}
		return &joinHandler{Base: handler.NewBase(env, t), join: join}, nil
	})
	handler.MustRegister(tx.TypeLeaveGroup, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		leave, err := handler.Typed[*tx.LeaveGroupTransaction](t)
		if err != nil {
			return nil, err
		}
		return &leaveHandler{Base: handler.NewBase(env, t), leave: leave}, nil
	})
}

type joinHandler struct {
	handler.Base
	join *tx.JoinGroupTransaction
}

func (h *joinHandler) IsValid(ctx context.Context) (tx.Result, error) {
	groupID := h.join.GroupID
	joiner := h.Creator().Address()

	exists, err := groupExists(ctx, h.Env, groupID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return tx.GroupDoesNotExist, nil
	}

	g := ledger(h.Env)
	banned, err := g.IsBanned(ctx, groupID, joiner, h.join.Timestamp)
	if err != nil {
		return 0, err
	}
	if banned {
		return tx.BannedFromGroup, nil
	}

	member, err := g.IsMember(ctx, groupID, joiner)
	if err != nil {
		return 0, err
	}
	if member {
		return tx.AlreadyGroupMember, nil
	}

	request, err := h.Env.Repo.Groups().GetJoinRequest(ctx, groupID, joiner)
	if err != nil {
		return 0, err
	}
	if request != nil {
		return tx.JoinRequestExists, nil
	}

	return h.CheckFee(ctx)
}

func (h *joinHandler) Process(ctx context.Context) error {
	return ledger(h.Env).Join(ctx, h.join)
}

func (h *joinHandler) Orphan(ctx context.Context) error {
	return ledger(h.Env).Unjoin(ctx, h.join)
}

type leaveHandler struct {
	handler.Base
	leave *tx.LeaveGroupTransaction
}

// IsValid rejects the owner before anything else, so an owner cannot leave
// whatever its fee or balance.
func (h *leaveHandler) IsValid(ctx context.Context) (tx.Result, error) {
	groupID := h.leave.GroupID
	leaver := h.Creator().Address()

	group, err := h.Env.Repo.Groups().FromGroupID(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return tx.GroupDoesNotExist, nil
	}
	if group.Owner == leaver {
		return tx.GroupOwnerCannotLeave, nil
	}

	member, err := ledger(h.Env).IsMember(ctx, groupID, leaver)
	if err != nil {
		return 0, err
	}
	if !member {
		return tx.NotGroupMember, nil
	}

	return h.CheckFee(ctx)
}

func (h *leaveHandler) Process(ctx context.Context) error {
	if err := ledger(h.Env).Leave(ctx, h.leave); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *leaveHandler) Orphan(ctx context.Context) error {
	if err := ledger(h.Env).Unleave(ctx, h.leave); err != nil {
		return err
	}
	return h.SaveState(ctx)
}
