package poll

import (
	"context"

	polls "github.com/LeJamon/goQortald/internal/core/poll"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeVoteOnPoll, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		vote, err := handler.Typed[*tx.VoteOnPollTransaction](t)
		if err != nil {
			return nil, err
		}
		return &voteHandler{Base: handler.NewBase(env, t), vote: vote}, nil
	})
}

type voteHandler struct {
	handler.Base
	vote *tx.VoteOnPollTransaction
}

func (h *voteHandler) IsValid(ctx context.Context) (tx.Result, error) {
	if !handler.ValidLength(h.vote.PollName, h.Limits().PollMaxNameSize) {
		return tx.InvalidNameLength, nil
	}

	repo := h.Env.Repo.Polls()
	poll, err := repo.FromPollName(ctx, h.vote.PollName)
	if err != nil {
		return 0, err
	}
	if poll == nil {
		return tx.PollDoesNotExist, nil
	}
	if h.vote.OptionIndex < 0 || int(h.vote.OptionIndex) >= len(poll.Options) {
		return tx.PollOptionDoesNotExist, nil
	}

	previous, err := repo.GetVote(ctx, h.vote.PollName, h.vote.CreatorPublicKey)
	if err != nil {
		return 0, err
	}
	if previous != nil && previous.OptionIndex == h.vote.OptionIndex {
		return tx.AlreadyVotedForThatOption, nil
	}

	return h.CheckFee(ctx)
}

func (h *voteHandler) Process(ctx context.Context) error {
	if err := polls.New(h.Env.Repo).Vote(ctx, h.vote); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *voteHandler) Orphan(ctx context.Context) error {
	if err := polls.New(h.Env.Repo).Unvote(ctx, h.vote); err != nil {
		return err
	}
	return h.SaveState(ctx)
}
