// Package poll publishes polls and records votes on them.
package poll

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/repository"
)

type Poll struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Poll {
	return &Poll{repo: repo}
}

// Publish stores the poll described by t.
func (p *Poll) Publish(ctx context.Context, t *tx.CreatePollTransaction) error {
	data := &repository.PollData{
		PollName:         t.PollName,
		CreatorPublicKey: t.CreatorPublicKey,
		Owner:            t.Owner,
		Description:      t.Description,
		Options:          append([]string(nil), t.Options...),
		Published:        t.Timestamp,
	}
	if err := p.repo.Polls().Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save poll %q: %w", t.PollName, err)
	}
	return nil
}

func (p *Poll) Unpublish(ctx context.Context, t *tx.CreatePollTransaction) error {
	if err := p.repo.Polls().Delete(ctx, t.PollName); err != nil {
		return fmt.Errorf("failed to delete poll %q: %w", t.PollName, err)
	}
	return nil
}

// Vote records the creator's vote, remembering any vote it replaces on t.
func (p *Poll) Vote(ctx context.Context, t *tx.VoteOnPollTransaction) error {
	polls := p.repo.Polls()

	previous, err := polls.GetVote(ctx, t.PollName, t.CreatorPublicKey)
	if err != nil {
		return fmt.Errorf("failed to load vote on %q: %w", t.PollName, err)
	}
	if previous != nil {
		index := previous.OptionIndex
		t.PreviousOptionIndex = &index
	}

	vote := &repository.VoteData{
		PollName:       t.PollName,
		VoterPublicKey: t.CreatorPublicKey,
		OptionIndex:    t.OptionIndex,
	}
	if err := polls.SaveVote(ctx, vote); err != nil {
		return fmt.Errorf("failed to save vote on %q: %w", t.PollName, err)
	}
	return nil
}

// Unvote restores the vote replaced by t, or removes the vote if there was
// none.
func (p *Poll) Unvote(ctx context.Context, t *tx.VoteOnPollTransaction) error {
	polls := p.repo.Polls()

	var err error
	if t.PreviousOptionIndex != nil {
		err = polls.SaveVote(ctx, &repository.VoteData{
			PollName:       t.PollName,
			VoterPublicKey: t.CreatorPublicKey,
			OptionIndex:    *t.PreviousOptionIndex,
		})
	} else {
		err = polls.DeleteVote(ctx, t.PollName, t.CreatorPublicKey)
	}
	if err != nil {
		return fmt.Errorf("failed to revert vote on %q: %w", t.PollName, err)
	}

	t.PreviousOptionIndex = nil
	return nil
}
