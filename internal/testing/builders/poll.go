package builders

import "github.com/LeJamon/goQortald/internal/core/tx"

// CreatePoll publishes a poll owned by owner.
func CreatePoll(owner, name string, options ...string) *tx.CreatePollTransaction {
	return &tx.CreatePollTransaction{
		BaseTransaction: base(tx.TypeCreatePoll),
		Owner:           owner,
		PollName:        name,
		Description:     "poll " + name,
		Options:         options,
	}
}

// Vote votes for option index of a poll.
func Vote(pollName string, option int32) *tx.VoteOnPollTransaction {
	return &tx.VoteOnPollTransaction{
		BaseTransaction: base(tx.TypeVoteOnPoll),
		PollName:        pollName,
		OptionIndex:     option,
	}
}
