package poll_test

import (
	"strings"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/tx"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/LeJamon/goQortald/internal/testing/builders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePoll(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	env.Fund(alice)

	create := env.Sign(builders.CreatePoll(alice.Address, "colour", "red", "green", "blue"), alice)
	qortalTesting.RequireTxSuccess(t, env.Submit(create))

	poll, err := env.Repo().Polls().FromPollName(env.Context(), "colour")
	require.NoError(t, err)
	require.NotNil(t, poll)
	assert.Equal(t, []string{"red", "green", "blue"}, poll.Options)
	assert.Equal(t, alice.PublicKey, poll.CreatorPublicKey)
	assert.Equal(t, create.Base().Timestamp, poll.Published)

	dup := env.Sign(builders.CreatePoll(alice.Address, "colour", "yes"), alice)
	assert.Equal(t, tx.PollAlreadyExists, env.Validate(dup))
}

func TestCreatePollIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	env.Fund(alice)

	qortalTesting.RequireInverse(t, env, env.Sign(builders.CreatePoll(alice.Address, "colour", "red", "blue"), alice))
}

func TestCreatePollValidation(t *testing.T) {
	alice := qortalTesting.NewAccount("alice")
	limits := qortalTesting.NewTestEnv(t).Config().Limits
	tooMany := make([]string, limits.PollMaxOptions+1)
	for i := range tooMany {
		tooMany[i] = strings.Repeat("o", i+1)
	}

	tests := []struct {
		name   string
		modify func(*tx.CreatePollTransaction)
		want   tx.Result
	}{
		{"invalid owner", func(p *tx.CreatePollTransaction) { p.Owner = "nobody" }, tx.InvalidAddress},
		{"empty name", func(p *tx.CreatePollTransaction) { p.PollName = "" }, tx.InvalidNameLength},
		{"long name", func(p *tx.CreatePollTransaction) { p.PollName = strings.Repeat("p", limits.PollMaxNameSize+1) }, tx.InvalidNameLength},
		{"empty description", func(p *tx.CreatePollTransaction) { p.Description = "" }, tx.InvalidDescriptionLength},
		{"upper case name", func(p *tx.CreatePollTransaction) { p.PollName = "Colour" }, tx.NameNotLowerCase},
		{"no options", func(p *tx.CreatePollTransaction) { p.Options = nil }, tx.InvalidOptionsCount},
		{"too many options", func(p *tx.CreatePollTransaction) { p.Options = tooMany }, tx.InvalidOptionsCount},
		{"empty option", func(p *tx.CreatePollTransaction) { p.Options = []string{"red", ""} }, tx.InvalidOptionLength},
		{"duplicate option", func(p *tx.CreatePollTransaction) { p.Options = []string{"red", "blue", "red"} }, tx.DuplicateOption},
		{"zero fee", func(p *tx.CreatePollTransaction) { p.Fee = amount.Zero }, tx.NegativeFee},
		{"fee above balance", func(p *tx.CreatePollTransaction) { p.Fee = qortalTesting.Coins(1001) }, tx.NoBalance},
		{"max options", func(p *tx.CreatePollTransaction) { p.Options = tooMany[:limits.PollMaxOptions] }, tx.OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := qortalTesting.NewTestEnv(t)
			env.Fund(alice)

			create := builders.CreatePoll(alice.Address, "colour", "red", "blue")
			tt.modify(create)
			assert.Equal(t, tt.want, env.Validate(env.Sign(create, alice)))
		})
	}
}

func TestVoteOnPoll(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice, bob)
	env.Apply(env.Sign(builders.CreatePoll(alice.Address, "colour", "red", "blue"), alice))

	first := env.Sign(builders.Vote("colour", 0), bob)
	env.Apply(first)
	assert.Nil(t, env.Load(first).(*tx.VoteOnPollTransaction).PreviousOptionIndex)

	again := env.Sign(builders.Vote("colour", 0), bob)
	assert.Equal(t, tx.AlreadyVotedForThatOption, env.Validate(again))

	change := env.Sign(builders.Vote("colour", 1), bob)
	env.Apply(change)
	stored := env.Load(change).(*tx.VoteOnPollTransaction)
	require.NotNil(t, stored.PreviousOptionIndex)
	assert.Equal(t, int32(0), *stored.PreviousOptionIndex)

	vote, err := env.Repo().Polls().GetVote(env.Context(), "colour", bob.PublicKey)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, int32(1), vote.OptionIndex)

	// Orphaning the change restores the first vote.
	env.Orphan(change)
	vote, err = env.Repo().Polls().GetVote(env.Context(), "colour", bob.PublicKey)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, int32(0), vote.OptionIndex)

	// Orphaning the first vote removes it.
	env.Orphan(first)
	vote, err = env.Repo().Polls().GetVote(env.Context(), "colour", bob.PublicKey)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestVoteIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	env.Fund(alice)
	env.Apply(env.Sign(builders.CreatePoll(alice.Address, "colour", "red", "blue"), alice))

	qortalTesting.RequireInverse(t, env, env.Sign(builders.Vote("colour", 1), alice))

	env.Apply(env.Sign(builders.Vote("colour", 0), alice))
	qortalTesting.RequireInverse(t, env, env.Sign(builders.Vote("colour", 1), alice))
}

func TestVoteValidation(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	env.Fund(alice)
	env.Apply(env.Sign(builders.CreatePoll(alice.Address, "colour", "red", "blue"), alice))

	assert.Equal(t, tx.InvalidNameLength, env.Validate(env.Sign(builders.Vote("", 0), alice)))
	assert.Equal(t, tx.PollDoesNotExist, env.Validate(env.Sign(builders.Vote("size", 0), alice)))
	assert.Equal(t, tx.PollOptionDoesNotExist, env.Validate(env.Sign(builders.Vote("colour", 2), alice)))
	assert.Equal(t, tx.PollOptionDoesNotExist, env.Validate(env.Sign(builders.Vote("colour", -1), alice)))

	free := builders.Vote("colour", 0)
	free.Fee = amount.Zero
	assert.Equal(t, tx.NegativeFee, env.Validate(env.Sign(free, alice)))
}
