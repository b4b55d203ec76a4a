package kv

import (
	"context"

	"github.com/LeJamon/goQortald/internal/repository"
)

type polls struct{ s *store }

func (p polls) FromPollName(ctx context.Context, name string) (*repository.PollData, error) {
	var data repository.PollData
	ok, err := p.s.get(ctx, "get poll", makeKey(prefixPoll, []byte(name)), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (p polls) PollExists(ctx context.Context, name string) (bool, error) {
	return p.s.has(ctx, "poll exists", makeKey(prefixPoll, []byte(name)))
}

func (p polls) Save(ctx context.Context, poll *repository.PollData) error {
	return p.s.put(ctx, "save poll", makeKey(prefixPoll, []byte(poll.PollName)), poll)
}

// Delete removes the poll and every vote cast on it.
func (p polls) Delete(ctx context.Context, name string) error {
	var keys [][]byte
	err := p.s.scan(ctx, "delete poll", votePrefix(name), func(key, _ []byte) error {
		keys = append(keys, append([]byte(nil), key...))
		return nil
	})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := p.s.del(ctx, "delete poll", key); err != nil {
			return err
		}
	}
	return p.s.del(ctx, "delete poll", makeKey(prefixPoll, []byte(name)))
}

func (p polls) GetVote(ctx context.Context, pollName string, voterPublicKey []byte) (*repository.VoteData, error) {
	var data repository.VoteData
	ok, err := p.s.get(ctx, "get vote", voteKey(pollName, voterPublicKey), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (p polls) GetVotes(ctx context.Context, pollName string) ([]repository.VoteData, error) {
	return scanAll[repository.VoteData](ctx, p.s, "get votes", votePrefix(pollName))
}

func (p polls) SaveVote(ctx context.Context, vote *repository.VoteData) error {
	return p.s.put(ctx, "save vote", voteKey(vote.PollName, vote.VoterPublicKey), vote)
}

func (p polls) DeleteVote(ctx context.Context, pollName string, voterPublicKey []byte) error {
	return p.s.del(ctx, "delete vote", voteKey(pollName, voterPublicKey))
}
