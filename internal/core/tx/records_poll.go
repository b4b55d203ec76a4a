package tx

import (
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/chain"
)

// CreatePollTransaction publishes a named poll with a fixed option list.
type CreatePollTransaction struct {
	BaseTransaction
	noLedgerState

	Owner       string   `json:"owner"`
	PollName    string   `json:"pollName"`
	Description string   `json:"description"`
	Options     []string `json:"pollOptions"`
}

// Options were followed by a (always zero) voter count until that field was
// dropped from the layout.
func (c *Codec) pollHasVoterCount(timestamp int64) bool {
	return !c.rules.ActiveAt(chain.FeaturePollWithoutVoterCount, timestamp)
}

func (t *CreatePollTransaction) encodeFields(w *writer, c *Codec) error {
	if err := w.putAddress("owner", t.Owner); err != nil {
		return err
	}
	w.putSizedString(t.PollName)
	w.putSizedString(t.Description)
	w.putInt32(int32(len(t.Options)))
	voterCount := c.pollHasVoterCount(t.Timestamp)
	for _, option := range t.Options {
		w.putSizedString(option)
		if voterCount {
			w.putInt32(0)
		}
	}
	return nil
}

func (t *CreatePollTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.Owner, err = r.getAddress("owner"); err != nil {
		return err
	}
	if t.PollName, err = r.getSizedString("pollName", c.limits.PollMaxNameSize); err != nil {
		return err
	}
	if t.Description, err = r.getSizedString("description", c.limits.PollMaxDescriptionSize); err != nil {
		return err
	}
	count, err := r.getInt32("optionsCount")
	if err != nil {
		return err
	}
	if count < 1 || int(count) > c.limits.PollMaxOptions {
		return r.fail("optionsCount", fmt.Errorf("%d options, want 1..%d", count, c.limits.PollMaxOptions))
	}
	voterCount := c.pollHasVoterCount(t.Timestamp)
	t.Options = make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		option, err := r.getSizedString("optionName", c.limits.PollMaxNameSize)
		if err != nil {
			return err
		}
		if voterCount {
			voters, err := r.getInt32("voterCount")
			if err != nil {
				return err
			}
			if voters != 0 {
				return r.fail("voterCount", fmt.Errorf("option %d has %d voters", i, voters))
			}
		}
		t.Options = append(t.Options, option)
	}
	return nil
}

func (t *CreatePollTransaction) fieldsLength(c *Codec) int {
	n := AddressLength + sizedLength(t.PollName) + sizedLength(t.Description) + IntLength
	for _, option := range t.Options {
		n += sizedLength(option)
		if c.pollHasVoterCount(t.Timestamp) {
			n += IntLength
		}
	}
	return n
}

// VoteOnPollState is maintained by the ledger: the voter's previous choice,
// nil when this was their first vote on the poll.
type VoteOnPollState struct {
	PreviousOptionIndex *int32 `codec:"previousOptionIndex" json:"previousOptionIndex,omitempty"`
}

// VoteOnPollTransaction records the creator's choice on a poll.
type VoteOnPollTransaction struct {
	BaseTransaction
	VoteOnPollState

	PollName    string `json:"pollName"`
	OptionIndex int32  `json:"optionIndex"`
}

func (t *VoteOnPollTransaction) LedgerState() any { return &t.VoteOnPollState }

func (t *VoteOnPollTransaction) encodeFields(w *writer, _ *Codec) error {
	w.putSizedString(t.PollName)
	w.putInt32(t.OptionIndex)
	return nil
}

func (t *VoteOnPollTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.PollName, err = r.getSizedString("pollName", c.limits.PollMaxNameSize); err != nil {
		return err
	}
	t.OptionIndex, err = r.getInt32("optionIndex")
	return err
}

func (t *VoteOnPollTransaction) fieldsLength(*Codec) int {
	return sizedLength(t.PollName) + IntLength
}
