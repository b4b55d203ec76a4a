package tx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/amount"
)

const (
	TypeLength      = 4
	TimestampLength = 8
	GroupIDLength   = 4
	ReferenceLength = 64
	PublicKeyLength = 32
	SignatureLength = 64
	AddressLength   = 25
	AmountLength    = 8
	IntLength       = 4
	LongLength      = 8
	BooleanLength   = 1
)

// GenesisPublicKey is the creator key of genesis transactions. It is not a
// real ed25519 key; genesis transactions are never signature-checked.
var GenesisPublicKey = bytes.Repeat([]byte{1}, PublicKeyLength)

var (
	ErrMissingSignature = errors.New("transaction is not signed")
	ErrWrongType        = errors.New("transaction type does not match record")
)

// BaseTransaction contains fields common to all transaction types.
type BaseTransaction struct {
	Type             Type          `json:"type"`
	Timestamp        int64         `json:"timestamp"`
	TxGroupID        int32         `json:"txGroupId"`
	Reference        []byte        `json:"reference,omitempty"`
	CreatorPublicKey []byte        `json:"creatorPublicKey,omitempty"`
	Fee              amount.Amount `json:"fee"`
	Signature        []byte        `json:"signature,omitempty"`

	// Version is derived from Timestamp when decoding; records built in
	// memory may carry any value and are checked by validation.
	Version int `json:"version"`
}

// Base returns the common fields.
func (b *BaseTransaction) Base() *BaseTransaction {
	return b
}

// TxType returns the transaction type.
func (b *BaseTransaction) TxType() Type {
	return b.Type
}

// Transaction is a decoded transaction record. The set of implementations is
// closed: one record type per supported kind, all declared in this package.
type Transaction interface {
	TxType() Type
	Base() *BaseTransaction

	// LedgerState returns a pointer to the fields the ledger maintains on
	// the stored record during process/orphan, or nil for kinds without any.
	LedgerState() any

	encodeFields(w *writer, c *Codec) error
	decodeFields(r *reader, c *Codec) error
	fieldsLength(c *Codec) int
}

// noLedgerState is embedded by kinds whose stored record never changes.
type noLedgerState struct{}

func (noLedgerState) LedgerState() any { return nil }

// ApprovalThreshold is the share of group admins that must approve a
// transaction submitted under that group.
type ApprovalThreshold uint8

const (
	ApprovalNone ApprovalThreshold = iota
	ApprovalOne
	ApprovalPct20
	ApprovalPct40
	ApprovalPct60
	ApprovalPct80
	ApprovalPct100
)

var approvalNames = [...]string{"NONE", "ONE", "PCT20", "PCT40", "PCT60", "PCT80", "PCT100"}

// Valid reports whether t is a declared threshold.
func (t ApprovalThreshold) Valid() bool {
	return int(t) < len(approvalNames)
}

func (t ApprovalThreshold) String() string {
	if t.Valid() {
		return approvalNames[t]
	}
	return fmt.Sprintf("ApprovalThreshold(%d)", uint8(t))
}

// New returns an empty record of the given type, or an error if no record
// shape is defined for it.
func New(t Type) (Transaction, error) {
	var rec Transaction
	switch t {
	case TypeGenesis:
		rec = &GenesisTransaction{}
	case TypePayment:
		rec = &PaymentTransaction{}
	case TypeCreatePoll:
		rec = &CreatePollTransaction{}
	case TypeVoteOnPoll:
		rec = &VoteOnPollTransaction{}
	case TypeIssueAsset:
		rec = &IssueAssetTransaction{}
	case TypeTransferAsset:
		rec = &TransferAssetTransaction{}
	case TypeMessage:
		rec = &MessageTransaction{}
	case TypeAT:
		rec = &ATTransaction{}
	case TypeCreateGroup:
		rec = &CreateGroupTransaction{}
	case TypeUpdateGroup:
		rec = &UpdateGroupTransaction{}
	case TypeGroupBan:
		rec = &GroupBanTransaction{}
	case TypeCancelGroupBan:
		rec = &CancelGroupBanTransaction{}
	case TypeJoinGroup:
		rec = &JoinGroupTransaction{}
	case TypeLeaveGroup:
		rec = &LeaveGroupTransaction{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	rec.Base().Type = t
	return rec, nil
}
