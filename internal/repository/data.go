package repository

import (
	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/tx"
)

type AccountBalanceData struct {
	Address string        `codec:"address" json:"address"`
	AssetID int64         `codec:"assetId" json:"assetId"`
	Balance amount.Amount `codec:"balance" json:"balance"`
}

// AssetData describes an issued asset. Quantity is in whole units.
type AssetData struct {
	AssetID     int64  `codec:"assetId" json:"assetId"`
	Owner       string `codec:"owner" json:"owner"`
	Name        string `codec:"name" json:"name"`
	Description string `codec:"description" json:"description"`
	Quantity    int64  `codec:"quantity" json:"quantity"`
	IsDivisible bool   `codec:"isDivisible" json:"isDivisible"`
	// Reference is the signature of the issuing transaction.
	Reference []byte `codec:"reference" json:"reference,omitempty"`
}

// GroupData describes a group. Reference is the signature of the last
// transaction that created or updated it.
type GroupData struct {
	GroupID           int32                `codec:"groupId" json:"groupId"`
	Owner             string               `codec:"owner" json:"owner"`
	Name              string               `codec:"name" json:"groupName"`
	Description       string               `codec:"description" json:"description"`
	Created           int64                `codec:"created" json:"created"`
	Updated           *int64               `codec:"updated" json:"updated,omitempty"`
	IsOpen            bool                 `codec:"isOpen" json:"isOpen"`
	ApprovalThreshold tx.ApprovalThreshold `codec:"approvalThreshold" json:"approvalThreshold"`
	Reference         []byte               `codec:"reference" json:"reference"`
	CreationGroupID   int32                `codec:"creationGroupId" json:"creationGroupId"`
}

type GroupMemberData struct {
	GroupID   int32  `codec:"groupId" json:"groupId"`
	Member    string `codec:"member" json:"member"`
	Joined    int64  `codec:"joined" json:"joined"`
	Reference []byte `codec:"reference" json:"reference"`
}

type GroupAdminData struct {
	GroupID   int32  `codec:"groupId" json:"groupId"`
	Admin     string `codec:"admin" json:"admin"`
	Reference []byte `codec:"reference" json:"reference"`
}

type GroupJoinRequestData struct {
	GroupID   int32  `codec:"groupId" json:"groupId"`
	Joiner    string `codec:"joiner" json:"joiner"`
	Reference []byte `codec:"reference" json:"reference"`
}

// GroupBanData describes a ban. A nil Expiry never expires.
type GroupBanData struct {
	GroupID   int32  `codec:"groupId" json:"groupId"`
	Offender  string `codec:"offender" json:"offender"`
	Admin     string `codec:"admin" json:"admin"`
	Banned    int64  `codec:"banned" json:"banned"`
	Reason    string `codec:"reason" json:"reason"`
	Expiry    *int64 `codec:"expiry" json:"expiry,omitempty"`
	Reference []byte `codec:"reference" json:"reference"`
}

type PollData struct {
	PollName         string   `codec:"pollName" json:"pollName"`
	CreatorPublicKey []byte   `codec:"creatorPublicKey" json:"creatorPublicKey"`
	Owner            string   `codec:"owner" json:"owner"`
	Description      string   `codec:"description" json:"description"`
	Options          []string `codec:"options" json:"pollOptions"`
	Published        int64    `codec:"published" json:"published"`
}

type VoteData struct {
	PollName       string `codec:"pollName" json:"pollName"`
	VoterPublicKey []byte `codec:"voterPublicKey" json:"voterPublicKey"`
	OptionIndex    int32  `codec:"optionIndex" json:"optionIndex"`
}

// TransactionData is a confirmed transaction: its wire encoding plus the
// fields the ledger maintains on it.
type TransactionData struct {
	Signature   []byte  `codec:"signature" json:"signature"`
	Type        tx.Type `codec:"type" json:"type"`
	Raw         []byte  `codec:"raw" json:"raw"`
	State       []byte  `codec:"state" json:"state,omitempty"`
	BlockHeight int     `codec:"blockHeight" json:"blockHeight"`
}

type BlockData struct {
	Height       int      `codec:"height" json:"height"`
	Timestamp    int64    `codec:"timestamp" json:"timestamp"`
	Signature    []byte   `codec:"signature" json:"signature"`
	Transactions [][]byte `codec:"transactions" json:"transactions"`
}
