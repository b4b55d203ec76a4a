// Package repository defines the ledger's persistence boundary. The core
// reads and mutates state only through these interfaces, always inside a
// Repository obtained from a RepositoryManager.
package repository

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/amount"
)

// AccountRepository stores per-asset balances and last references.
type AccountRepository interface {
	// GetBalance returns zero for accounts or assets never credited.
	GetBalance(ctx context.Context, address string, assetID int64) (amount.Amount, error)
	// SetBalance stores balance; a zero balance removes the row.
	SetBalance(ctx context.Context, address string, assetID int64, balance amount.Amount) error
	// GetBalances lists every non-zero balance of address ordered by asset id.
	GetBalances(ctx context.Context, address string) ([]AccountBalanceData, error)

	// GetLastReference returns nil when the account has none.
	GetLastReference(ctx context.Context, address string) ([]byte, error)
	// SetLastReference stores reference; nil clears it.
	SetLastReference(ctx context.Context, address string, reference []byte) error
}

// AssetRepository stores issued assets. Lookups of domain entities return a
// nil record, not an error, when nothing is stored.
type AssetRepository interface {
	FromAssetID(ctx context.Context, assetID int64) (*AssetData, error)
	FromAssetName(ctx context.Context, name string) (*AssetData, error)
	AssetExists(ctx context.Context, assetID int64) (bool, error)
	// MaxAssetID returns the highest issued id, or -1 when none exist.
	MaxAssetID(ctx context.Context) (int64, error)
	Save(ctx context.Context, asset *AssetData) error
	Delete(ctx context.Context, assetID int64) error
}

// GroupRepository stores groups and their members, admins, join requests
// and bans.
type GroupRepository interface {
	FromGroupID(ctx context.Context, groupID int32) (*GroupData, error)
	FromGroupName(ctx context.Context, name string) (*GroupData, error)
	GroupExists(ctx context.Context, groupID int32) (bool, error)
	// MaxGroupID returns the highest group id, or 0 when none exist.
	MaxGroupID(ctx context.Context) (int32, error)
	Save(ctx context.Context, group *GroupData) error
	Delete(ctx context.Context, groupID int32) error

	GetMember(ctx context.Context, groupID int32, address string) (*GroupMemberData, error)
	GetMembers(ctx context.Context, groupID int32) ([]GroupMemberData, error)
	SaveMember(ctx context.Context, member *GroupMemberData) error
	DeleteMember(ctx context.Context, groupID int32, address string) error

	GetAdmin(ctx context.Context, groupID int32, address string) (*GroupAdminData, error)
	SaveAdmin(ctx context.Context, admin *GroupAdminData) error
	DeleteAdmin(ctx context.Context, groupID int32, address string) error

	GetJoinRequest(ctx context.Context, groupID int32, address string) (*GroupJoinRequestData, error)
	SaveJoinRequest(ctx context.Context, request *GroupJoinRequestData) error
	DeleteJoinRequest(ctx context.Context, groupID int32, address string) error

	GetBan(ctx context.Context, groupID int32, address string) (*GroupBanData, error)
	SaveBan(ctx context.Context, ban *GroupBanData) error
	DeleteBan(ctx context.Context, groupID int32, address string) error
}

// PollRepository stores polls and votes.
type PollRepository interface {
	FromPollName(ctx context.Context, name string) (*PollData, error)
	PollExists(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, poll *PollData) error
	Delete(ctx context.Context, name string) error

	GetVote(ctx context.Context, pollName string, voterPublicKey []byte) (*VoteData, error)
	GetVotes(ctx context.Context, pollName string) ([]VoteData, error)
	SaveVote(ctx context.Context, vote *VoteData) error
	DeleteVote(ctx context.Context, pollName string, voterPublicKey []byte) error
}

// TransactionRepository stores confirmed transactions keyed by signature.
type TransactionRepository interface {
	// FromSignature fails with ErrNotFound for unknown signatures.
	FromSignature(ctx context.Context, signature []byte) (*TransactionData, error)
	Exists(ctx context.Context, signature []byte) (bool, error)
	Save(ctx context.Context, transaction *TransactionData) error
	Delete(ctx context.Context, signature []byte) error
}

// BlockRepository stores blocks keyed by height.
type BlockRepository interface {
	// FromHeight fails with ErrNotFound above the chain tip.
	FromHeight(ctx context.Context, height int) (*BlockData, error)
	// Height returns the height of the last block, or 0 for an empty chain.
	Height(ctx context.Context) (int, error)
	Save(ctx context.Context, block *BlockData) error
	Delete(ctx context.Context, height int) error
}

// Repository is one unit of work. Changes become visible to other
// repositories only after SaveChanges; DiscardChanges drops everything since
// the last save. Both leave the repository usable.
type Repository interface {
	Accounts() AccountRepository
	Assets() AssetRepository
	Groups() GroupRepository
	Polls() PollRepository
	Transactions() TransactionRepository
	Blocks() BlockRepository

	SaveChanges(ctx context.Context) error
	DiscardChanges(ctx context.Context) error
	// Close discards unsaved changes.
	Close() error
}

// RepositoryManager hands out repositories over one store.
type RepositoryManager interface {
	Begin(ctx context.Context) (Repository, error)
	// WithRepository runs fn in a fresh repository, saving its changes when
	// fn succeeds and discarding them otherwise.
	WithRepository(ctx context.Context, fn func(Repository) error) error
	Close() error
}
