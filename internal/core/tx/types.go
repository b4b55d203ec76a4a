package tx

import "fmt"

// Type is the 4-byte transaction type tag carried at the start of every encoding.
type Type int32

// Transaction type tags. The values are consensus-critical.
const (
	TypeGenesis            Type = 1
	TypePayment            Type = 2
	TypeRegisterName       Type = 3
	TypeUpdateName         Type = 4
	TypeSellName           Type = 5
	TypeCancelSellName     Type = 6
	TypeBuyName            Type = 7
	TypeCreatePoll         Type = 8
	TypeVoteOnPoll         Type = 9
	TypeArbitrary          Type = 10
	TypeIssueAsset         Type = 11
	TypeTransferAsset      Type = 12
	TypeCreateAssetOrder   Type = 13
	TypeCancelAssetOrder   Type = 14
	TypeMultiPayment       Type = 15
	TypeDeployAT           Type = 16
	TypeMessage            Type = 17
	TypeDelegation         Type = 18
	TypeSupernode          Type = 19
	TypeAirdrop            Type = 20
	TypeAT                 Type = 21
	TypeCreateGroup        Type = 22
	TypeUpdateGroup        Type = 23
	TypeAddGroupAdmin      Type = 24
	TypeRemoveGroupAdmin   Type = 25
	TypeGroupBan           Type = 26
	TypeCancelGroupBan     Type = 27
	TypeGroupKick          Type = 28
	TypeGroupInvite        Type = 29
	TypeCancelGroupInvite  Type = 30
	TypeJoinGroup          Type = 31
	TypeLeaveGroup         Type = 32
	TypeGroupApproval      Type = 33
	TypeSetGroup           Type = 34
	TypeUpdateAsset        Type = 35
	TypeAccountFlags       Type = 36
	TypeEnableForging      Type = 37
	TypeRewardShare        Type = 38
	TypeAccountLevel       Type = 39
	TypeTransferPrivileges Type = 40
)

type typeInfo struct {
	name          string
	needsApproval bool
}

var typeTable = map[Type]typeInfo{
	TypeGenesis:            {"GENESIS", false},
	TypePayment:            {"PAYMENT", false},
	TypeRegisterName:       {"REGISTER_NAME", true},
	TypeUpdateName:         {"UPDATE_NAME", true},
	TypeSellName:           {"SELL_NAME", false},
	TypeCancelSellName:     {"CANCEL_SELL_NAME", false},
	TypeBuyName:            {"BUY_NAME", false},
	TypeCreatePoll:         {"CREATE_POLL", true},
	TypeVoteOnPoll:         {"VOTE_ON_POLL", false},
	TypeArbitrary:          {"ARBITRARY", true},
	TypeIssueAsset:         {"ISSUE_ASSET", true},
	TypeTransferAsset:      {"TRANSFER_ASSET", false},
	TypeCreateAssetOrder:   {"CREATE_ASSET_ORDER", false},
	TypeCancelAssetOrder:   {"CANCEL_ASSET_ORDER", false},
	TypeMultiPayment:       {"MULTI_PAYMENT", false},
	TypeDeployAT:           {"DEPLOY_AT", true},
	TypeMessage:            {"MESSAGE", false},
	TypeDelegation:         {"DELEGATION", false},
	TypeSupernode:          {"SUPERNODE", false},
	TypeAirdrop:            {"AIRDROP", false},
	TypeAT:                 {"AT", false},
	TypeCreateGroup:        {"CREATE_GROUP", true},
	TypeUpdateGroup:        {"UPDATE_GROUP", true},
	TypeAddGroupAdmin:      {"ADD_GROUP_ADMIN", false},
	TypeRemoveGroupAdmin:   {"REMOVE_GROUP_ADMIN", true},
	TypeGroupBan:           {"GROUP_BAN", false},
	TypeCancelGroupBan:     {"CANCEL_GROUP_BAN", false},
	TypeGroupKick:          {"GROUP_KICK", false},
	TypeGroupInvite:        {"GROUP_INVITE", false},
	TypeCancelGroupInvite:  {"CANCEL_GROUP_INVITE", false},
	TypeJoinGroup:          {"JOIN_GROUP", false},
	TypeLeaveGroup:         {"LEAVE_GROUP", false},
	TypeGroupApproval:      {"GROUP_APPROVAL", false},
	TypeSetGroup:           {"SET_GROUP", false},
	TypeUpdateAsset:        {"UPDATE_ASSET", true},
	TypeAccountFlags:       {"ACCOUNT_FLAGS", false},
	TypeEnableForging:      {"ENABLE_FORGING", false},
	TypeRewardShare:        {"REWARD_SHARE", false},
	TypeAccountLevel:       {"ACCOUNT_LEVEL", false},
	TypeTransferPrivileges: {"TRANSFER_PRIVS", false},
}

// String returns the canonical upper-case name of the type.
func (t Type) String() string {
	if info, ok := typeTable[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// TypeFromName returns the transaction type for a given name.
func TypeFromName(name string) (Type, bool) {
	for t, info := range typeTable {
		if info.name == name {
			return t, true
		}
	}
	return 0, false
}

// Known reports whether t is a declared tag.
func (t Type) Known() bool {
	_, ok := typeTable[t]
	return ok
}

// NeedsApproval reports whether transactions of this type may be gated by
// group approval. Types that do not need approval must use NoGroup.
func (t Type) NeedsApproval() bool {
	return typeTable[t].needsApproval
}

// IsPseudoTransaction returns true for machine-generated transactions that
// carry a digest instead of a creator signature.
func (t Type) IsPseudoTransaction() bool {
	return t == TypeGenesis || t == TypeAT
}
