package builders

import "github.com/LeJamon/goQortald/internal/core/tx"

// CreateGroup creates a group owned by owner.
func CreateGroup(owner, name string, open bool) *tx.CreateGroupTransaction {
	return &tx.CreateGroupTransaction{
		BaseTransaction:   base(tx.TypeCreateGroup),
		Owner:             owner,
		GroupName:         name,
		Description:       "group " + name,
		IsOpen:            open,
		ApprovalThreshold: tx.ApprovalOne,
	}
}

// UpdateGroup replaces the owner and settings of a group.
func UpdateGroup(groupID int32, newOwner, newDescription string, open bool) *tx.UpdateGroupTransaction {
	return &tx.UpdateGroupTransaction{
		BaseTransaction:      base(tx.TypeUpdateGroup),
		GroupID:              groupID,
		NewOwner:             newOwner,
		NewDescription:       newDescription,
		NewIsOpen:            open,
		NewApprovalThreshold: tx.ApprovalOne,
	}
}

// JoinGroup joins a group, or asks to.
func JoinGroup(groupID int32) *tx.JoinGroupTransaction {
	return &tx.JoinGroupTransaction{
		BaseTransaction: base(tx.TypeJoinGroup),
		GroupID:         groupID,
	}
}

// LeaveGroup leaves a group.
func LeaveGroup(groupID int32) *tx.LeaveGroupTransaction {
	return &tx.LeaveGroupTransaction{
		BaseTransaction: base(tx.TypeLeaveGroup),
		GroupID:         groupID,
	}
}

// Ban bans offender from a group. A zero ttl never expires.
func Ban(groupID int32, offender, reason string, ttl int32) *tx.GroupBanTransaction {
	return &tx.GroupBanTransaction{
		BaseTransaction: base(tx.TypeGroupBan),
		GroupID:         groupID,
		Offender:        offender,
		Reason:          reason,
		TimeToLive:      ttl,
	}
}

// CancelBan lifts the ban on member.
func CancelBan(groupID int32, member string) *tx.CancelGroupBanTransaction {
	return &tx.CancelGroupBanTransaction{
		BaseTransaction: base(tx.TypeCancelGroupBan),
		GroupID:         groupID,
		Member:          member,
	}
}
