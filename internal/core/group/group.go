// Package group maintains groups, their membership, admins, join requests
// and bans. Every mutation records on its transaction the references needed
// to rebuild what it removed, so each has an exact inverse.
package group

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/txstore"
	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
)

type Group struct {
	repo  repository.Repository
	codec *tx.Codec
}

// New returns the group ledger. codec decodes the stored transactions that
// rollbacks rebuild state from.
func New(repo repository.Repository, codec *tx.Codec) *Group {
	return &Group{repo: repo, codec: codec}
}

// IsBanned reports whether address is banned from groupID at timestamp.
func (g *Group) IsBanned(ctx context.Context, groupID int32, address string, timestamp int64) (bool, error) {
	ban, err := g.repo.Groups().GetBan(ctx, groupID, address)
	if err != nil {
		return false, fmt.Errorf("failed to load ban: %w", err)
	}
	if ban == nil {
		return false, nil
	}
	return ban.Expiry == nil || *ban.Expiry > timestamp, nil
}

func (g *Group) IsMember(ctx context.Context, groupID int32, address string) (bool, error) {
	member, err := g.repo.Groups().GetMember(ctx, groupID, address)
	if err != nil {
		return false, fmt.Errorf("failed to load member: %w", err)
	}
	return member != nil, nil
}

func (g *Group) IsAdmin(ctx context.Context, groupID int32, address string) (bool, error) {
	admin, err := g.repo.Groups().GetAdmin(ctx, groupID, address)
	if err != nil {
		return false, fmt.Errorf("failed to load admin: %w", err)
	}
	return admin != nil, nil
}

// Create stores the group described by t with the owner as its first member
// and admin, and records the new id on t.
func (g *Group) Create(ctx context.Context, t *tx.CreateGroupTransaction) error {
	groups := g.repo.Groups()

	maxID, err := groups.MaxGroupID(ctx)
	if err != nil {
		return fmt.Errorf("failed to load highest group id: %w", err)
	}
	groupID := maxID + 1

	data := &repository.GroupData{
		GroupID:           groupID,
		Owner:             t.Owner,
		Name:              t.GroupName,
		Description:       t.Description,
		Created:           t.Timestamp,
		IsOpen:            t.IsOpen,
		ApprovalThreshold: t.ApprovalThreshold,
		Reference:         t.Signature,
		CreationGroupID:   t.TxGroupID,
	}
	if err := groups.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save group %d: %w", groupID, err)
	}
	if err := g.addMember(ctx, groupID, t.Owner, t.Timestamp, t.Signature); err != nil {
		return err
	}
	if err := g.addAdmin(ctx, groupID, t.Owner, t.Signature); err != nil {
		return err
	}

	t.GroupID = groupID
	return nil
}

// Uncreate removes the group created by t together with its owner's
// membership.
func (g *Group) Uncreate(ctx context.Context, t *tx.CreateGroupTransaction) error {
	groups := g.repo.Groups()
	if err := groups.DeleteAdmin(ctx, t.GroupID, t.Owner); err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if err := groups.DeleteMember(ctx, t.GroupID, t.Owner); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if err := groups.Delete(ctx, t.GroupID); err != nil {
		return fmt.Errorf("failed to delete group %d: %w", t.GroupID, err)
	}

	t.GroupID = 0
	return nil
}

// Update applies t and moves the group reference chain forward. A new owner
// becomes a member and admin if not one already.
func (g *Group) Update(ctx context.Context, t *tx.UpdateGroupTransaction) error {
	groups := g.repo.Groups()
	data, err := g.load(ctx, t.GroupID)
	if err != nil {
		return err
	}

	t.GroupReference = data.Reference

	updated := t.Timestamp
	data.Owner = t.NewOwner
	data.Description = t.NewDescription
	data.IsOpen = t.NewIsOpen
	data.ApprovalThreshold = t.NewApprovalThreshold
	data.Updated = &updated
	data.Reference = t.Signature
	if err := groups.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save group %d: %w", t.GroupID, err)
	}

	isMember, err := g.IsMember(ctx, t.GroupID, t.NewOwner)
	if err != nil {
		return err
	}
	if !isMember {
		if err := g.addMember(ctx, t.GroupID, t.NewOwner, t.Timestamp, t.Signature); err != nil {
			return err
		}
	}
	isAdmin, err := g.IsAdmin(ctx, t.GroupID, t.NewOwner)
	if err != nil {
		return err
	}
	if !isAdmin {
		return g.addAdmin(ctx, t.GroupID, t.NewOwner, t.Signature)
	}
	return nil
}

// Unupdate restores the group to the state set by the transaction t replaced
// and drops the membership t granted.
func (g *Group) Unupdate(ctx context.Context, t *tx.UpdateGroupTransaction) error {
	groups := g.repo.Groups()
	data, err := g.load(ctx, t.GroupID)
	if err != nil {
		return err
	}

	previous, err := txstore.Load(ctx, g.repo, g.codec, t.GroupReference)
	if err != nil {
		return fmt.Errorf("failed to load previous update of group %d: %w", t.GroupID, err)
	}
	switch prev := previous.(type) {
	case *tx.CreateGroupTransaction:
		data.Owner = prev.Owner
		data.Description = prev.Description
		data.IsOpen = prev.IsOpen
		data.ApprovalThreshold = prev.ApprovalThreshold
		data.Updated = nil
	case *tx.UpdateGroupTransaction:
		updated := prev.Timestamp
		data.Owner = prev.NewOwner
		data.Description = prev.NewDescription
		data.IsOpen = prev.NewIsOpen
		data.ApprovalThreshold = prev.NewApprovalThreshold
		data.Updated = &updated
	default:
		return fmt.Errorf("group %d reference points at %s", t.GroupID, previous.TxType())
	}
	data.Reference = t.GroupReference
	if err := groups.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save group %d: %w", t.GroupID, err)
	}

	admin, err := groups.GetAdmin(ctx, t.GroupID, t.NewOwner)
	if err != nil {
		return fmt.Errorf("failed to load admin: %w", err)
	}
	if admin != nil && bytes.Equal(admin.Reference, t.Signature) {
		if err := groups.DeleteAdmin(ctx, t.GroupID, t.NewOwner); err != nil {
			return fmt.Errorf("failed to delete admin: %w", err)
		}
	}
	member, err := groups.GetMember(ctx, t.GroupID, t.NewOwner)
	if err != nil {
		return fmt.Errorf("failed to load member: %w", err)
	}
	if member != nil && bytes.Equal(member.Reference, t.Signature) {
		if err := groups.DeleteMember(ctx, t.GroupID, t.NewOwner); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
	}

	t.GroupReference = nil
	return nil
}

// Join adds the creator of t to an open group, or files a join request with
// a closed one.
func (g *Group) Join(ctx context.Context, t *tx.JoinGroupTransaction) error {
	data, err := g.load(ctx, t.GroupID)
	if err != nil {
		return err
	}
	joiner := crypto.PublicKeyToAddress(t.CreatorPublicKey)
	if data.IsOpen {
		return g.addMember(ctx, t.GroupID, joiner, t.Timestamp, t.Signature)
	}
	err = g.repo.Groups().SaveJoinRequest(ctx, &repository.GroupJoinRequestData{
		GroupID:   t.GroupID,
		Joiner:    joiner,
		Reference: t.Signature,
	})
	if err != nil {
		return fmt.Errorf("failed to save join request: %w", err)
	}
	return nil
}

func (g *Group) Unjoin(ctx context.Context, t *tx.JoinGroupTransaction) error {
	groups := g.repo.Groups()
	joiner := crypto.PublicKeyToAddress(t.CreatorPublicKey)

	member, err := groups.GetMember(ctx, t.GroupID, joiner)
	if err != nil {
		return fmt.Errorf("failed to load member: %w", err)
	}
	if member != nil && bytes.Equal(member.Reference, t.Signature) {
		if err := groups.DeleteMember(ctx, t.GroupID, joiner); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return nil
	}
	if err := groups.DeleteJoinRequest(ctx, t.GroupID, joiner); err != nil {
		return fmt.Errorf("failed to delete join request: %w", err)
	}
	return nil
}

// Leave removes the creator's membership and admin status, remembering the
// transactions that granted them.
func (g *Group) Leave(ctx context.Context, t *tx.LeaveGroupTransaction) error {
	leaver := crypto.PublicKeyToAddress(t.CreatorPublicKey)
	memberRef, adminRef, err := g.removeMembership(ctx, t.GroupID, leaver)
	if err != nil {
		return err
	}
	t.MemberReference = memberRef
	t.AdminReference = adminRef
	return nil
}

func (g *Group) Unleave(ctx context.Context, t *tx.LeaveGroupTransaction) error {
	leaver := crypto.PublicKeyToAddress(t.CreatorPublicKey)
	if err := g.restoreMembership(ctx, t.GroupID, leaver, t.MemberReference, t.AdminReference); err != nil {
		return err
	}
	t.MemberReference = nil
	t.AdminReference = nil
	return nil
}

// Ban bans the offender named by t, removing membership, admin status, join
// request and any earlier ban.
func (g *Group) Ban(ctx context.Context, t *tx.GroupBanTransaction) error {
	groups := g.repo.Groups()

	memberRef, adminRef, err := g.removeMembership(ctx, t.GroupID, t.Offender)
	if err != nil {
		return err
	}
	t.MemberReference = memberRef
	t.AdminReference = adminRef

	request, err := groups.GetJoinRequest(ctx, t.GroupID, t.Offender)
	if err != nil {
		return fmt.Errorf("failed to load join request: %w", err)
	}
	if request != nil {
		t.JoinReference = request.Reference
		if err := groups.DeleteJoinRequest(ctx, t.GroupID, t.Offender); err != nil {
			return fmt.Errorf("failed to delete join request: %w", err)
		}
	}

	existing, err := groups.GetBan(ctx, t.GroupID, t.Offender)
	if err != nil {
		return fmt.Errorf("failed to load ban: %w", err)
	}
	if existing != nil {
		t.BanReference = existing.Reference
	}

	if err := groups.SaveBan(ctx, banFrom(t)); err != nil {
		return fmt.Errorf("failed to save ban: %w", err)
	}
	return nil
}

func (g *Group) Unban(ctx context.Context, t *tx.GroupBanTransaction) error {
	groups := g.repo.Groups()

	if err := groups.DeleteBan(ctx, t.GroupID, t.Offender); err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
	}
	if t.BanReference != nil {
		if err := g.rebuildBan(ctx, t.BanReference); err != nil {
			return err
		}
	}
	if t.JoinReference != nil {
		err := groups.SaveJoinRequest(ctx, &repository.GroupJoinRequestData{
			GroupID:   t.GroupID,
			Joiner:    t.Offender,
			Reference: t.JoinReference,
		})
		if err != nil {
			return fmt.Errorf("failed to save join request: %w", err)
		}
	}
	if err := g.restoreMembership(ctx, t.GroupID, t.Offender, t.MemberReference, t.AdminReference); err != nil {
		return err
	}

	t.GroupBanState = tx.GroupBanState{}
	return nil
}

// CancelBan lifts the ban on t.Member, remembering the transaction that
// imposed it.
func (g *Group) CancelBan(ctx context.Context, t *tx.CancelGroupBanTransaction) error {
	groups := g.repo.Groups()
	ban, err := groups.GetBan(ctx, t.GroupID, t.Member)
	if err != nil {
		return fmt.Errorf("failed to load ban: %w", err)
	}
	if ban == nil {
		return fmt.Errorf("no ban on %s in group %d", t.Member, t.GroupID)
	}
	t.BanReference = ban.Reference
	if err := groups.DeleteBan(ctx, t.GroupID, t.Member); err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
	}
	return nil
}

func (g *Group) UncancelBan(ctx context.Context, t *tx.CancelGroupBanTransaction) error {
	if err := g.rebuildBan(ctx, t.BanReference); err != nil {
		return err
	}
	t.BanReference = nil
	return nil
}

func (g *Group) load(ctx context.Context, groupID int32) (*repository.GroupData, error) {
	data, err := g.repo.Groups().FromGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %d: %w", groupID, err)
	}
	if data == nil {
		return nil, fmt.Errorf("group %d does not exist", groupID)
	}
	return data, nil
}

func (g *Group) addMember(ctx context.Context, groupID int32, address string, joined int64, reference []byte) error {
	err := g.repo.Groups().SaveMember(ctx, &repository.GroupMemberData{
		GroupID:   groupID,
		Member:    address,
		Joined:    joined,
		Reference: reference,
	})
	if err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

func (g *Group) addAdmin(ctx context.Context, groupID int32, address string, reference []byte) error {
	err := g.repo.Groups().SaveAdmin(ctx, &repository.GroupAdminData{
		GroupID:   groupID,
		Admin:     address,
		Reference: reference,
	})
	if err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}
	return nil
}

// removeMembership deletes the member and admin records of address and
// returns their references; nil when a record did not exist.
func (g *Group) removeMembership(ctx context.Context, groupID int32, address string) (memberRef, adminRef []byte, err error) {
	groups := g.repo.Groups()

	admin, err := groups.GetAdmin(ctx, groupID, address)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if admin != nil {
		adminRef = admin.Reference
		if err := groups.DeleteAdmin(ctx, groupID, address); err != nil {
			return nil, nil, fmt.Errorf("failed to delete admin: %w", err)
		}
	}

	member, err := groups.GetMember(ctx, groupID, address)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load member: %w", err)
	}
	if member != nil {
		memberRef = member.Reference
		if err := groups.DeleteMember(ctx, groupID, address); err != nil {
			return nil, nil, fmt.Errorf("failed to delete member: %w", err)
		}
	}
	return memberRef, adminRef, nil
}

// restoreMembership rebuilds the records removed by removeMembership. The
// join time is the timestamp of the transaction that granted membership.
func (g *Group) restoreMembership(ctx context.Context, groupID int32, address string, memberRef, adminRef []byte) error {
	if memberRef != nil {
		granting, err := txstore.Load(ctx, g.repo, g.codec, memberRef)
		if err != nil {
			return fmt.Errorf("failed to load membership of %s: %w", address, err)
		}
		if err := g.addMember(ctx, groupID, address, granting.Base().Timestamp, memberRef); err != nil {
			return err
		}
	}
	if adminRef != nil {
		return g.addAdmin(ctx, groupID, address, adminRef)
	}
	return nil
}

func (g *Group) rebuildBan(ctx context.Context, reference []byte) error {
	banTx, err := txstore.LoadAs[*tx.GroupBanTransaction](ctx, g.repo, g.codec, reference)
	if err != nil {
		return fmt.Errorf("failed to load ban: %w", err)
	}
	if err := g.repo.Groups().SaveBan(ctx, banFrom(banTx)); err != nil {
		return fmt.Errorf("failed to save ban: %w", err)
	}
	return nil
}

// banFrom builds the ban imposed by t. A zero time-to-live never expires.
func banFrom(t *tx.GroupBanTransaction) *repository.GroupBanData {
	ban := &repository.GroupBanData{
		GroupID:   t.GroupID,
		Offender:  t.Offender,
		Admin:     crypto.PublicKeyToAddress(t.CreatorPublicKey),
		Banned:    t.Timestamp,
		Reason:    t.Reason,
		Reference: t.Signature,
	}
	if t.TimeToLive != 0 {
		expiry := t.Timestamp + int64(t.TimeToLive)*1000
		ban.Expiry = &expiry
	}
	return ban
}
