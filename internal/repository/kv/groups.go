package kv

import (
	"context"
	"encoding/binary"

	"github.com/LeJamon/goQortald/internal/repository"
)

type groups struct{ s *store }

func (g groups) FromGroupID(ctx context.Context, groupID int32) (*repository.GroupData, error) {
	var data repository.GroupData
	ok, err := g.s.get(ctx, "get group", makeKey(prefixGroup, be32(groupID)), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (g groups) FromGroupName(ctx context.Context, name string) (*repository.GroupData, error) {
	raw, err := g.s.readRaw(ctx, "get group by name", makeKey(prefixGroupName, []byte(name)))
	if err != nil || raw == nil {
		return nil, err
	}
	if len(raw) != 4 {
		return nil, repository.NewError(repository.KindEncoding, "get group by name", nil)
	}
	return g.FromGroupID(ctx, int32(binary.BigEndian.Uint32(raw)))
}

func (g groups) GroupExists(ctx context.Context, groupID int32) (bool, error) {
	return g.s.has(ctx, "group exists", makeKey(prefixGroup, be32(groupID)))
}

func (g groups) MaxGroupID(ctx context.Context) (int32, error) {
	last, err := g.s.lastKey(ctx, "max group id", prefixGroup)
	if err != nil || last == nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(last[len(prefixGroup):])), nil
}

func (g groups) Save(ctx context.Context, group *repository.GroupData) error {
	if err := g.s.put(ctx, "save group", makeKey(prefixGroup, be32(group.GroupID)), group); err != nil {
		return err
	}
	return g.s.writeRaw(ctx, "save group", makeKey(prefixGroupName, []byte(group.Name)), be32(group.GroupID))
}

func (g groups) Delete(ctx context.Context, groupID int32) error {
	group, err := g.FromGroupID(ctx, groupID)
	if err != nil || group == nil {
		return err
	}
	if err := g.s.del(ctx, "delete group", makeKey(prefixGroupName, []byte(group.Name))); err != nil {
		return err
	}
	return g.s.del(ctx, "delete group", makeKey(prefixGroup, be32(groupID)))
}

func (g groups) GetMember(ctx context.Context, groupID int32, address string) (*repository.GroupMemberData, error) {
	var data repository.GroupMemberData
	ok, err := g.s.get(ctx, "get group member", groupScoped(prefixMember, groupID, address), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (g groups) GetMembers(ctx context.Context, groupID int32) ([]repository.GroupMemberData, error) {
	return scanAll[repository.GroupMemberData](ctx, g.s, "get group members", makeKey(prefixMember, be32(groupID)))
}

func (g groups) SaveMember(ctx context.Context, member *repository.GroupMemberData) error {
	return g.s.put(ctx, "save group member", groupScoped(prefixMember, member.GroupID, member.Member), member)
}

func (g groups) DeleteMember(ctx context.Context, groupID int32, address string) error {
	return g.s.del(ctx, "delete group member", groupScoped(prefixMember, groupID, address))
}

func (g groups) GetAdmin(ctx context.Context, groupID int32, address string) (*repository.GroupAdminData, error) {
	var data repository.GroupAdminData
	ok, err := g.s.get(ctx, "get group admin", groupScoped(prefixAdmin, groupID, address), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (g groups) SaveAdmin(ctx context.Context, admin *repository.GroupAdminData) error {
	return g.s.put(ctx, "save group admin", groupScoped(prefixAdmin, admin.GroupID, admin.Admin), admin)
}

func (g groups) DeleteAdmin(ctx context.Context, groupID int32, address string) error {
	return g.s.del(ctx, "delete group admin", groupScoped(prefixAdmin, groupID, address))
}

func (g groups) GetJoinRequest(ctx context.Context, groupID int32, address string) (*repository.GroupJoinRequestData, error) {
	var data repository.GroupJoinRequestData
	ok, err := g.s.get(ctx, "get join request", groupScoped(prefixJoinRequest, groupID, address), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (g groups) SaveJoinRequest(ctx context.Context, request *repository.GroupJoinRequestData) error {
	return g.s.put(ctx, "save join request", groupScoped(prefixJoinRequest, request.GroupID, request.Joiner), request)
}

func (g groups) DeleteJoinRequest(ctx context.Context, groupID int32, address string) error {
	return g.s.del(ctx, "delete join request", groupScoped(prefixJoinRequest, groupID, address))
}

func (g groups) GetBan(ctx context.Context, groupID int32, address string) (*repository.GroupBanData, error) {
	var data repository.GroupBanData
	ok, err := g.s.get(ctx, "get group ban", groupScoped(prefixBan, groupID, address), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (g groups) SaveBan(ctx context.Context, ban *repository.GroupBanData) error {
	return g.s.put(ctx, "save group ban", groupScoped(prefixBan, ban.GroupID, ban.Offender), ban)
}

func (g groups) DeleteBan(ctx context.Context, groupID int32, address string) error {
	return g.s.del(ctx, "delete group ban", groupScoped(prefixBan, groupID, address))
}
