package tx

// CreateGroupState is maintained by the ledger: the id assigned at creation.
type CreateGroupState struct {
	GroupID int32 `codec:"groupId" json:"groupId,omitempty"`
}

// CreateGroupTransaction creates a group with the creator as owner and admin.
type CreateGroupTransaction struct {
	BaseTransaction
	CreateGroupState

	Owner             string            `json:"owner"`
	GroupName         string            `json:"groupName"`
	Description       string            `json:"description"`
	IsOpen            bool              `json:"isOpen"`
	ApprovalThreshold ApprovalThreshold `json:"approvalThreshold"`
}

func (t *CreateGroupTransaction) LedgerState() any { return &t.CreateGroupState }

func (t *CreateGroupTransaction) encodeFields(w *writer, _ *Codec) error {
	if err := w.putAddress("owner", t.Owner); err != nil {
		return err
	}
	w.putSizedString(t.GroupName)
	w.putSizedString(t.Description)
	w.putBool(t.IsOpen)
	w.putByte(byte(t.ApprovalThreshold))
	return nil
}

func (t *CreateGroupTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.Owner, err = r.getAddress("owner"); err != nil {
		return err
	}
	if t.GroupName, err = r.getSizedString("groupName", c.limits.GroupMaxNameSize); err != nil {
		return err
	}
	if t.Description, err = r.getSizedString("description", c.limits.GroupMaxDescriptionSize); err != nil {
		return err
	}
	if t.IsOpen, err = r.getBool("isOpen"); err != nil {
		return err
	}
	threshold, err := r.getByte("approvalThreshold")
	t.ApprovalThreshold = ApprovalThreshold(threshold)
	return err
}

func (t *CreateGroupTransaction) fieldsLength(*Codec) int {
	return AddressLength + sizedLength(t.GroupName) + sizedLength(t.Description) + BooleanLength + 1
}

// UpdateGroupState is maintained by the ledger: the group's reference before
// this update, so the update can be undone.
type UpdateGroupState struct {
	GroupReference []byte `codec:"groupReference" json:"groupReference,omitempty"`
}

// UpdateGroupTransaction replaces a group's owner, description, openness and
// approval threshold.
type UpdateGroupTransaction struct {
	BaseTransaction
	UpdateGroupState

	GroupID              int32             `json:"groupId"`
	NewOwner             string            `json:"newOwner"`
	NewDescription       string            `json:"newDescription"`
	NewIsOpen            bool              `json:"newIsOpen"`
	NewApprovalThreshold ApprovalThreshold `json:"newApprovalThreshold"`
}

func (t *UpdateGroupTransaction) LedgerState() any { return &t.UpdateGroupState }

func (t *UpdateGroupTransaction) encodeFields(w *writer, _ *Codec) error {
	w.putInt32(t.GroupID)
	if err := w.putAddress("newOwner", t.NewOwner); err != nil {
		return err
	}
	w.putSizedString(t.NewDescription)
	w.putBool(t.NewIsOpen)
	w.putByte(byte(t.NewApprovalThreshold))
	return nil
}

func (t *UpdateGroupTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.GroupID, err = r.getInt32("groupId"); err != nil {
		return err
	}
	if t.NewOwner, err = r.getAddress("newOwner"); err != nil {
		return err
	}
	if t.NewDescription, err = r.getSizedString("newDescription", c.limits.GroupMaxDescriptionSize); err != nil {
		return err
	}
	if t.NewIsOpen, err = r.getBool("newIsOpen"); err != nil {
		return err
	}
	threshold, err := r.getByte("newApprovalThreshold")
	t.NewApprovalThreshold = ApprovalThreshold(threshold)
	return err
}

func (t *UpdateGroupTransaction) fieldsLength(*Codec) int {
	return IntLength + AddressLength + sizedLength(t.NewDescription) + BooleanLength + 1
}

// GroupBanState is maintained by the ledger: references of everything the
// ban removed, so it can be rebuilt on orphan.
type GroupBanState struct {
	MemberReference []byte `codec:"memberReference" json:"memberReference,omitempty"`
	AdminReference  []byte `codec:"adminReference" json:"adminReference,omitempty"`
	JoinReference   []byte `codec:"joinReference" json:"joinReference,omitempty"`
	BanReference    []byte `codec:"banReference" json:"banReference,omitempty"`
}

// GroupBanTransaction bans Offender from a group, removing any membership,
// admin role or pending join request. A zero TimeToLive never expires.
type GroupBanTransaction struct {
	BaseTransaction
	GroupBanState

	GroupID    int32  `json:"groupId"`
	Offender   string `json:"offender"`
	Reason     string `json:"reason"`
	TimeToLive int32  `json:"timeToLive"`
}

func (t *GroupBanTransaction) LedgerState() any { return &t.GroupBanState }

func (t *GroupBanTransaction) encodeFields(w *writer, _ *Codec) error {
	w.putInt32(t.GroupID)
	if err := w.putAddress("offender", t.Offender); err != nil {
		return err
	}
	w.putSizedString(t.Reason)
	w.putInt32(t.TimeToLive)
	return nil
}

func (t *GroupBanTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.GroupID, err = r.getInt32("groupId"); err != nil {
		return err
	}
	if t.Offender, err = r.getAddress("offender"); err != nil {
		return err
	}
	if t.Reason, err = r.getSizedString("reason", c.limits.GroupMaxReasonSize); err != nil {
		return err
	}
	t.TimeToLive, err = r.getInt32("timeToLive")
	return err
}

func (t *GroupBanTransaction) fieldsLength(*Codec) int {
	return IntLength + AddressLength + sizedLength(t.Reason) + IntLength
}

// CancelGroupBanState is maintained by the ledger: the reference of the ban
// that was lifted.
type CancelGroupBanState struct {
	BanReference []byte `codec:"banReference" json:"banReference,omitempty"`
}

// CancelGroupBanTransaction lifts Member's ban from a group.
type CancelGroupBanTransaction struct {
	BaseTransaction
	CancelGroupBanState

	GroupID int32  `json:"groupId"`
	Member  string `json:"member"`
}

func (t *CancelGroupBanTransaction) LedgerState() any { return &t.CancelGroupBanState }

func (t *CancelGroupBanTransaction) encodeFields(w *writer, _ *Codec) error {
	w.putInt32(t.GroupID)
	return w.putAddress("member", t.Member)
}

func (t *CancelGroupBanTransaction) decodeFields(r *reader, _ *Codec) (err error) {
	if t.GroupID, err = r.getInt32("groupId"); err != nil {
		return err
	}
	t.Member, err = r.getAddress("member")
	return err
}

func (t *CancelGroupBanTransaction) fieldsLength(*Codec) int {
	return IntLength + AddressLength
}

// JoinGroupTransaction makes the creator a member of an open group, or files
// a join request for a closed one.
type JoinGroupTransaction struct {
	BaseTransaction
	noLedgerState

	GroupID int32 `json:"groupId"`
}

func (t *JoinGroupTransaction) encodeFields(w *writer, _ *Codec) error {
	w.putInt32(t.GroupID)
	return nil
}

func (t *JoinGroupTransaction) decodeFields(r *reader, _ *Codec) (err error) {
	t.GroupID, err = r.getInt32("groupId")
	return err
}

func (t *JoinGroupTransaction) fieldsLength(*Codec) int {
	return IntLength
}

// LeaveGroupState is maintained by the ledger: the membership and admin
// references removed by the leave.
type LeaveGroupState struct {
	MemberReference []byte `codec:"memberReference" json:"memberReference,omitempty"`
	AdminReference  []byte `codec:"adminReference" json:"adminReference,omitempty"`
}

// LeaveGroupTransaction removes the creator from a group.
type LeaveGroupTransaction struct {
	BaseTransaction
	LeaveGroupState

	GroupID int32 `json:"groupId"`
}

func (t *LeaveGroupTransaction) LedgerState() any { return &t.LeaveGroupState }

func (t *LeaveGroupTransaction) encodeFields(w *writer, _ *Codec) error {
	w.putInt32(t.GroupID)
	return nil
}

func (t *LeaveGroupTransaction) decodeFields(r *reader, _ *Codec) (err error) {
	t.GroupID, err = r.getInt32("groupId")
	return err
}

func (t *LeaveGroupTransaction) fieldsLength(*Codec) int {
	return IntLength
}
