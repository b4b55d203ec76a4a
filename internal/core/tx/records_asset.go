package tx

// IssueAssetState is maintained by the ledger: the id assigned at issue.
type IssueAssetState struct {
	AssetID int64 `codec:"assetId" json:"assetId,omitempty"`
}

// IssueAssetTransaction creates a new asset owned by Owner. Quantity is in
// whole units.
type IssueAssetTransaction struct {
	BaseTransaction
	IssueAssetState

	Owner       string `json:"owner"`
	AssetName   string `json:"assetName"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	IsDivisible bool   `json:"isDivisible"`
}

func (t *IssueAssetTransaction) LedgerState() any { return &t.IssueAssetState }

func (t *IssueAssetTransaction) encodeFields(w *writer, _ *Codec) error {
	if err := w.putAddress("owner", t.Owner); err != nil {
		return err
	}
	w.putSizedString(t.AssetName)
	w.putSizedString(t.Description)
	w.putInt64(t.Quantity)
	w.putBool(t.IsDivisible)
	return nil
}

func (t *IssueAssetTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.Owner, err = r.getAddress("owner"); err != nil {
		return err
	}
	if t.AssetName, err = r.getSizedString("assetName", c.limits.AssetMaxNameSize); err != nil {
		return err
	}
	if t.Description, err = r.getSizedString("description", c.limits.AssetMaxDescriptionSize); err != nil {
		return err
	}
	if t.Quantity, err = r.getInt64("quantity"); err != nil {
		return err
	}
	t.IsDivisible, err = r.getBool("isDivisible")
	return err
}

func (t *IssueAssetTransaction) fieldsLength(*Codec) int {
	return AddressLength + sizedLength(t.AssetName) + sizedLength(t.Description) + LongLength + BooleanLength
}
