package tx

import (
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
)

// GenesisTransaction credits a recipient with native coin in the first block.
type GenesisTransaction struct {
	BaseTransaction
	noLedgerState

	Recipient string        `json:"recipient"`
	Amount    amount.Amount `json:"amount"`
}

func (t *GenesisTransaction) encodeFields(w *writer, _ *Codec) error {
	if err := w.putAddress("recipient", t.Recipient); err != nil {
		return err
	}
	w.putAmount(t.Amount)
	return nil
}

func (t *GenesisTransaction) decodeFields(r *reader, _ *Codec) (err error) {
	if t.Recipient, err = r.getAddress("recipient"); err != nil {
		return err
	}
	t.Amount, err = r.getAmount("amount")
	return err
}

func (t *GenesisTransaction) fieldsLength(*Codec) int {
	return AddressLength + AmountLength
}

// PaymentTransaction moves native coin between accounts.
type PaymentTransaction struct {
	BaseTransaction
	noLedgerState

	Recipient string        `json:"recipient"`
	Amount    amount.Amount `json:"amount"`
}

func (t *PaymentTransaction) encodeFields(w *writer, _ *Codec) error {
	if err := w.putAddress("recipient", t.Recipient); err != nil {
		return err
	}
	w.putAmount(t.Amount)
	return nil
}

func (t *PaymentTransaction) decodeFields(r *reader, _ *Codec) (err error) {
	if t.Recipient, err = r.getAddress("recipient"); err != nil {
		return err
	}
	t.Amount, err = r.getAmount("amount")
	return err
}

func (t *PaymentTransaction) fieldsLength(*Codec) int {
	return AddressLength + AmountLength
}

// TransferAssetTransaction moves an amount of any asset between accounts.
type TransferAssetTransaction struct {
	BaseTransaction
	noLedgerState

	Recipient string        `json:"recipient"`
	AssetID   int64         `json:"assetId"`
	Amount    amount.Amount `json:"amount"`
}

func (t *TransferAssetTransaction) encodeFields(w *writer, _ *Codec) error {
	if err := w.putAddress("recipient", t.Recipient); err != nil {
		return err
	}
	w.putInt64(t.AssetID)
	w.putAmount(t.Amount)
	return nil
}

func (t *TransferAssetTransaction) decodeFields(r *reader, _ *Codec) (err error) {
	if t.Recipient, err = r.getAddress("recipient"); err != nil {
		return err
	}
	if t.AssetID, err = r.getInt64("assetId"); err != nil {
		return err
	}
	t.Amount, err = r.getAmount("amount")
	return err
}

func (t *TransferAssetTransaction) fieldsLength(*Codec) int {
	return AddressLength + LongLength + AmountLength
}

// MessageTransaction carries arbitrary data to a recipient, optionally with a
// payment attached. Version 1 messages have no asset field and pay in native
// coin only.
type MessageTransaction struct {
	BaseTransaction
	noLedgerState

	Recipient   string        `json:"recipient"`
	AssetID     int64         `json:"assetId"`
	Amount      amount.Amount `json:"amount"`
	Data        []byte        `json:"data"`
	IsEncrypted bool          `json:"isEncrypted"`
	IsText      bool          `json:"isText"`
}

func (c *Codec) messageHasAsset(timestamp int64) bool {
	return c.rules.TransactionVersion(timestamp) != 1
}

func (t *MessageTransaction) encodeFields(w *writer, c *Codec) error {
	if err := w.putAddress("recipient", t.Recipient); err != nil {
		return err
	}
	if c.messageHasAsset(t.Timestamp) {
		w.putInt64(t.AssetID)
	} else if t.AssetID != chain.NativeAssetID {
		return fmt.Errorf("version 1 message cannot carry asset %d", t.AssetID)
	}
	w.putAmount(t.Amount)
	w.putSizedBytes(t.Data)
	w.putBool(t.IsEncrypted)
	w.putBool(t.IsText)
	return nil
}

func (t *MessageTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.Recipient, err = r.getAddress("recipient"); err != nil {
		return err
	}
	t.AssetID = chain.NativeAssetID
	if c.messageHasAsset(t.Timestamp) {
		if t.AssetID, err = r.getInt64("assetId"); err != nil {
			return err
		}
	}
	if t.Amount, err = r.getAmount("amount"); err != nil {
		return err
	}
	if t.Data, err = r.getSizedBytes("data", c.limits.MaxMessageDataSize); err != nil {
		return err
	}
	if t.IsEncrypted, err = r.getBool("isEncrypted"); err != nil {
		return err
	}
	t.IsText, err = r.getBool("isText")
	return err
}

func (t *MessageTransaction) fieldsLength(c *Codec) int {
	n := AddressLength + AmountLength + sizedLength(t.Data) + 2*BooleanLength
	if c.messageHasAsset(t.Timestamp) {
		n += LongLength
	}
	return n
}

// ATTransaction is emitted by an automated transaction account: either a
// payment or a message, never both.
type ATTransaction struct {
	BaseTransaction
	noLedgerState

	ATAddress string        `json:"atAddress"`
	Recipient string        `json:"recipient"`
	AssetID   int64         `json:"assetId"`
	Amount    amount.Amount `json:"amount"`
	Message   []byte        `json:"message"`
}

func (t *ATTransaction) encodeFields(w *writer, _ *Codec) error {
	if err := w.putAddress("atAddress", t.ATAddress); err != nil {
		return err
	}
	if err := w.putAddress("recipient", t.Recipient); err != nil {
		return err
	}
	w.putInt64(t.AssetID)
	w.putAmount(t.Amount)
	w.putSizedBytes(t.Message)
	return nil
}

func (t *ATTransaction) decodeFields(r *reader, c *Codec) (err error) {
	if t.ATAddress, err = r.getAddress("atAddress"); err != nil {
		return err
	}
	if t.Recipient, err = r.getAddress("recipient"); err != nil {
		return err
	}
	if t.AssetID, err = r.getInt64("assetId"); err != nil {
		return err
	}
	if t.Amount, err = r.getAmount("amount"); err != nil {
		return err
	}
	t.Message, err = r.getSizedBytes("message", c.limits.MaxATMessageSize)
	return err
}

func (t *ATTransaction) fieldsLength(*Codec) int {
	return 2*AddressLength + LongLength + AmountLength + sizedLength(t.Message)
}
