package builders

import (
	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
)

// DefaultFee is the fee set by every builder.
var DefaultFee = amount.MustParse("0.001")

func base(t tx.Type) tx.BaseTransaction {
	return tx.BaseTransaction{Type: t, Fee: DefaultFee}
}

// Genesis mints amt of native coin for recipient.
func Genesis(recipient string, amt amount.Amount) *tx.GenesisTransaction {
	return &tx.GenesisTransaction{
		BaseTransaction: tx.BaseTransaction{Type: tx.TypeGenesis},
		Recipient:       recipient,
		Amount:          amt,
	}
}

// Pay sends native coin.
func Pay(recipient string, amt amount.Amount) *tx.PaymentTransaction {
	return &tx.PaymentTransaction{
		BaseTransaction: base(tx.TypePayment),
		Recipient:       recipient,
		Amount:          amt,
	}
}

// TransferAsset sends amt of assetID.
func TransferAsset(recipient string, assetID int64, amt amount.Amount) *tx.TransferAssetTransaction {
	return &tx.TransferAssetTransaction{
		BaseTransaction: base(tx.TypeTransferAsset),
		Recipient:       recipient,
		AssetID:         assetID,
		Amount:          amt,
	}
}

// Message sends data with an optional payment in native coin.
func Message(recipient string, amt amount.Amount, data []byte) *tx.MessageTransaction {
	return &tx.MessageTransaction{
		BaseTransaction: base(tx.TypeMessage),
		Recipient:       recipient,
		AssetID:         chain.NativeAssetID,
		Amount:          amt,
		Data:            data,
		IsText:          true,
	}
}

// ATPayment is a payment emitted by the AT at atAddress. The reference
// must match the AT account's last reference to be valid.
func ATPayment(atAddress, recipient string, assetID int64, amt amount.Amount, reference []byte) *tx.ATTransaction {
	return &tx.ATTransaction{
		BaseTransaction: tx.BaseTransaction{Type: tx.TypeAT, Reference: reference},
		ATAddress:       atAddress,
		Recipient:       recipient,
		AssetID:         assetID,
		Amount:          amt,
	}
}

// ATMessage is a message emitted by the AT at atAddress.
func ATMessage(atAddress, recipient string, message []byte, reference []byte) *tx.ATTransaction {
	return &tx.ATTransaction{
		BaseTransaction: tx.BaseTransaction{Type: tx.TypeAT, Reference: reference},
		ATAddress:       atAddress,
		Recipient:       recipient,
		Message:         message,
	}
}
