package builders

import (
	"testing"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/stretchr/testify/assert"
)

func TestBuildersSetTypeAndFee(t *testing.T) {
	records := []tx.Transaction{
		Pay("QRecipient", DefaultFee),
		TransferAsset("QRecipient", 1, DefaultFee),
		Message("QRecipient", DefaultFee, []byte("hi")),
		IssueAsset("QOwner", "gold", 10, true),
		CreatePoll("QOwner", "colour", "red", "blue"),
		Vote("colour", 1),
		CreateGroup("QOwner", "club", true),
		UpdateGroup(1, "QOwner", "club", false),
		JoinGroup(1),
		LeaveGroup(1),
		Ban(1, "QOffender", "spam", 0),
		CancelBan(1, "QOffender"),
	}
	for _, rec := range records {
		fresh, err := tx.New(rec.TxType())
		assert.NoError(t, err)
		assert.IsType(t, fresh, rec)
		assert.Equal(t, DefaultFee, rec.Base().Fee, rec.TxType().String())
	}
}

func TestPseudoBuildersCarryNoFee(t *testing.T) {
	g := Genesis("QRecipient", DefaultFee)
	assert.Equal(t, tx.TypeGenesis, g.TxType())
	assert.True(t, g.Fee.IsZero())

	at := ATMessage("QAT", "QRecipient", []byte{1}, nil)
	assert.Equal(t, tx.TypeAT, at.TxType())
	assert.Equal(t, chain.NativeAssetID, at.AssetID)
}
