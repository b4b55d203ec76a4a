// Package block applies and orphans whole blocks of transactions. A block is
// processed inside one repository unit of work: either every transaction
// applies and the block is saved, or nothing changes.
package block

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
)

// GenesisHeight is the height of the first block.
const GenesisHeight = 1

// Block is an ordered list of transactions applied at one height.
type Block struct {
	// Height is assigned from the chain tip when zero.
	Height       int
	Timestamp    int64
	Transactions []tx.Transaction
	// Signature is derived by Sign when nil.
	Signature []byte
}

// Sign derives the block signature: the digest of the height, timestamp and
// transaction signatures, repeated to signature length.
func Sign(height int, timestamp int64, signatures [][]byte) []byte {
	buf := make([]byte, 0, 12+len(signatures)*tx.SignatureLength)
	buf = binary.BigEndian.AppendUint32(buf, uint32(height))
	buf = binary.BigEndian.AppendUint64(buf, uint64(timestamp))
	for _, sig := range signatures {
		buf = append(buf, sig...)
	}
	digest := crypto.Digest(buf)
	sig := make([]byte, 0, tx.SignatureLength)
	sig = append(sig, digest...)
	return append(sig, digest...)
}

func (b *Block) signatures() [][]byte {
	sigs := make([][]byte, len(b.Transactions))
	for i, t := range b.Transactions {
		sigs[i] = t.Base().Signature
	}
	return sigs
}

func (b *Block) data() *repository.BlockData {
	if b.Signature == nil {
		b.Signature = Sign(b.Height, b.Timestamp, b.signatures())
	}
	return &repository.BlockData{
		Height:       b.Height,
		Timestamp:    b.Timestamp,
		Signature:    b.Signature,
		Transactions: b.signatures(),
	}
}

// Encoded is the interchange form of a block: transactions as hex wire
// encodings.
type Encoded struct {
	Height       int      `json:"height,omitempty"`
	Timestamp    int64    `json:"timestamp"`
	Transactions []string `json:"transactions"`
}

// Decode parses every transaction of e.
func (e Encoded) Decode(codec *tx.Codec) (*Block, error) {
	b := &Block{
		Height:       e.Height,
		Timestamp:    e.Timestamp,
		Transactions: make([]tx.Transaction, 0, len(e.Transactions)),
	}
	for i, s := range e.Transactions {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("transaction %d is not hex: %w", i, err)
		}
		t, err := codec.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode transaction %d: %w", i, err)
		}
		b.Transactions = append(b.Transactions, t)
	}
	return b, nil
}

// Encode returns the interchange form of b.
func Encode(codec *tx.Codec, b *Block) (Encoded, error) {
	e := Encoded{
		Height:       b.Height,
		Timestamp:    b.Timestamp,
		Transactions: make([]string, 0, len(b.Transactions)),
	}
	for i, t := range b.Transactions {
		raw, err := codec.Encode(t)
		if err != nil {
			return Encoded{}, fmt.Errorf("failed to encode transaction %d: %w", i, err)
		}
		e.Transactions = append(e.Transactions, hex.EncodeToString(raw))
	}
	return e, nil
}
