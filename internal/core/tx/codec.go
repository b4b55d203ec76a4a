package tx

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/crypto"
	ugorji "github.com/ugorji/go/codec"
)

// Codec converts transaction records to and from their wire encoding.
// Field presence depends on the transaction timestamp through the chain's
// activation table, never on a version byte.
type Codec struct {
	rules  *chain.Rules
	limits chain.Limits
}

// NewCodec creates a codec for the given chain parameters.
func NewCodec(cfg *chain.Config) *Codec {
	return &Codec{rules: cfg.Rules, limits: cfg.Limits}
}

// Rules returns the activation table used by the codec.
func (c *Codec) Rules() *chain.Rules {
	return c.rules
}

// Limits returns the field limits enforced at decode time.
func (c *Codec) Limits() chain.Limits {
	return c.limits
}

// shape selects which common fields a type carries on the wire.
type shape int

const (
	// shapeStandard: header, reference, creator, fields, fee, signature.
	shapeStandard shape = iota
	// shapeGenesis: type, timestamp, fields.
	shapeGenesis
	// shapeAT: header, reference, fields, fee. The signature is derived.
	shapeAT
)

func shapeOf(t Type) shape {
	switch t {
	case TypeGenesis:
		return shapeGenesis
	case TypeAT:
		return shapeAT
	}
	return shapeStandard
}

func (c *Codec) hasGroupID(timestamp int64) bool {
	return c.rules.ActiveAt(chain.FeatureTxGroupID, timestamp)
}

// Decode parses a complete wire encoding. Every failure is a *MalformedError.
func (c *Codec) Decode(data []byte) (Transaction, error) {
	r := &reader{data: data}

	rawType, err := r.getInt32("type")
	if err != nil {
		return nil, err
	}
	r.typ = Type(rawType)

	rec, err := New(r.typ)
	if err != nil {
		return nil, r.fail("type", err)
	}
	b := rec.Base()

	if b.Timestamp, err = r.getInt64("timestamp"); err != nil {
		return nil, err
	}
	b.Version = c.rules.TransactionVersion(b.Timestamp)

	sh := shapeOf(r.typ)
	if sh == shapeGenesis {
		if err := rec.decodeFields(r, c); err != nil {
			return nil, err
		}
		b.CreatorPublicKey = append([]byte(nil), GenesisPublicKey...)
	} else {
		if c.hasGroupID(b.Timestamp) {
			if b.TxGroupID, err = r.getInt32("txGroupId"); err != nil {
				return nil, err
			}
		}
		if b.Reference, err = r.getFixed("reference", ReferenceLength); err != nil {
			return nil, err
		}
		if sh == shapeStandard {
			if b.CreatorPublicKey, err = r.getFixed("creatorPublicKey", PublicKeyLength); err != nil {
				return nil, err
			}
		}
		if err := rec.decodeFields(r, c); err != nil {
			return nil, err
		}
		if b.Fee, err = r.getAmount("fee"); err != nil {
			return nil, err
		}
		if sh == shapeStandard {
			if b.Signature, err = r.getFixed("signature", SignatureLength); err != nil {
				return nil, err
			}
		}
	}

	if r.remaining() != 0 {
		return nil, r.fail("", fmt.Errorf("%w: %d", ErrTrailingBytes, r.remaining()))
	}

	if sh != shapeStandard {
		sig, err := c.PseudoSignature(rec)
		if err != nil {
			return nil, r.fail("signature", err)
		}
		b.Signature = sig
	}
	return rec, nil
}

// Encode returns the full wire encoding. Signed kinds must carry a signature.
func (c *Codec) Encode(t Transaction) ([]byte, error) {
	if shapeOf(t.TxType()) == shapeStandard && len(t.Base().Signature) == 0 {
		return nil, ErrMissingSignature
	}
	w, err := c.encode(t, true)
	if err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// SigningBytes returns the payload covered by the creator's signature.
//
// CREATE_POLL records older than the signing tag activation were signed with
// the REGISTER_NAME tag in place of their own; that defect is part of
// consensus and is reproduced here.
func (c *Codec) SigningBytes(t Transaction) ([]byte, error) {
	w, err := c.encode(t, false)
	if err != nil {
		return nil, err
	}
	out := w.bytes()
	if t.TxType() == TypeCreatePoll && !c.rules.ActiveAt(chain.FeaturePollSigningTag, t.Base().Timestamp) {
		binary.BigEndian.PutUint32(out[:TypeLength], uint32(TypeRegisterName))
	}
	return out, nil
}

// WireLength returns the length of Encode(t) without encoding it.
func (c *Codec) WireLength(t Transaction) (int, error) {
	b := t.Base()
	if _, err := New(b.Type); err != nil {
		return 0, err
	}
	n := TypeLength + TimestampLength
	sh := shapeOf(b.Type)
	if sh == shapeGenesis {
		return n + t.fieldsLength(c), nil
	}
	if c.hasGroupID(b.Timestamp) {
		n += GroupIDLength
	}
	n += ReferenceLength
	if sh == shapeStandard {
		n += PublicKeyLength
	}
	n += t.fieldsLength(c) + AmountLength
	if sh == shapeStandard {
		n += SignatureLength
	}
	return n, nil
}

// PseudoSignature returns the digest-based signature of a machine-generated
// transaction: SHA-256 of its encoding, repeated to signature length.
func (c *Codec) PseudoSignature(t Transaction) ([]byte, error) {
	w, err := c.encode(t, false)
	if err != nil {
		return nil, err
	}
	digest := crypto.Digest(w.bytes())
	sig := make([]byte, 0, SignatureLength)
	sig = append(sig, digest...)
	return append(sig, digest...), nil
}

func (c *Codec) encode(t Transaction, withSignature bool) (*writer, error) {
	b := t.Base()
	rec, err := New(b.Type)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(rec) != reflect.TypeOf(t) {
		return nil, fmt.Errorf("%w: %s in %T", ErrWrongType, b.Type, t)
	}

	w := &writer{}
	w.putInt32(int32(b.Type))
	w.putInt64(b.Timestamp)

	sh := shapeOf(b.Type)
	if sh == shapeGenesis {
		return w, t.encodeFields(w, c)
	}

	if c.hasGroupID(b.Timestamp) {
		w.putInt32(b.TxGroupID)
	} else if b.TxGroupID != chain.NoGroup {
		return nil, fmt.Errorf("txGroupId %d cannot be encoded before its activation", b.TxGroupID)
	}
	if err := w.putFixed("reference", b.Reference, ReferenceLength); err != nil {
		return nil, err
	}
	if sh == shapeStandard {
		if err := w.putFixed("creatorPublicKey", b.CreatorPublicKey, PublicKeyLength); err != nil {
			return nil, err
		}
	}
	if err := t.encodeFields(w, c); err != nil {
		return nil, err
	}
	w.putAmount(b.Fee)
	if sh == shapeStandard && withSignature {
		if err := w.putFixed("signature", b.Signature, SignatureLength); err != nil {
			return nil, err
		}
	}
	return w, nil
}

var msgpack = &ugorji.MsgpackHandle{}

// EncodeLedgerState serializes the ledger-maintained fields of t for storage
// alongside its wire encoding. Kinds without such fields return nil.
func EncodeLedgerState(t Transaction) ([]byte, error) {
	state := t.LedgerState()
	if state == nil {
		return nil, nil
	}
	var out []byte
	if err := ugorji.NewEncoderBytes(&out, msgpack).Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode %s ledger state: %w", t.TxType(), err)
	}
	return out, nil
}

// DecodeLedgerState restores fields written by EncodeLedgerState.
func DecodeLedgerState(t Transaction, data []byte) error {
	state := t.LedgerState()
	if state == nil || len(data) == 0 {
		return nil
	}
	if err := ugorji.NewDecoderBytes(data, msgpack).Decode(state); err != nil {
		return fmt.Errorf("failed to decode %s ledger state: %w", t.TxType(), err)
	}
	return nil
}
