package chain

import (
	"errors"
	"fmt"
	"math"

	"github.com/LeJamon/goQortald/internal/core/amount"
)

const (
	// NativeAssetID is the id of the chain's own coin.
	NativeAssetID int64 = 0

	// NoGroup is the txGroupId of transactions submitted outside any group.
	NoGroup int32 = 0
)

// Limits bounds variable-length transaction fields. Codec limits reject at
// decode time; validators check the same limits for records built in memory.
type Limits struct {
	MaxMessageDataSize int `mapstructure:"max_message_data_size"`
	MaxATMessageSize   int `mapstructure:"max_at_message_size"`

	PollMaxNameSize        int `mapstructure:"poll_max_name_size"`
	PollMaxDescriptionSize int `mapstructure:"poll_max_description_size"`
	PollMaxOptions         int `mapstructure:"poll_max_options"`

	GroupMaxNameSize        int `mapstructure:"group_max_name_size"`
	GroupMaxDescriptionSize int `mapstructure:"group_max_description_size"`
	GroupMaxReasonSize      int `mapstructure:"group_max_reason_size"`

	AssetMaxNameSize        int   `mapstructure:"asset_max_name_size"`
	AssetMaxDescriptionSize int   `mapstructure:"asset_max_description_size"`
	AssetMaxQuantity        int64 `mapstructure:"asset_max_quantity"`
}

// DefaultLimits returns the consensus field limits.
func DefaultLimits() Limits {
	return Limits{
		MaxMessageDataSize:      4000,
		MaxATMessageSize:        256,
		PollMaxNameSize:         400,
		PollMaxDescriptionSize:  4000,
		PollMaxOptions:          100,
		GroupMaxNameSize:        32,
		GroupMaxDescriptionSize: 128,
		GroupMaxReasonSize:      128,
		AssetMaxNameSize:        400,
		AssetMaxDescriptionSize: 4000,
		AssetMaxQuantity:        10_000_000_000,
	}
}

// Validate checks that every limit is positive.
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"max_message_data_size", int64(l.MaxMessageDataSize)},
		{"max_at_message_size", int64(l.MaxATMessageSize)},
		{"poll_max_name_size", int64(l.PollMaxNameSize)},
		{"poll_max_description_size", int64(l.PollMaxDescriptionSize)},
		{"poll_max_options", int64(l.PollMaxOptions)},
		{"group_max_name_size", int64(l.GroupMaxNameSize)},
		{"group_max_description_size", int64(l.GroupMaxDescriptionSize)},
		{"group_max_reason_size", int64(l.GroupMaxReasonSize)},
		{"asset_max_name_size", int64(l.AssetMaxNameSize)},
		{"asset_max_description_size", int64(l.AssetMaxDescriptionSize)},
		{"asset_max_quantity", l.AssetMaxQuantity},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("limit %s must be positive, got %d", c.name, c.value)
		}
	}
	// Issued quantities are credited as whole units of an Amount.
	if maxQuantity := int64(math.MaxInt64 / amount.Scale); l.AssetMaxQuantity > maxQuantity {
		return fmt.Errorf("limit asset_max_quantity must not exceed %d, got %d", maxQuantity, l.AssetMaxQuantity)
	}
	return nil
}

// GenesisTransaction credits a recipient with native coin in the genesis block.
type GenesisTransaction struct {
	Recipient string        `json:"recipient"`
	Amount    amount.Amount `json:"amount"`
}

// Genesis defines the first block.
type Genesis struct {
	Timestamp              int64                `json:"timestamp"`
	NativeAssetName        string               `json:"native_asset_name"`
	NativeAssetDescription string               `json:"native_asset_description"`
	Transactions           []GenesisTransaction `json:"transactions"`
}

// Config is the complete set of consensus parameters.
type Config struct {
	Rules   *Rules
	Limits  Limits
	UnitFee amount.Amount

	// RequireGroupForApproval rejects NoGroup for transaction types that need
	// group approval.
	RequireGroupForApproval bool

	Genesis Genesis
}

var ErrNoRules = errors.New("chain config has no activation rules")

// Validate checks internal consistency.
func (c *Config) Validate() error {
	if c.Rules == nil {
		return ErrNoRules
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if !c.UnitFee.IsPositive() {
		return fmt.Errorf("unit fee must be positive, got %s", c.UnitFee)
	}
	for i, gt := range c.Genesis.Transactions {
		if gt.Amount.IsNegative() {
			return fmt.Errorf("genesis transaction %d has negative amount %s", i, gt.Amount)
		}
	}
	return nil
}

// TestConfig returns a config with default limits, a 0.001 unit fee and
// every feature active from the start.
func TestConfig() *Config {
	return &Config{
		Rules:   QortalRules(0, 0),
		Limits:  DefaultLimits(),
		UnitFee: amount.MustParse("0.001"),
	}
}
