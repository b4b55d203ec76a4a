package config

import (
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/crypto"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := validateChainConfig(&config.Chain); err != nil {
		return fmt.Errorf("chain config validation failed: %w", err)
	}

	if err := config.Storage.Validate(); err != nil {
		return fmt.Errorf("storage validation failed: %w", err)
	}

	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}

	return nil
}

func validateChainConfig(c *ChainConfig) error {
	if c.QortalTimestamp < 0 {
		return fmt.Errorf("qortal_timestamp must not be negative, got %d", c.QortalTimestamp)
	}
	if c.MessageReleaseHeight < 0 {
		return fmt.Errorf("message_release_height must not be negative, got %d", c.MessageReleaseHeight)
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}

	fee, err := amount.Parse(c.UnitFee)
	if err != nil {
		return fmt.Errorf("invalid unit_fee %q: %w", c.UnitFee, err)
	}
	if !fee.IsPositive() {
		return fmt.Errorf("unit_fee must be positive, got %s", c.UnitFee)
	}

	// The genesis file is read when chain parameters are built.
	if c.GenesisFile == "" {
		if _, err := c.Genesis.toGenesis(); err != nil {
			return err
		}
	}
	return nil
}

func validateGenesis(g *chain.Genesis) error {
	if g.Timestamp < 0 {
		return fmt.Errorf("genesis timestamp must not be negative, got %d", g.Timestamp)
	}
	for i, gt := range g.Transactions {
		if !crypto.IsValidAddress(gt.Recipient) {
			return fmt.Errorf("genesis transaction %d: invalid recipient %q", i, gt.Recipient)
		}
		if !gt.Amount.IsPositive() {
			return fmt.Errorf("genesis transaction %d: amount must be positive, got %s", i, gt.Amount)
		}
	}
	return nil
}
