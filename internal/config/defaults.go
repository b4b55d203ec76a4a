package config

import (
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/log"
	"github.com/LeJamon/goQortald/internal/storage/database/backend"
	"github.com/spf13/viper"
)

// setDefaults sets the values used when neither the file nor the
// environment provides one.
func setDefaults(v *viper.Viper) {
	// Chain
	v.SetDefault("chain.qortal_timestamp", 0)
	v.SetDefault("chain.message_release_height", 0)
	v.SetDefault("chain.unit_fee", "0.001")
	v.SetDefault("chain.require_group_for_approval", false)
	v.SetDefault("chain.genesis_file", "")
	v.SetDefault("chain.genesis.timestamp", 0)
	v.SetDefault("chain.genesis.native_asset_name", "QORT")
	v.SetDefault("chain.genesis.native_asset_description", "")

	limits := chain.DefaultLimits()
	v.SetDefault("chain.limits.max_message_data_size", limits.MaxMessageDataSize)
	v.SetDefault("chain.limits.max_at_message_size", limits.MaxATMessageSize)
	v.SetDefault("chain.limits.poll_max_name_size", limits.PollMaxNameSize)
	v.SetDefault("chain.limits.poll_max_description_size", limits.PollMaxDescriptionSize)
	v.SetDefault("chain.limits.poll_max_options", limits.PollMaxOptions)
	v.SetDefault("chain.limits.group_max_name_size", limits.GroupMaxNameSize)
	v.SetDefault("chain.limits.group_max_description_size", limits.GroupMaxDescriptionSize)
	v.SetDefault("chain.limits.group_max_reason_size", limits.GroupMaxReasonSize)
	v.SetDefault("chain.limits.asset_max_name_size", limits.AssetMaxNameSize)
	v.SetDefault("chain.limits.asset_max_description_size", limits.AssetMaxDescriptionSize)
	v.SetDefault("chain.limits.asset_max_quantity", limits.AssetMaxQuantity)

	// Storage
	v.SetDefault("storage.type", backend.TypePebble)
	v.SetDefault("storage.path", "data/ledger")
	v.SetDefault("storage.driver", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.compression", false)

	// Logging
	logDefaults := log.DefaultConfig()
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.output", logDefaults.Output)
}
