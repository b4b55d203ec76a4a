// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package chain

import (
	"math"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQortalRules(t *testing.T) {
	const qortalTimestamp = 1_000_000
	rules := QortalRules(qortalTimestamp, 50)

	tests := []struct {
		name      string
		feature   Feature
		timestamp int64
		want      bool
	}{
		{"group id before", FeatureTxGroupID, qortalTimestamp - 1, false},
		{"group id at", FeatureTxGroupID, qortalTimestamp, true},
		{"voter count after", FeaturePollWithoutVoterCount, qortalTimestamp + 1, true},
		{"signing tag before", FeaturePollSigningTag, 0, false},
		{"height feature never matches timestamps", FeatureMessageRelease, qortalTimestamp * 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.ActiveAt(tt.feature, tt.timestamp))
		})
	}

	assert.False(t, rules.ActiveAtHeight(FeatureMessageRelease, 49))
	assert.True(t, rules.ActiveAtHeight(FeatureMessageRelease, 50))
	assert.False(t, rules.ActiveAtHeight(FeatureTxGroupID, 1_000_000_000))
}

func TestTransactionVersion(t *testing.T) {
	rules := QortalRules(500, 0)
	assert.Equal(t, 1, rules.TransactionVersion(499))
	assert.Equal(t, 4, rules.TransactionVersion(500))
}

func TestUnscheduledFeatureInactive(t *testing.T) {
	rules := NewRulesBuilder().Activate(FeatureTxGroupID, 0).MustBuild()
	assert.True(t, rules.ActiveAt(FeatureTxGroupID, 0))
	assert.False(t, rules.ActiveAt(FeaturePollSigningTag, 1<<62))

	_, ok := rules.Threshold(FeaturePollSigningTag)
	assert.False(t, ok)
}

func TestNewRulesRejectsBadTables(t *testing.T) {
	_, err := NewRules([]Activation{{FeatureTxGroupID, 1}, {FeatureTxGroupID, 2}})
	require.Error(t, err)

	_, err = NewRules([]Activation{{Feature(99), 1}})
	require.Error(t, err)

	_, err = NewRules([]Activation{{FeatureTxGroupID, -1}})
	require.Error(t, err)
}

func TestTableOrdered(t *testing.T) {
	rules := NewRulesBuilder().
		Activate(FeaturePollSigningTag, 30).
		Activate(FeatureTxGroupID, 10).
		Activate(FeatureTransactionV4, 20).
		Activate(FeatureTxGroupID, 5).
		MustBuild()

	table := rules.Table()
	require.Len(t, table, 3)
	assert.Equal(t, Activation{FeatureTxGroupID, 5}, table[0])
	assert.Equal(t, Activation{FeatureTransactionV4, 20}, table[1])
	assert.Equal(t, Activation{FeaturePollSigningTag, 30}, table[2])
}

func TestFeatureByName(t *testing.T) {
	for _, f := range AllFeatures() {
		got, ok := FeatureByName(f.Name())
		require.True(t, ok, f.Name())
		assert.Equal(t, f, got)
	}
	_, ok := FeatureByName("nope")
	assert.False(t, ok)
}

func TestConfigValidate(t *testing.T) {
	cfg := TestConfig()
	require.NoError(t, cfg.Validate())

	cfg.Limits.PollMaxOptions = 0
	require.Error(t, cfg.Validate())

	cfg = TestConfig()
	cfg.Rules = nil
	require.ErrorIs(t, cfg.Validate(), ErrNoRules)
}

func TestLimitsRejectUnrepresentableAssetQuantity(t *testing.T) {
	largest := int64(math.MaxInt64 / amount.Scale)

	cfg := TestConfig()
	cfg.Limits.AssetMaxQuantity = largest
	require.NoError(t, cfg.Validate())

	cfg.Limits.AssetMaxQuantity = largest + 1
	require.Error(t, cfg.Validate())

	cfg.Limits.AssetMaxQuantity = math.MaxInt64
	require.Error(t, cfg.Validate())
}
