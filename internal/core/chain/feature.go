// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package chain holds the consensus parameters of the chain: the activation
// table for format and rule changes, field size limits, fees and the genesis
// block definition.
package chain

import "fmt"

// Trigger selects what an activation threshold is compared against.
type Trigger int

const (
	// TriggerTimestamp activates a feature for transactions whose timestamp
	// is at or after the threshold (milliseconds since epoch).
	TriggerTimestamp Trigger = iota
	// TriggerHeight activates a feature once the chain height reaches the threshold.
	TriggerHeight
)

func (t Trigger) String() string {
	switch t {
	case TriggerTimestamp:
		return "timestamp"
	case TriggerHeight:
		return "height"
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// Feature is a format or rule change that takes effect at an activation threshold.
type Feature int

const (
	// FeatureTxGroupID adds the 4-byte txGroupId field after the timestamp.
	FeatureTxGroupID Feature = iota
	// FeaturePollWithoutVoterCount drops the per-option voter count from
	// CREATE_POLL encodings.
	FeaturePollWithoutVoterCount
	// FeaturePollSigningTag signs CREATE_POLL with its own type tag instead of
	// the REGISTER_NAME tag used by the first implementation.
	FeaturePollSigningTag
	// FeatureTransactionV4 moves transactions from version 1 to version 4.
	// Version 4 MESSAGE transactions carry an asset id and may have zero amount.
	FeatureTransactionV4
	// FeatureMessageRelease enables MESSAGE transactions.
	FeatureMessageRelease

	featureCount
)

type featureInfo struct {
	name    string
	trigger Trigger
}

var featureTable = [featureCount]featureInfo{
	FeatureTxGroupID:             {"txGroupId", TriggerTimestamp},
	FeaturePollWithoutVoterCount: {"pollWithoutVoterCount", TriggerTimestamp},
	FeaturePollSigningTag:        {"pollSigningTag", TriggerTimestamp},
	FeatureTransactionV4:         {"transactionV4", TriggerTimestamp},
	FeatureMessageRelease:        {"messageRelease", TriggerHeight},
}

// Name returns the configuration name of the feature.
func (f Feature) Name() string {
	if f < 0 || f >= featureCount {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureTable[f].name
}

func (f Feature) String() string {
	return f.Name()
}

// Trigger returns what the feature's threshold is compared against.
func (f Feature) Trigger() Trigger {
	return featureTable[f].trigger
}

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool {
	return f >= 0 && f < featureCount
}

// FeatureByName looks up a feature by its configuration name.
func FeatureByName(name string) (Feature, bool) {
	for f := Feature(0); f < featureCount; f++ {
		if featureTable[f].name == name {
			return f, true
		}
	}
	return 0, false
}

// AllFeatures returns every known feature in declaration order.
func AllFeatures() []Feature {
	out := make([]Feature, 0, featureCount)
	for f := Feature(0); f < featureCount; f++ {
		out = append(out, f)
	}
	return out
}
