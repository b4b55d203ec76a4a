// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package chain

import (
	"fmt"
	"sort"
)

// Activation is one row of the activation table.
type Activation struct {
	Feature   Feature
	Threshold int64
}

// Rules is the read-only activation table consulted by the codec and the
// validators. Features absent from the table are never active.
type Rules struct {
	thresholds map[Feature]int64
	table      []Activation
}

// NewRules builds Rules from an activation table. Each feature may appear once.
func NewRules(table []Activation) (*Rules, error) {
	r := &Rules{
		thresholds: make(map[Feature]int64, len(table)),
		table:      make([]Activation, 0, len(table)),
	}
	for _, a := range table {
		if !a.Feature.Valid() {
			return nil, fmt.Errorf("unknown feature %d in activation table", int(a.Feature))
		}
		if _, dup := r.thresholds[a.Feature]; dup {
			return nil, fmt.Errorf("feature %s listed twice in activation table", a.Feature)
		}
		if a.Threshold < 0 {
			return nil, fmt.Errorf("feature %s has negative activation %s", a.Feature, a.Feature.Trigger())
		}
		r.thresholds[a.Feature] = a.Threshold
		r.table = append(r.table, a)
	}
	sort.SliceStable(r.table, func(i, j int) bool {
		if r.table[i].Threshold != r.table[j].Threshold {
			return r.table[i].Threshold < r.table[j].Threshold
		}
		return r.table[i].Feature < r.table[j].Feature
	})
	return r, nil
}

// MustNewRules is NewRules for static tables.
func MustNewRules(table []Activation) *Rules {
	r, err := NewRules(table)
	if err != nil {
		panic(err)
	}
	return r
}

// ActiveAt reports whether a timestamp-triggered feature applies to a
// transaction with the given timestamp.
func (r *Rules) ActiveAt(f Feature, timestamp int64) bool {
	if f.Trigger() != TriggerTimestamp {
		return false
	}
	threshold, ok := r.thresholds[f]
	return ok && timestamp >= threshold
}

// ActiveAtHeight reports whether a height-triggered feature applies at the
// given chain height.
func (r *Rules) ActiveAtHeight(f Feature, height int) bool {
	if f.Trigger() != TriggerHeight {
		return false
	}
	threshold, ok := r.thresholds[f]
	return ok && int64(height) >= threshold
}

// Threshold returns the activation threshold of f and whether f is scheduled.
func (r *Rules) Threshold(f Feature) (int64, bool) {
	t, ok := r.thresholds[f]
	return t, ok
}

// TransactionVersion returns the transaction version implied by a timestamp.
func (r *Rules) TransactionVersion(timestamp int64) int {
	if r.ActiveAt(FeatureTransactionV4, timestamp) {
		return 4
	}
	return 1
}

// Table returns the activation table ordered by threshold.
func (r *Rules) Table() []Activation {
	out := make([]Activation, len(r.table))
	copy(out, r.table)
	return out
}

// QortalRules returns the standard table: every timestamp-triggered change
// activates at qortalTimestamp and MESSAGE at messageReleaseHeight.
func QortalRules(qortalTimestamp int64, messageReleaseHeight int) *Rules {
	return NewRulesBuilder().
		Activate(FeatureTxGroupID, qortalTimestamp).
		Activate(FeaturePollWithoutVoterCount, qortalTimestamp).
		Activate(FeaturePollSigningTag, qortalTimestamp).
		Activate(FeatureTransactionV4, qortalTimestamp).
		Activate(FeatureMessageRelease, int64(messageReleaseHeight)).
		MustBuild()
}

// RulesBuilder allows building custom Rules instances.
type RulesBuilder struct {
	table []Activation
}

// NewRulesBuilder creates a new RulesBuilder.
func NewRulesBuilder() *RulesBuilder {
	return &RulesBuilder{}
}

// Activate schedules f at threshold, replacing an earlier entry for f.
func (b *RulesBuilder) Activate(f Feature, threshold int64) *RulesBuilder {
	for i := range b.table {
		if b.table[i].Feature == f {
			b.table[i].Threshold = threshold
			return b
		}
	}
	b.table = append(b.table, Activation{Feature: f, Threshold: threshold})
	return b
}

// Remove unschedules f.
func (b *RulesBuilder) Remove(f Feature) *RulesBuilder {
	for i := range b.table {
		if b.table[i].Feature == f {
			b.table = append(b.table[:i], b.table[i+1:]...)
			break
		}
	}
	return b
}

// Build creates the Rules instance.
func (b *RulesBuilder) Build() (*Rules, error) {
	return NewRules(b.table)
}

// MustBuild is Build for static tables.
func (b *RulesBuilder) MustBuild() *Rules {
	return MustNewRules(b.table)
}
