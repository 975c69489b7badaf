// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"testing"
)

func testVectors() *ItemVectors {
	return &ItemVectors{
		Rows: [][]float64{
			{1, 0},
			{0, 1},
			{1, 1},
		},
		IDs:   []string{"a", "b", "c"},
		Index: map[string]int{"a": 0, "b": 1, "c": 2},
	}
}

func TestBuildUserVector_WeightedMean(t *testing.T) {
	vectors := testVectors()
	cfg := DefaultConfig().Profile

	events := []Event{
		{UserID: "u", ItemID: "a", Action: ActionLike},
		{UserID: "u", ItemID: "b", Action: ActionBag},
	}

	got := BuildUserVector(events, vectors, cfg)
	// (1.0*[1 0] + 0.7*[0 1]) / 1.7
	if !almostEqual(got[0], 1.0/1.7) || !almostEqual(got[1], 0.7/1.7) {
		t.Errorf("profile = %v, want [%f %f]", got, 1.0/1.7, 0.7/1.7)
	}
}

func TestBuildUserVector_IgnoresUnknownAndNonQualifying(t *testing.T) {
	vectors := testVectors()
	cfg := DefaultConfig().Profile

	events := []Event{
		{UserID: "u", ItemID: "a", Action: ActionLike},
		{UserID: "u", ItemID: "missing", Action: ActionLike},
		{UserID: "u", ItemID: "b", Action: ActionIgnored},
	}

	got := BuildUserVector(events, vectors, cfg)
	if !almostEqual(got[0], 1) || !almostEqual(got[1], 0) {
		t.Errorf("profile = %v, want [1 0]", got)
	}
}

func TestBuildUserVector_ColdStartFallsBackToCatalogMean(t *testing.T) {
	vectors := testVectors()
	cfg := DefaultConfig().Profile

	tests := []struct {
		name   string
		events []Event
	}{
		{"no events", nil},
		{"only ignored events", []Event{{UserID: "u", ItemID: "a", Action: ActionIgnored}}},
		{"only unknown items", []Event{{UserID: "u", ItemID: "gone", Action: ActionLike}}},
	}

	wantMean := meanVector(vectors.Rows)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildUserVector(tt.events, vectors, cfg)
			for i := range wantMean {
				if !almostEqual(got[i], wantMean[i]) {
					t.Errorf("profile[%d] = %f, want catalog mean %f", i, got[i], wantMean[i])
				}
			}
		})
	}
}

func TestBuildUserVector_DoubleInteractionCountsTwice(t *testing.T) {
	vectors := testVectors()
	cfg := DefaultConfig().Profile

	events := []Event{
		{UserID: "u", ItemID: "a", Action: ActionLike},
		{UserID: "u", ItemID: "a", Action: ActionBag},
		{UserID: "u", ItemID: "b", Action: ActionLike},
	}

	got := BuildUserVector(events, vectors, cfg)
	// (1.7*[1 0] + 1.0*[0 1]) / 2.7
	if !almostEqual(got[0], 1.7/2.7) || !almostEqual(got[1], 1.0/2.7) {
		t.Errorf("profile = %v, want [%f %f]", got, 1.7/2.7, 1.0/2.7)
	}
}

func TestBuildUserVector_NilVectors(t *testing.T) {
	if got := BuildUserVector(nil, nil, DefaultConfig().Profile); got != nil {
		t.Errorf("BuildUserVector(nil vectors) = %v, want nil", got)
	}
}

func TestSeenItems(t *testing.T) {
	events := []Event{
		{ItemID: "a", Action: ActionLike},
		{ItemID: "b", Action: ActionBag},
		{ItemID: "c", Action: ActionIgnored},
		{ItemID: "a", Action: ActionBag},
	}

	seen := SeenItems(events)
	if len(seen) != 2 {
		t.Fatalf("len(seen) = %d, want 2", len(seen))
	}
	if _, ok := seen["a"]; !ok {
		t.Error("expected a in seen set")
	}
	if _, ok := seen["c"]; ok {
		t.Error("ignored interaction must not mark item as seen")
	}
}

func TestLikedDomains(t *testing.T) {
	items := []Item{
		{ID: "a", Domain: "netflix"},
		{ID: "b", Domain: "spotify"},
		{ID: "c", Domain: "amazon"},
	}
	index := map[string]int{"a": 0, "b": 1, "c": 2}

	events := []Event{
		{ItemID: "a", Action: ActionLike},
		{ItemID: "b", Action: ActionBag},
		{ItemID: "c", Action: ActionIgnored},
		{ItemID: "missing", Action: ActionLike},
	}

	domains := LikedDomains(events, items, index)
	if len(domains) != 2 {
		t.Fatalf("len(domains) = %d, want 2", len(domains))
	}
	for _, want := range []string{"netflix", "spotify"} {
		if _, ok := domains[want]; !ok {
			t.Errorf("expected domain %q", want)
		}
	}
}
