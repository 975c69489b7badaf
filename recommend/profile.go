// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

// BuildUserVector aggregates a user's interacted item vectors into a single
// profile vector.
//
// Events are filtered to like/bag actions referencing items present in the
// index; everything else is silently dropped. Each qualifying event
// contributes its item's row weighted by the action weight, so an item with
// both a like and a bag event contributes twice. The result is a weighted
// mean and is NOT pre-normalized; normalization happens at scoring time.
//
// Cold start: when no event qualifies, the catalog-wide mean vector is
// returned so cosine scoring stays well-defined.
func BuildUserVector(events []Event, vectors *ItemVectors, cfg ProfileConfig) []float64 {
	if vectors == nil || len(vectors.Rows) == 0 {
		return nil
	}

	dim := vectors.Dim()
	sum := make([]float64, dim)
	var totalWeight float64

	for _, ev := range events {
		if !ev.Action.Qualifies() {
			continue
		}
		row, ok := vectors.Index[ev.ItemID]
		if !ok {
			continue
		}

		w := actionWeight(ev.Action, cfg)
		if w <= 0 {
			continue
		}
		for i, x := range vectors.Rows[row] {
			sum[i] += w * x
		}
		totalWeight += w
	}

	if totalWeight == 0 {
		return meanVector(vectors.Rows)
	}

	for i := range sum {
		sum[i] /= totalWeight
	}
	return sum
}

// actionWeight maps an action to its configured profile weight.
func actionWeight(a Action, cfg ProfileConfig) float64 {
	switch a {
	case ActionLike:
		return cfg.LikeWeight
	case ActionBag:
		return cfg.BagWeight
	default:
		return 0
	}
}

// SeenItems returns the set of item ids the user has interacted with
// (like or bag).
func SeenItems(events []Event) map[string]struct{} {
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if ev.Action.Qualifies() {
			seen[ev.ItemID] = struct{}{}
		}
	}
	return seen
}

// LikedDomains returns the set of domains among the user's liked/bagged
// items, resolved against the current catalog.
func LikedDomains(events []Event, items []Item, index map[string]int) map[string]struct{} {
	domains := make(map[string]struct{})
	for _, ev := range events {
		if !ev.Action.Qualifies() {
			continue
		}
		row, ok := index[ev.ItemID]
		if !ok || row >= len(items) {
			continue
		}
		domains[items[row].Domain] = struct{}{}
	}
	return domains
}
