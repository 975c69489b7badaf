// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

// CosineScores computes the base content score: cosine similarity between
// the (L2-normalized) profile vector and every item row.
//
// Pure function; a nil or zero-norm profile yields near-zero scores via the
// epsilon guard rather than NaN.
func CosineScores(profile []float64, vectors *ItemVectors) []float64 {
	if vectors == nil {
		return nil
	}

	scores := make([]float64, len(vectors.Rows))
	if len(profile) != vectors.Dim() {
		return scores
	}

	p := l2Normalize(profile)
	for i, row := range vectors.Rows {
		scores[i] = cosine(p, row)
	}
	return scores
}

// CollaborativeScores computes the neighbor-popularity term for every
// catalog row.
//
// Neighbors are other users who share at least one liked/bagged item with
// the current user. Each neighbor like/bag of a candidate the user has not
// already interacted with counts once; counts are normalized to [0,1] by
// the maximum count. Items with no neighbor support, and items the user has
// already seen, score 0.
//
// Pure function of its inputs.
func CollaborativeScores(userID string, global []Event, seen map[string]struct{}, vectors *ItemVectors) []float64 {
	scores := make([]float64, len(vectors.Rows))
	if len(seen) == 0 || len(global) == 0 {
		return scores
	}

	// Users who touched anything the current user touched.
	neighbors := make(map[string]struct{})
	for _, ev := range global {
		if ev.UserID == userID || !ev.Action.Qualifies() {
			continue
		}
		if _, ok := seen[ev.ItemID]; ok {
			neighbors[ev.UserID] = struct{}{}
		}
	}
	if len(neighbors) == 0 {
		return scores
	}

	// Count neighbor interactions with unseen catalog items.
	var maxCount float64
	for _, ev := range global {
		if !ev.Action.Qualifies() {
			continue
		}
		if _, ok := neighbors[ev.UserID]; !ok {
			continue
		}
		if _, ok := seen[ev.ItemID]; ok {
			continue
		}
		row, ok := vectors.Index[ev.ItemID]
		if !ok {
			continue
		}
		scores[row]++
		if scores[row] > maxCount {
			maxCount = scores[row]
		}
	}

	if maxCount > 0 {
		for i := range scores {
			scores[i] /= maxCount
		}
	}
	return scores
}

// BlendCollaborative adds the weighted collaborative term to the base
// cosine scores. Rows without neighbor support keep their base score.
func BlendCollaborative(base, collab []float64, weight float64) []float64 {
	out := make([]float64, len(base))
	for i := range base {
		out[i] = base[i]
		if i < len(collab) {
			out[i] += weight * collab[i]
		}
	}
	return out
}
