// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package reranking

import "sort"

// TopK returns up to k ids ordered by descending score, skipping excluded
// ids. Ties keep the input (catalog) order via a stable sort, so rankings
// are deterministic.
func TopK(ids []string, scores []float64, exclude map[string]struct{}, k int) []string {
	if len(ids) == 0 || len(ids) != len(scores) || k <= 0 {
		return nil
	}

	idx := make([]int, 0, len(ids))
	for i, id := range ids {
		if _, ok := exclude[id]; ok {
			continue
		}
		idx = append(idx, i)
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	if k > len(idx) {
		k = len(idx)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = ids[idx[i]]
	}
	return out
}
