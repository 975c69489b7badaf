// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

// Package reranking implements ranking and diversity post-processing over
// plain score slices. It has no dependencies on the scoring core so the
// engine can call it directly.
package reranking

import "math"

// maxSelectSize limits slice allocations to prevent excessive memory usage.
// k is also bounded by len(ids).
const maxSelectSize = 10000

// SelectDiverse applies greedy Maximal Marginal Relevance selection over
// item vectors.
//
// The MMR formula is:
//
//	MMR = argmax[lambda * relevance(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// Where:
//   - lambda: balance parameter (1.0 = pure relevance, 0.0 = pure diversity)
//   - relevance(i): the caller-supplied relevance score for item i
//   - sim(i, s): cosine similarity between item i and selected item s
//
// The first pick is always the most relevant item. Ties resolve to the
// lower index, so the selection is deterministic for a fixed input order.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
func SelectDiverse(vectors [][]float64, ids []string, relevance []float64, k int, lambda float64) []string {
	n := len(ids)
	if n == 0 || k <= 0 || len(vectors) != n || len(relevance) != n {
		return nil
	}
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	if k > maxSelectSize {
		k = maxSelectSize
	}
	if k > n {
		k = n
	}

	selected := make([]int, 0, k)
	chosen := make(map[int]struct{}, k)

	for len(selected) < k {
		bestIdx := -1
		bestMMR := math.Inf(-1)

		for i := 0; i < n; i++ {
			if _, ok := chosen[i]; ok {
				continue
			}

			maxSim := 0.0
			for _, s := range selected {
				sim := cosineSim(vectors[i], vectors[s])
				if sim > maxSim {
					maxSim = sim
				}
			}

			mmrScore := lambda*relevance[i] - (1-lambda)*maxSim
			if mmrScore > bestMMR {
				bestMMR = mmrScore
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		selected = append(selected, bestIdx)
		chosen[bestIdx] = struct{}{}
	}

	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = ids[idx]
	}
	return out
}

// cosineSim computes cosine similarity with an epsilon guard so zero
// vectors score zero instead of NaN.
func cosineSim(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + 1e-9)
}
