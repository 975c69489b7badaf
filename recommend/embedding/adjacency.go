// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package embedding

import "github.com/reccoverse/engine/recommend"

// Edge weights for the catalog similarity graph. Items sharing a category
// are tied stronger than items that only share a domain; no self edges.
const (
	categoryEdgeWeight = 1.0
	domainEdgeWeight   = 0.5
)

// smoothVectors runs graph propagation over the catalog similarity graph:
//
//	H = H + alpha * A_norm @ H
//
// where A ties items by shared category and shared domain, row-normalized
// so every step mixes a bounded fraction of neighbor content into each
// vector.
//
// The two-weight structure lets the product be computed from per-group sums
// instead of a materialized N x N matrix, so the step is linear in catalog
// size. Rows are updated from the previous iteration's values.
func smoothVectors(rows [][]float64, items []recommend.Item, alpha float64, steps int) {
	if alpha == 0 || steps <= 0 || len(rows) < 2 {
		return
	}

	dim := len(rows[0])
	domainOf := make([]string, len(items))
	categoryOf := make([]string, len(items))
	for i, it := range items {
		domainOf[i] = it.Domain
		categoryOf[i] = it.Domain + "\x00" + it.Category
	}

	for step := 0; step < steps; step++ {
		domainSum := make(map[string][]float64)
		domainCount := make(map[string]int)
		categorySum := make(map[string][]float64)
		categoryCount := make(map[string]int)

		for i, row := range rows {
			addInto(domainSum, domainOf[i], row, dim)
			domainCount[domainOf[i]]++
			addInto(categorySum, categoryOf[i], row, dim)
			categoryCount[categoryOf[i]]++
		}

		next := make([][]float64, len(rows))
		for i, row := range rows {
			nCat := categoryCount[categoryOf[i]] - 1
			nDom := domainCount[domainOf[i]] - 1 - nCat
			rowSum := categoryEdgeWeight*float64(nCat) + domainEdgeWeight*float64(nDom)

			out := make([]float64, dim)
			copy(out, row)
			if rowSum > 0 {
				catSum := categorySum[categoryOf[i]]
				domSum := domainSum[domainOf[i]]
				scale := alpha / rowSum
				for d := 0; d < dim; d++ {
					// Neighbor aggregate: same-category rows minus self,
					// plus same-domain rows outside the category.
					agg := categoryEdgeWeight*(catSum[d]-row[d]) +
						domainEdgeWeight*(domSum[d]-catSum[d])
					out[d] += scale * agg
				}
			}
			next[i] = out
		}

		for i := range rows {
			rows[i] = next[i]
		}
	}
}

func addInto(sums map[string][]float64, key string, row []float64, dim int) {
	sum, ok := sums[key]
	if !ok {
		sum = make([]float64, dim)
		sums[key] = sum
	}
	for d := range row {
		sum[d] += row[d]
	}
}
