// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"sort"
	"strings"
)

// QuantaScores blends six exploration signals into a single [0,1] score per
// candidate:
//
//   - novelty: full weight for domains the user has never liked or bagged,
//     a reduced constant for domains they have
//   - diversity: distance from the candidate set's pairwise-similarity mean
//   - recency: latest global like timestamp per item, min-max scaled
//   - balance: inverse domain frequency within the candidate set
//   - context: additive tag boosts for region, festival and climate
//   - price: closeness to the candidate set's median price
//
// Each signal lands in [0,1] before weighting; the weighted sum is min-max
// normalized so the final scores span the full range. Pure function.
func QuantaScores(cands []Item, candVecs [][]float64, likedDomains map[string]struct{}, global []Event, qctx *Context, cfg QuantaConfig) []float64 {
	n := len(cands)
	if n == 0 {
		return nil
	}

	novelty := noveltySignal(cands, likedDomains, cfg)
	diversity := diversitySignal(candVecs)
	recency := recencySignal(cands, global)
	balance := balanceSignal(cands)
	context := contextSignal(cands, qctx, cfg)
	price := priceSignal(cands)

	raw := make([]float64, n)
	for i := 0; i < n; i++ {
		raw[i] = cfg.Novelty*novelty[i] +
			cfg.Diversity*diversity[i] +
			cfg.Recency*recency[i] +
			cfg.Balance*balance[i] +
			cfg.Context*context[i] +
			cfg.Price*price[i]
	}
	return safeMinMax(raw)
}

func noveltySignal(cands []Item, likedDomains map[string]struct{}, cfg QuantaConfig) []float64 {
	out := make([]float64, len(cands))
	for i, it := range cands {
		if _, seen := likedDomains[it.Domain]; seen {
			out[i] = cfg.SeenDomainNovelty
		} else {
			out[i] = 1.0
		}
	}
	return out
}

// diversitySignal rewards candidates far from the rest of the set: the mean
// pairwise cosine per candidate is min-max scaled and inverted. Fewer than
// two candidates gives the neutral constant 0.5.
func diversitySignal(vecs [][]float64) []float64 {
	n := len(vecs)
	out := make([]float64, n)
	if n < 2 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	means := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sum += cosine(vecs[i], vecs[j])
		}
		means[i] = sum / float64(n-1)
	}

	scaled := safeMinMax(means)
	for i := range scaled {
		out[i] = 1.0 - scaled[i]
	}
	return out
}

// recencySignal uses the most recent global like timestamp per item. Items
// nobody has liked sit at the bottom of the scale.
func recencySignal(cands []Item, global []Event) []float64 {
	latest := make(map[string]float64)
	for _, ev := range global {
		if ev.Action != ActionLike {
			continue
		}
		if ev.Timestamp > latest[ev.ItemID] {
			latest[ev.ItemID] = ev.Timestamp
		}
	}

	raw := make([]float64, len(cands))
	for i, it := range cands {
		raw[i] = latest[it.ID]
	}
	return safeMinMax(raw)
}

func balanceSignal(cands []Item) []float64 {
	counts := make(map[string]int)
	for _, it := range cands {
		counts[it.Domain]++
	}

	out := make([]float64, len(cands))
	total := float64(len(cands))
	for i, it := range cands {
		out[i] = 1.0 - float64(counts[it.Domain])/total
	}
	return out
}

// contextSignal sums tag boosts for the request context. Matching is
// case-insensitive against item tags. Capped at 1 so stacked boosts stay
// in range.
func contextSignal(cands []Item, qctx *Context, cfg QuantaConfig) []float64 {
	out := make([]float64, len(cands))
	if qctx == nil {
		return out
	}

	region := strings.ToLower(qctx.Region)
	festival := strings.ToLower(qctx.Festival)
	climate := strings.ToLower(qctx.Climate)
	if region == "" && festival == "" && climate == "" {
		return out
	}

	for i, it := range cands {
		var boost float64
		for _, tag := range it.Tags {
			t := strings.ToLower(tag)
			if region != "" && t == region {
				boost += cfg.RegionBoost
			}
			if festival != "" && t == festival {
				boost += cfg.FestivalBoost
			}
			if climate != "" && t == climate {
				boost += cfg.ClimateBoost
			}
		}
		if boost > 1.0 {
			boost = 1.0
		}
		out[i] = boost
	}
	return out
}

// priceSignal measures closeness to the median price of candidates that
// carry one. Candidates without a price are treated as sitting at the
// median; when no candidate has a price everyone gets the neutral 0.5.
func priceSignal(cands []Item) []float64 {
	out := make([]float64, len(cands))

	var prices []float64
	for _, it := range cands {
		if it.Price > 0 {
			prices = append(prices, it.Price)
		}
	}
	if len(prices) == 0 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	sort.Float64s(prices)
	median := prices[len(prices)/2]
	if len(prices)%2 == 0 {
		median = (prices[len(prices)/2-1] + prices[len(prices)/2]) / 2
	}

	dev := make([]float64, len(cands))
	for i, it := range cands {
		p := it.Price
		if p <= 0 {
			p = median
		}
		if p > median {
			dev[i] = p - median
		} else {
			dev[i] = median - p
		}
	}

	scaled := safeMinMax(dev)
	for i := range scaled {
		out[i] = 1.0 - scaled[i]
	}
	return out
}
