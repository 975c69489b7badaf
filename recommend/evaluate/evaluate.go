// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package evaluate

import (
	"math"

	"github.com/reccoverse/engine/recommend"
)

// Report summarizes the quality of a batch of recommendation lists. All
// values are in [0,1]; higher is better for every metric.
type Report struct {
	// Coverage is the fraction of catalog items recommended to at least
	// one user.
	Coverage float64 `json:"coverage"`

	// Diversity is the mean intra-list dissimilarity (1 - mean pairwise
	// cosine within each list).
	Diversity float64 `json:"diversity"`

	// Novelty is the mean inverse popularity of recommended items, where
	// popularity is the interaction count scaled by the most popular item.
	Novelty float64 `json:"novelty"`

	// DomainBalance is the mean normalized entropy of the domain
	// distribution within each list. 1 means every domain is equally
	// represented.
	DomainBalance float64 `json:"domain_balance"`

	// Personalization is the mean pairwise dissimilarity between different
	// users' lists (1 - Jaccard overlap). 0 means every user sees the same
	// list.
	Personalization float64 `json:"personalization"`

	// Users is the number of evaluated lists.
	Users int `json:"users"`
}

// Evaluate computes a Report over per-user recommendation lists. The
// metrics are measured from the lists themselves, never estimated: an
// empty input yields a zero Report.
func Evaluate(recs map[string][]recommend.ScoredItem, catalog []recommend.Item, events []recommend.Event, vectors *recommend.ItemVectors) Report {
	if len(recs) == 0 {
		return Report{}
	}

	report := Report{Users: len(recs)}
	report.Coverage = coverage(recs, catalog)
	report.Diversity = meanIntraListDiversity(recs, vectors)
	report.Novelty = meanNovelty(recs, events)
	report.DomainBalance = meanDomainBalance(recs)
	report.Personalization = personalization(recs)
	return report
}

func coverage(recs map[string][]recommend.ScoredItem, catalog []recommend.Item) float64 {
	if len(catalog) == 0 {
		return 0
	}
	recommended := make(map[string]struct{})
	for _, list := range recs {
		for _, si := range list {
			recommended[si.Item.ID] = struct{}{}
		}
	}

	covered := 0
	for _, it := range catalog {
		if _, ok := recommended[it.ID]; ok {
			covered++
		}
	}
	return float64(covered) / float64(len(catalog))
}

func meanIntraListDiversity(recs map[string][]recommend.ScoredItem, vectors *recommend.ItemVectors) float64 {
	if vectors == nil {
		return 0
	}

	var total float64
	var lists int
	for _, list := range recs {
		rows := make([][]float64, 0, len(list))
		for _, si := range list {
			if i, ok := vectors.Index[si.Item.ID]; ok {
				rows = append(rows, vectors.Rows[i])
			}
		}
		if len(rows) < 2 {
			continue
		}

		var sim float64
		var pairs int
		for i := 0; i < len(rows); i++ {
			for j := i + 1; j < len(rows); j++ {
				sim += cosine(rows[i], rows[j])
				pairs++
			}
		}
		total += 1.0 - sim/float64(pairs)
		lists++
	}
	if lists == 0 {
		return 0
	}
	return clamp01(total / float64(lists))
}

func meanNovelty(recs map[string][]recommend.ScoredItem, events []recommend.Event) float64 {
	counts := make(map[string]float64)
	var maxCount float64
	for _, ev := range events {
		if !ev.Action.Qualifies() {
			continue
		}
		counts[ev.ItemID]++
		if counts[ev.ItemID] > maxCount {
			maxCount = counts[ev.ItemID]
		}
	}

	var total float64
	var n int
	for _, list := range recs {
		for _, si := range list {
			if maxCount > 0 {
				total += 1.0 - counts[si.Item.ID]/maxCount
			} else {
				// No interactions yet, everything is equally novel.
				total += 1.0
			}
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func meanDomainBalance(recs map[string][]recommend.ScoredItem) float64 {
	var total float64
	var lists int
	for _, list := range recs {
		if len(list) == 0 {
			continue
		}
		counts := make(map[string]int)
		for _, si := range list {
			counts[si.Item.Domain]++
		}
		total += normalizedEntropy(counts, len(list))
		lists++
	}
	if lists == 0 {
		return 0
	}
	return total / float64(lists)
}

// normalizedEntropy measures how evenly the list is spread across domains.
// Single-domain lists score 0.
func normalizedEntropy(counts map[string]int, total int) float64 {
	if len(counts) < 2 {
		return 0
	}
	var entropy float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(float64(len(counts)))
}

func personalization(recs map[string][]recommend.ScoredItem) float64 {
	if len(recs) < 2 {
		return 0
	}

	sets := make([]map[string]struct{}, 0, len(recs))
	for _, list := range recs {
		set := make(map[string]struct{}, len(list))
		for _, si := range list {
			set[si.Item.ID] = struct{}{}
		}
		sets = append(sets, set)
	}

	var total float64
	var pairs int
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			total += 1.0 - jaccard(sets[i], sets[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func cosine(a, b []float64) float64 {
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

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
