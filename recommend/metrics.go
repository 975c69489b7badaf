// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reccoverse_recommend_requests_total",
		Help: "Recommendation requests by outcome.",
	}, []string{"status"})

	metricColdStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reccoverse_recommend_cold_starts_total",
		Help: "Requests served through the cold-start diverse selector.",
	})

	metricDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reccoverse_recommend_duration_seconds",
		Help:    "End-to-end recommendation latency.",
		Buckets: prometheus.DefBuckets,
	})

	metricVectorCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reccoverse_recommend_vector_cache_hits_total",
		Help: "Item vector cache hits.",
	})

	metricVectorCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reccoverse_recommend_vector_cache_misses_total",
		Help: "Item vector cache misses (vectors rebuilt).",
	})
)
