// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"fmt"
	"time"
)

// Config contains all tuning knobs for the scoring core.
//
// The defaults follow the most fully developed variant of the original
// blend; every constant that differed across deployments is exposed here
// rather than embedded in a formula.
type Config struct {
	// Profile contains user-profile aggregation weights.
	Profile ProfileConfig `json:"profile" koanf:"profile"`

	// Embedding contains parameters for on-the-fly vector derivation.
	Embedding EmbeddingConfig `json:"embedding" koanf:"embedding"`

	// Collab contains parameters for the collaborative blend.
	Collab CollabConfig `json:"collab" koanf:"collab"`

	// Quanta contains weights for the novelty/diversity/context blend.
	Quanta QuantaConfig `json:"quanta" koanf:"quanta"`

	// MMR contains parameters for the cold-start diverse selector.
	MMR MMRConfig `json:"mmr" koanf:"mmr"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains vector-cache parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// ProfileConfig contains user-profile aggregation weights.
type ProfileConfig struct {
	// LikeWeight is the contribution of a "like" event.
	// Default: 1.0.
	LikeWeight float64 `json:"like_weight" koanf:"like_weight"`

	// BagWeight is the contribution of a "bag" event.
	// Default: 0.7.
	BagWeight float64 `json:"bag_weight" koanf:"bag_weight"`
}

// EmbeddingConfig contains parameters for derived item vectors.
type EmbeddingConfig struct {
	// Dim is the vector dimension.
	// Default: 32.
	Dim int `json:"dim" koanf:"dim"`

	// Seed makes hash-derived vectors deterministic.
	// Default: 123.
	Seed uint64 `json:"seed" koanf:"seed"`

	// SmoothingAlpha scales the adjacency propagation step
	// (H = H + alpha * A @ H).
	// Default: 0.05.
	SmoothingAlpha float64 `json:"smoothing_alpha" koanf:"smoothing_alpha"`

	// SmoothingSteps is the number of propagation rounds (0-2).
	// Default: 1.
	SmoothingSteps int `json:"smoothing_steps" koanf:"smoothing_steps"`
}

// CollabConfig contains parameters for the collaborative blend.
type CollabConfig struct {
	// Weight scales the normalized neighbor-popularity term added to the
	// cosine score. The original deployments never settled on one value
	// (0.05 to 0.4 were all observed); this is deliberately a knob.
	// Default: 0.3.
	Weight float64 `json:"weight" koanf:"weight"`
}

// QuantaConfig contains weights for the Quanta blend. All component scores
// are min-max normalized to [0,1] before combination, so the weights only
// need to be non-negative.
type QuantaConfig struct {
	// Novelty is the weight of the unseen-domain signal.
	// Default: 0.25.
	Novelty float64 `json:"novelty" koanf:"novelty"`

	// Diversity is the weight of the candidate-set dissimilarity signal.
	// Default: 0.22.
	Diversity float64 `json:"diversity" koanf:"diversity"`

	// Recency is the weight of the latest-global-like signal.
	// Default: 0.12.
	Recency float64 `json:"recency" koanf:"recency"`

	// Balance is the weight of the domain-balance signal.
	// Default: 0.14.
	Balance float64 `json:"balance" koanf:"balance"`

	// Context is the weight of the request-context tag boost.
	// Default: 0.17.
	Context float64 `json:"context" koanf:"context"`

	// Price is the weight of the price-closeness signal.
	// Default: 0.10.
	Price float64 `json:"price" koanf:"price"`

	// SeenDomainNovelty is the novelty value assigned to items whose domain
	// the user has already liked. Unseen domains score 1.0.
	// Default: 0.35.
	SeenDomainNovelty float64 `json:"seen_domain_novelty" koanf:"seen_domain_novelty"`

	// RegionBoost, FestivalBoost and ClimateBoost weight the three context
	// tag matches inside the context signal.
	// Defaults: 0.5, 0.3, 0.2.
	RegionBoost   float64 `json:"region_boost" koanf:"region_boost"`
	FestivalBoost float64 `json:"festival_boost" koanf:"festival_boost"`
	ClimateBoost  float64 `json:"climate_boost" koanf:"climate_boost"`
}

// MMRConfig contains parameters for the cold-start diverse selector.
type MMRConfig struct {
	// Lambda balances relevance vs. diversity (1.0 = pure relevance).
	// Default: 0.65.
	Lambda float64 `json:"lambda" koanf:"lambda"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the per-section result count when the request omits K.
	// Default: 48.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 200.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// CacheConfig contains vector-cache parameters. The cache is keyed by a
// catalog fingerprint, so a changed catalog never serves stale vectors.
type CacheConfig struct {
	// Enabled controls whether computed vectors are cached across requests.
	// Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries is the maximum number of cached catalog snapshots.
	// Default: 8.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		Profile: ProfileConfig{
			LikeWeight: 1.0,
			BagWeight:  0.7,
		},
		Embedding: EmbeddingConfig{
			Dim:            32,
			Seed:           123,
			SmoothingAlpha: 0.05,
			SmoothingSteps: 1,
		},
		Collab: CollabConfig{
			Weight: 0.3,
		},
		Quanta: QuantaConfig{
			Novelty:           0.25,
			Diversity:         0.22,
			Recency:           0.12,
			Balance:           0.14,
			Context:           0.17,
			Price:             0.10,
			SeenDomainNovelty: 0.35,
			RegionBoost:       0.5,
			FestivalBoost:     0.3,
			ClimateBoost:      0.2,
		},
		MMR: MMRConfig{
			Lambda: 0.65,
		},
		Limits: LimitsConfig{
			DefaultK: 48,
			MaxK:     200,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 8,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Profile.LikeWeight <= 0 {
		return fmt.Errorf("profile.like_weight must be positive, got %f", c.Profile.LikeWeight)
	}
	if c.Profile.BagWeight < 0 {
		return fmt.Errorf("profile.bag_weight must be non-negative, got %f", c.Profile.BagWeight)
	}

	if c.Embedding.Dim < 1 {
		return fmt.Errorf("embedding.dim must be positive, got %d", c.Embedding.Dim)
	}
	if c.Embedding.SmoothingAlpha < 0 {
		return fmt.Errorf("embedding.smoothing_alpha must be non-negative, got %f", c.Embedding.SmoothingAlpha)
	}
	if c.Embedding.SmoothingSteps < 0 || c.Embedding.SmoothingSteps > 2 {
		return fmt.Errorf("embedding.smoothing_steps must be in [0, 2], got %d", c.Embedding.SmoothingSteps)
	}

	if c.Collab.Weight < 0 {
		return fmt.Errorf("collab.weight must be non-negative, got %f", c.Collab.Weight)
	}

	for name, w := range map[string]float64{
		"quanta.novelty":   c.Quanta.Novelty,
		"quanta.diversity": c.Quanta.Diversity,
		"quanta.recency":   c.Quanta.Recency,
		"quanta.balance":   c.Quanta.Balance,
		"quanta.context":   c.Quanta.Context,
		"quanta.price":     c.Quanta.Price,
	} {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, w)
		}
	}
	if c.Quanta.SeenDomainNovelty < 0 || c.Quanta.SeenDomainNovelty > 1 {
		return fmt.Errorf("quanta.seen_domain_novelty must be in [0, 1], got %f", c.Quanta.SeenDomainNovelty)
	}

	if c.MMR.Lambda < 0 || c.MMR.Lambda > 1 {
		return fmt.Errorf("mmr.lambda must be in [0, 1], got %f", c.MMR.Lambda)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	out := *c
	return &out
}
