// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"reccoverse.yaml",
	"reccoverse.yml",
	"/etc/reccoverse/config.yaml",
	"/etc/reccoverse/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "RECCOVERSE_CONFIG"

// LoadConfig loads scoring configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. The result is validated before it is
// returned.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// EMBEDDING_DIM -> embedding.dim
	// QUANTA_REGION_BOOST -> quanta.region_boost
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment variables cannot
// pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Profile mappings
		"profile_like_weight": "profile.like_weight",
		"profile_bag_weight":  "profile.bag_weight",

		// Embedding mappings
		"embedding_dim":             "embedding.dim",
		"embedding_seed":            "embedding.seed",
		"embedding_smoothing_alpha": "embedding.smoothing_alpha",
		"embedding_smoothing_steps": "embedding.smoothing_steps",

		// Collaborative mappings
		"collab_weight": "collab.weight",

		// Quanta mappings
		"quanta_novelty_weight":      "quanta.novelty",
		"quanta_diversity_weight":    "quanta.diversity",
		"quanta_recency_weight":      "quanta.recency",
		"quanta_balance_weight":      "quanta.balance",
		"quanta_context_weight":      "quanta.context",
		"quanta_price_weight":        "quanta.price",
		"quanta_seen_domain_novelty": "quanta.seen_domain_novelty",
		"quanta_region_boost":        "quanta.region_boost",
		"quanta_festival_boost":      "quanta.festival_boost",
		"quanta_climate_boost":       "quanta.climate_boost",

		// Cold-start selector mappings
		"mmr_lambda": "mmr.lambda",

		// Request limit mappings
		"limits_default_k": "limits.default_k",
		"limits_max_k":     "limits.max_k",

		// Vector cache mappings
		"cache_enabled":     "cache.enabled",
		"cache_ttl":         "cache.ttl",
		"cache_max_entries": "cache.max_entries",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
