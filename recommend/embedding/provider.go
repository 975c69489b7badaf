// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package embedding

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/reccoverse/engine/recommend"
)

// Provider produces item vectors for a catalog. When a precomputed
// artifact covers every catalog item its vectors are used; otherwise the
// whole catalog falls back to hash-derived vectors, never a mix of the
// two.
type Provider struct {
	cfg      recommend.EmbeddingConfig
	log      zerolog.Logger
	artifact *Artifact
}

// NewProvider creates a Provider that derives vectors from item content.
func NewProvider(cfg recommend.EmbeddingConfig, logger zerolog.Logger) *Provider {
	return &Provider{
		cfg: cfg,
		log: logger.With().Str("component", "embedding").Logger(),
	}
}

// SetArtifact attaches a precomputed vector artifact. A nil artifact
// clears it.
func (p *Provider) SetArtifact(a *Artifact) {
	p.artifact = a
}

// Vectors returns one row per unique catalog item, in catalog order.
// Rows are L2-normalized; items whose content hashes to nothing keep a
// zero row and score zero against every profile.
func (p *Provider) Vectors(ctx context.Context, catalog []recommend.Item) (*recommend.ItemVectors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := recommend.DedupeItems(catalog)
	ids := make([]string, len(items))
	index := make(map[string]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
		index[it.ID] = i
	}

	source := ResolveSource(p.artifact, ids)

	var rows [][]float64
	if source == recommend.SourcePrecomputed {
		rows = make([][]float64, len(items))
		for i, id := range ids {
			rows[i] = p.artifact.Vector(id)
		}
	} else {
		if p.artifact != nil {
			p.log.Warn().
				Int("catalog_size", len(items)).
				Int("artifact_size", len(p.artifact.IDs)).
				Msg("Artifact does not cover catalog, deriving vectors from content")
		}
		rows = p.derive(items)
	}

	return &recommend.ItemVectors{
		Rows:   rows,
		IDs:    ids,
		Index:  index,
		Source: source,
	}, nil
}

// derive hashes item content into vectors, smooths them over the catalog
// similarity graph and normalizes each row.
func (p *Provider) derive(items []recommend.Item) [][]float64 {
	rows := make([][]float64, len(items))
	for i, it := range items {
		rows[i] = featureVector(it, p.cfg.Dim, p.cfg.Seed)
	}
	smoothVectors(rows, items, p.cfg.SmoothingAlpha, p.cfg.SmoothingSteps)
	for i := range rows {
		normalizeRow(rows[i])
	}
	return rows
}

// ResolveSource decides whether an artifact can serve a catalog: its ids
// must be a superset of the catalog ids and its dimension must be set.
// Pure function so the fallback decision is testable on its own.
func ResolveSource(artifact *Artifact, catalogIDs []string) recommend.VectorSource {
	if artifact == nil || artifact.Dim < 1 {
		return recommend.SourceDerived
	}
	if !artifact.Covers(catalogIDs) {
		return recommend.SourceDerived
	}
	return recommend.SourcePrecomputed
}

// normalizeRow scales a vector to unit L2 norm in place. Zero vectors are
// left untouched.
func normalizeRow(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	if norm < 1e-9 {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}
