// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

// Package recommend implements the multi-domain recommendation scoring
// core: content vectors, user profiles, cosine ranking, collaborative
// blending, the Quanta exploration blend and cold-start selection.
//
// The Engine type ties the pipeline together. Collaborators are supplied
// through small interfaces (CatalogProvider, VectorProvider, EventSource)
// implemented by the embedding and eventstore subpackages, which keeps the
// scoring math free of storage concerns.
//
// All scoring functions are deterministic: identical catalog, events and
// configuration produce identical rankings.
package recommend
