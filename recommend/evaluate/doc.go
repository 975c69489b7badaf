// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

// Package evaluate measures recommendation quality offline. It computes
// coverage, intra-list diversity, novelty, domain balance and
// personalization directly from recommendation lists, for dashboards and
// regression checks on ranking changes.
package evaluate
