// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

// Package embedding produces item vectors for the scoring core.
//
// Two sources exist. The derived source hashes item content (name, domain,
// category, tags, free text) into a fixed-dimension vector, smooths the
// result over a catalog similarity graph and L2-normalizes each row. The
// precomputed source loads an Artifact built offline by BuildArtifact; it
// is used only when the artifact covers every catalog item, otherwise the
// whole catalog is derived so the two sources are never mixed in one
// response.
package embedding
