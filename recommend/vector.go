// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import "math"

// normEpsilon guards divisions by near-zero vector norms.
const normEpsilon = 1e-9

// cosine computes cosine similarity between two vectors.
// Mismatched or empty vectors score 0; zero-norm vectors score ~0 via the
// epsilon guard rather than producing NaN.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + normEpsilon)
}

// l2Normalize returns a unit-length copy of v. A zero vector stays zero.
func l2Normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)

	out := make([]float64, len(v))
	if norm < normEpsilon {
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// safeMinMax normalizes values to [0,1] in place-safe fashion.
// A zero-variance input normalizes to all zeros, never NaN.
func safeMinMax(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}

	if hi-lo < 1e-9 {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}

// meanVector computes the column-wise mean of a matrix.
// An empty matrix yields nil.
func meanVector(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	mean := make([]float64, len(rows[0]))
	for _, row := range rows {
		for i, x := range row {
			mean[i] += x
		}
	}
	for i := range mean {
		mean[i] /= float64(len(rows))
	}
	return mean
}
