// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package reranking

import (
	"testing"
)

func TestSelectDiverse(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{0.99, 0.1, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	ids := []string{"a", "b", "c", "d"}
	relevance := []float64{1.0, 0.9, 0.5, 0.4}

	tests := []struct {
		name    string
		k       int
		lambda  float64
		wantLen int
	}{
		{"pure relevance", 3, 1.0, 3},
		{"balanced", 3, 0.65, 3},
		{"k larger than items", 10, 0.65, 4},
		{"k zero", 0, 0.65, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDiverse(vectors, ids, relevance, tt.k, tt.lambda)
			if len(got) != tt.wantLen {
				t.Errorf("len(result) = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSelectDiverse_FirstPickIsMostRelevant(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{0, 1},
		{0.7, 0.7},
	}
	ids := []string{"a", "b", "c"}
	relevance := []float64{0.2, 0.9, 0.5}

	got := SelectDiverse(vectors, ids, relevance, 3, 0.5)
	if len(got) == 0 || got[0] != "b" {
		t.Errorf("first pick = %v, want b first", got)
	}
}

func TestSelectDiverse_DiversityEffect(t *testing.T) {
	// Two near-duplicates with the top scores, one orthogonal item below.
	vectors := [][]float64{
		{1, 0},
		{0.999, 0.01},
		{0, 1},
	}
	ids := []string{"a", "a2", "b"}
	relevance := []float64{1.0, 0.95, 0.5}

	t.Run("pure relevance keeps the duplicate", func(t *testing.T) {
		got := SelectDiverse(vectors, ids, relevance, 2, 1.0)
		if got[0] != "a" || got[1] != "a2" {
			t.Errorf("result = %v, want [a a2]", got)
		}
	})

	t.Run("diversity pressure picks the orthogonal item", func(t *testing.T) {
		got := SelectDiverse(vectors, ids, relevance, 2, 0.3)
		if got[0] != "a" || got[1] != "b" {
			t.Errorf("result = %v, want [a b]", got)
		}
	})
}

func TestSelectDiverse_NoDuplicates(t *testing.T) {
	vectors := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	ids := []string{"a", "b", "c"}
	relevance := []float64{0.5, 0.5, 0.5}

	got := SelectDiverse(vectors, ids, relevance, 3, 0.5)
	seen := make(map[string]struct{})
	for _, id := range got {
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q in result %v", id, got)
		}
		seen[id] = struct{}{}
	}
}

func TestSelectDiverse_Deterministic(t *testing.T) {
	vectors := [][]float64{{1, 0}, {0.5, 0.5}, {0, 1}, {0.3, 0.9}}
	ids := []string{"a", "b", "c", "d"}
	relevance := []float64{0.8, 0.8, 0.8, 0.8}

	first := SelectDiverse(vectors, ids, relevance, 4, 0.65)
	for i := 0; i < 10; i++ {
		got := SelectDiverse(vectors, ids, relevance, 4, 0.65)
		if len(got) != len(first) {
			t.Fatalf("run %d: len = %d, want %d", i, len(got), len(first))
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("run %d: result %v, want %v", i, got, first)
			}
		}
	}
}

func TestSelectDiverse_MismatchedInput(t *testing.T) {
	if got := SelectDiverse([][]float64{{1}}, []string{"a", "b"}, []float64{1, 2}, 2, 0.5); got != nil {
		t.Errorf("mismatched vectors: got %v, want nil", got)
	}
	if got := SelectDiverse(nil, nil, nil, 3, 0.5); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
}
