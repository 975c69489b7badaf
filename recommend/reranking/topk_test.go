// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package reranking

import (
	"reflect"
	"testing"
)

func TestTopK(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	scores := []float64{0.2, 0.9, 0.5, 0.9, 0.1}

	tests := []struct {
		name    string
		exclude map[string]struct{}
		k       int
		want    []string
	}{
		{
			name: "orders by descending score",
			k:    5,
			want: []string{"b", "d", "c", "a", "e"},
		},
		{
			name: "truncates to k",
			k:    2,
			want: []string{"b", "d"},
		},
		{
			name:    "excluded ids never appear",
			exclude: map[string]struct{}{"b": {}, "c": {}},
			k:       5,
			want:    []string{"d", "a", "e"},
		},
		{
			name: "k larger than candidates",
			k:    50,
			want: []string{"b", "d", "c", "a", "e"},
		},
		{
			name:    "excluding every id returns empty",
			exclude: map[string]struct{}{"a": {}, "b": {}, "c": {}, "d": {}, "e": {}},
			k:       2,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopK(ids, scores, tt.exclude, tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopK() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopK_TiesKeepInputOrder(t *testing.T) {
	ids := []string{"x", "y", "z"}
	scores := []float64{0.5, 0.5, 0.5}

	got := TopK(ids, scores, nil, 3)
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK() = %v, want %v", got, want)
	}
}

func TestTopK_InvalidInput(t *testing.T) {
	if got := TopK(nil, nil, nil, 3); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	if got := TopK([]string{"a"}, []float64{1, 2}, nil, 3); got != nil {
		t.Errorf("length mismatch: got %v, want nil", got)
	}
	if got := TopK([]string{"a"}, []float64{1}, nil, 0); got != nil {
		t.Errorf("k=0: got %v, want nil", got)
	}
}
