// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package embedding

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/reccoverse/engine/recommend"
)

// featureVector derives a content vector for one item via feature hashing.
// Every token from the item's textual fields is hashed into one of dim
// buckets with a hash-derived sign, so the vector is a deterministic
// function of (content, dim, seed). Items with no content yield the zero
// vector.
func featureVector(item recommend.Item, dim int, seed uint64) []float64 {
	v := make([]float64, dim)
	for _, tok := range itemTokens(item) {
		bucket, sign := hashToken(tok, seed, dim)
		v[bucket] += sign
	}
	return v
}

// itemTokens collects lowercase tokens from all textual fields. The domain
// and category are emitted as prefixed tokens so "rock" the tag and "rock"
// the category hash apart.
func itemTokens(item recommend.Item) []string {
	var tokens []string
	tokens = append(tokens, splitTokens(item.Name)...)
	if item.Domain != "" {
		tokens = append(tokens, "domain:"+strings.ToLower(item.Domain))
	}
	if item.Category != "" {
		tokens = append(tokens, "category:"+strings.ToLower(item.Category))
	}
	for _, tag := range item.Tags {
		tokens = append(tokens, splitTokens(tag)...)
	}
	tokens = append(tokens, splitTokens(item.Text)...)
	return tokens
}

// splitTokens breaks a string on non-alphanumeric runes and lowercases the
// pieces.
func splitTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// hashToken maps a token to a bucket and a +/-1 sign. The seed is mixed in
// ahead of the token so different seeds produce unrelated embeddings.
func hashToken(token string, seed uint64, dim int) (int, float64) {
	h := fnv.New64a()
	var seedBytes [8]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	h.Write(seedBytes[:])
	h.Write([]byte(token))
	sum := h.Sum64()

	bucket := int(sum % uint64(dim))
	sign := 1.0
	if (sum>>63)&1 == 1 {
		sign = -1.0
	}
	return bucket, sign
}
