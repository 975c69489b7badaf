// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package embedding

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/reccoverse/engine/recommend"
)

// ArtifactMetadata describes a stored vector artifact.
type ArtifactMetadata struct {
	// Dim is the vector dimension.
	Dim int `json:"dim"`

	// Seed is the hashing seed the vectors were built with.
	Seed uint64 `json:"seed"`

	// ItemCount is the number of item vectors stored.
	ItemCount int `json:"item_count"`

	// BuiltAt is when the artifact was computed.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is when the artifact was written to disk.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// Artifact holds precomputed item vectors keyed by item id.
type Artifact struct {
	// Dim is the vector dimension.
	Dim int

	// IDs lists the item ids in storage order.
	IDs []string

	// Rows holds one vector per id, aligned with IDs.
	Rows [][]float64

	index map[string]int
}

// NewArtifact builds an Artifact from aligned ids and rows.
func NewArtifact(dim int, ids []string, rows [][]float64) (*Artifact, error) {
	if len(ids) != len(rows) {
		return nil, fmt.Errorf("artifact ids/rows mismatch: %d vs %d", len(ids), len(rows))
	}
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("artifact row %d has dim %d, want %d", i, len(row), dim)
		}
	}

	a := &Artifact{Dim: dim, IDs: ids, Rows: rows}
	a.buildIndex()
	return a, nil
}

func (a *Artifact) buildIndex() {
	a.index = make(map[string]int, len(a.IDs))
	for i, id := range a.IDs {
		a.index[id] = i
	}
}

// Covers reports whether the artifact has a vector for every given id.
func (a *Artifact) Covers(ids []string) bool {
	for _, id := range ids {
		if _, ok := a.index[id]; !ok {
			return false
		}
	}
	return true
}

// Vector returns a copy of the stored vector for an id, or nil when the id
// is unknown.
func (a *Artifact) Vector(id string) []float64 {
	i, ok := a.index[id]
	if !ok {
		return nil
	}
	out := make([]float64, len(a.Rows[i]))
	copy(out, a.Rows[i])
	return out
}

// BuildArtifact derives vectors for a catalog and packages them for
// persistence. This is the offline half of the precomputed path: run it
// when the catalog changes and ship the file alongside the catalog.
func BuildArtifact(ctx context.Context, catalog []recommend.Item, cfg recommend.EmbeddingConfig) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := recommend.DedupeItems(catalog)
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot build artifact from empty catalog")
	}

	rows := make([][]float64, len(items))
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
		rows[i] = featureVector(it, cfg.Dim, cfg.Seed)
	}
	smoothVectors(rows, items, cfg.SmoothingAlpha, cfg.SmoothingSteps)
	for i := range rows {
		normalizeRow(rows[i])
	}

	return NewArtifact(cfg.Dim, ids, rows)
}

// artifactPayload is the gob-encoded body of an artifact file.
type artifactPayload struct {
	Dim  int
	IDs  []string
	Rows [][]float64
}

// artifactFile is the on-disk format: metadata plus compressed payload.
type artifactFile struct {
	Metadata       ArtifactMetadata
	CompressedData []byte
}

// SaveArtifact writes an artifact to path as a gob file with a gzip
// compressed, checksummed payload.
func SaveArtifact(path string, a *Artifact, seed uint64, builtAt time.Time) (*ArtifactMetadata, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(artifactPayload{Dim: a.Dim, IDs: a.IDs, Rows: a.Rows}); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta := ArtifactMetadata{
		Dim:       a.Dim,
		Seed:      seed,
		ItemCount: len(a.IDs),
		BuiltAt:   builtAt,
		SavedAt:   time.Now().UTC(),
		Checksum:  hex.EncodeToString(hash[:]),
		SizeBytes: int64(compressed.Len()),
	}

	f, err := os.Create(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("create artifact file: %w", err)
	}
	defer func() { _ = f.Close() }()

	fileEnc := gob.NewEncoder(f)
	if err := fileEnc.Encode(artifactFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return nil, fmt.Errorf("write artifact file: %w", err)
	}

	return &meta, nil
}

// LoadArtifact reads an artifact from path, verifying the checksum. Rows
// are normalized on load so older artifacts built before normalization
// still score correctly.
func LoadArtifact(path string) (*Artifact, *ArtifactMetadata, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var af artifactFile
	dec := gob.NewDecoder(f)
	if err := dec.Decode(&af); err != nil {
		return nil, nil, fmt.Errorf("read artifact file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(af.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed artifact: %w", err)
	}

	hash := sha256.Sum256(raw)
	checksum := hex.EncodeToString(hash[:])
	if checksum != af.Metadata.Checksum {
		return nil, nil, fmt.Errorf("artifact checksum mismatch: expected %s, got %s", af.Metadata.Checksum, checksum)
	}

	var payload artifactPayload
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("decode artifact payload: %w", err)
	}

	a, err := NewArtifact(payload.Dim, payload.IDs, payload.Rows)
	if err != nil {
		return nil, nil, err
	}
	for i := range a.Rows {
		normalizeRow(a.Rows[i])
	}
	return a, &af.Metadata, nil
}
