// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reccoverse/engine/recommend/reranking"
)

// Engine orchestrates the scoring pipeline: item vectors, user profile,
// cosine ranking, collaborative blending, Quanta exploration and cold-start
// selection.
//
// Collaborators are plugged in through interfaces so the engine never pulls
// in storage or embedding internals. The catalog and vector providers are
// required; the event source is optional and every user without events is
// served through the cold-start path.
type Engine struct {
	cfg     *Config
	log     zerolog.Logger
	catalog CatalogProvider
	events  EventSource
	vectors VectorProvider
	cache   *vectorCache
}

// NewEngine creates an Engine with a validated configuration. A nil config
// uses defaults.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	e := &Engine{
		cfg: cfg.Clone(),
		log: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = newVectorCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}
	return e, nil
}

// SetCatalogProvider sets the catalog source. Required before Recommend.
func (e *Engine) SetCatalogProvider(p CatalogProvider) {
	e.catalog = p
}

// SetVectorProvider sets the item vector source. Required before Recommend.
func (e *Engine) SetVectorProvider(p VectorProvider) {
	e.vectors = p
}

// SetEventSource sets the interaction event source. Optional; without one
// every request takes the cold-start path.
func (e *Engine) SetEventSource(s EventSource) {
	e.events = s
}

// Recommend produces the three result sections for a user. Event-source
// failures degrade to cold-start behavior with a warning; catalog or
// vector failures are returned as errors since nothing can be scored
// without them.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := e.log.With().
		Str("request_id", requestID).
		Str("user_id", req.UserID).
		Logger()

	resp, err := e.recommend(ctx, req, requestID, log)
	metricDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metricRequests.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Recommendation request failed")
		return nil, err
	}

	metricRequests.WithLabelValues("ok").Inc()
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	log.Debug().
		Int("top_picks", len(resp.TopPicks)).
		Int("vibe_twins", len(resp.VibeTwins)).
		Int("explore", len(resp.Explore)).
		Bool("cold_start", resp.Metadata.ColdStart).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("Recommendation request served")
	return resp, nil
}

func (e *Engine) recommend(ctx context.Context, req Request, requestID string, log zerolog.Logger) (*Response, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("no catalog provider configured")
	}
	if e.vectors == nil {
		return nil, fmt.Errorf("no vector provider configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := req.K
	if k <= 0 {
		k = e.cfg.Limits.DefaultK
	}
	if k > e.cfg.Limits.MaxK {
		k = e.cfg.Limits.MaxK
	}

	rawCatalog, err := e.catalog.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	catalog := DedupeItems(rawCatalog)
	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	vectors, err := e.itemVectors(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("item vectors unavailable: %w", err)
	}

	userEvents, globalEvents := e.loadEvents(ctx, req.UserID, log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := SeenItems(userEvents)
	coldStart := !hasQualifying(userEvents, vectors.Index)

	profile := BuildUserVector(userEvents, vectors, e.cfg.Profile)
	base := CosineScores(profile, vectors)

	var topPicks []ScoredItem
	if coldStart {
		metricColdStarts.Inc()
		ids := reranking.SelectDiverse(vectors.Rows, vectors.IDs, base, k, e.cfg.MMR.Lambda)
		topPicks = e.buildScored(ids, catalog, vectors, base, nil)
	} else {
		ids := reranking.TopK(vectors.IDs, base, seen, k)
		topPicks = e.buildScored(ids, catalog, vectors, base, nil)
	}

	vibeTwins := e.vibeTwins(req.UserID, globalEvents, seen, catalog, vectors, base, k)

	explore := e.explore(userEvents, globalEvents, seen, catalog, vectors, req.Context, k)

	unseen := 0
	for _, id := range vectors.IDs {
		if _, ok := seen[id]; !ok {
			unseen++
		}
	}

	return &Response{
		TopPicks:        topPicks,
		VibeTwins:       vibeTwins,
		Explore:         explore,
		TotalCandidates: unseen,
		Metadata: Metadata{
			RequestID:   requestID,
			UserID:      req.UserID,
			Backend:     vectors.Source.String(),
			ColdStart:   coldStart,
			CatalogSize: len(catalog),
			Timestamp:   time.Now().UTC(),
		},
	}, nil
}

// itemVectors returns vectors for the catalog, consulting the fingerprint
// cache when enabled.
func (e *Engine) itemVectors(ctx context.Context, catalog []Item) (*ItemVectors, error) {
	if e.cache == nil {
		return e.vectors.Vectors(ctx, catalog)
	}

	fp := catalogFingerprint(catalog)
	if cached := e.cache.Get(fp); cached != nil {
		metricVectorCacheHits.Inc()
		return cached, nil
	}
	metricVectorCacheMisses.Inc()

	vectors, err := e.vectors.Vectors(ctx, catalog)
	if err != nil {
		return nil, err
	}
	e.cache.Put(fp, vectors)
	return vectors, nil
}

// loadEvents fetches user and global events. Failures degrade: the request
// proceeds as cold start, with collaborative and recency signals disabled.
func (e *Engine) loadEvents(ctx context.Context, userID string, log zerolog.Logger) ([]Event, []Event) {
	if e.events == nil {
		return nil, nil
	}

	userEvents, err := e.events.UserEvents(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Msg("User event fetch failed, serving cold start")
		userEvents = nil
	}

	globalEvents, err := e.events.Events(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Global event fetch failed, collaborative signals disabled")
		globalEvents = nil
	}
	return userEvents, globalEvents
}

// vibeTwins ranks unseen items with neighbor support by the blended
// cosine + collaborative score. Users without neighbors get an empty
// section rather than a filler one.
func (e *Engine) vibeTwins(userID string, global []Event, seen map[string]struct{}, catalog []Item, vectors *ItemVectors, base []float64, k int) []ScoredItem {
	collab := CollaborativeScores(userID, global, seen, vectors)
	blended := BlendCollaborative(base, collab, e.cfg.Collab.Weight)

	var ids []string
	var scores []float64
	for i, id := range vectors.IDs {
		if collab[i] <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		ids = append(ids, id)
		scores = append(scores, blended[i])
	}
	if len(ids) == 0 {
		return nil
	}

	top := reranking.TopK(ids, scores, nil, k)
	out := make([]ScoredItem, 0, len(top))
	for _, id := range top {
		row := vectors.Index[id]
		out = append(out, ScoredItem{
			Item:  catalog[row],
			Score: blended[row],
			Scores: map[string]float64{
				"cosine": base[row],
				"collab": collab[row],
			},
		})
	}
	return out
}

// explore ranks unseen items by the Quanta exploration blend.
func (e *Engine) explore(userEvents, global []Event, seen map[string]struct{}, catalog []Item, vectors *ItemVectors, qctx *Context, k int) []ScoredItem {
	var cands []Item
	var candVecs [][]float64
	var candIDs []string
	for i, id := range vectors.IDs {
		if _, ok := seen[id]; ok {
			continue
		}
		cands = append(cands, catalog[i])
		candVecs = append(candVecs, vectors.Rows[i])
		candIDs = append(candIDs, id)
	}
	if len(cands) == 0 {
		return nil
	}

	likedDomains := LikedDomains(userEvents, catalog, vectors.Index)
	scores := QuantaScores(cands, candVecs, likedDomains, global, qctx, e.cfg.Quanta)

	top := reranking.TopK(candIDs, scores, nil, k)

	scoreByID := make(map[string]float64, len(candIDs))
	for i, id := range candIDs {
		scoreByID[id] = scores[i]
	}

	out := make([]ScoredItem, 0, len(top))
	for _, id := range top {
		row := vectors.Index[id]
		out = append(out, ScoredItem{
			Item:  catalog[row],
			Score: scoreByID[id],
		})
	}
	return out
}

// buildScored resolves ranked ids back to items. The extra map supplies a
// per-item score breakdown when present.
func (e *Engine) buildScored(ids []string, catalog []Item, vectors *ItemVectors, scores []float64, extra map[string]map[string]float64) []ScoredItem {
	out := make([]ScoredItem, 0, len(ids))
	for _, id := range ids {
		row, ok := vectors.Index[id]
		if !ok {
			continue
		}
		item := ScoredItem{
			Item:  catalog[row],
			Score: scores[row],
		}
		if extra != nil {
			item.Scores = extra[id]
		}
		out = append(out, item)
	}
	return out
}

// DedupeItems removes duplicate catalog ids, keeping the first occurrence.
func DedupeItems(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// hasQualifying reports whether any like/bag event references a known
// catalog item. Events against items that left the catalog do not rescue a
// user from the cold-start path.
func hasQualifying(events []Event, index map[string]int) bool {
	for _, ev := range events {
		if !ev.Action.Qualifies() {
			continue
		}
		if _, ok := index[ev.ItemID]; ok {
			return true
		}
	}
	return false
}

// catalogFingerprint hashes every item field the embedding reads, so the
// vector cache keys on catalog content, not object identity. Any content
// change invalidates the key immediately rather than waiting for the TTL.
func catalogFingerprint(items []Item) uint64 {
	h := fnv.New64a()
	for _, it := range items {
		h.Write([]byte(it.ID))
		h.Write([]byte{0})
		h.Write([]byte(it.Name))
		h.Write([]byte{0})
		h.Write([]byte(it.Domain))
		h.Write([]byte{0})
		h.Write([]byte(it.Category))
		h.Write([]byte{0})
		for _, tag := range it.Tags {
			h.Write([]byte(tag))
			h.Write([]byte{1})
		}
		h.Write([]byte{0})
		h.Write([]byte(it.Text))
		h.Write([]byte{0xff})
	}
	return h.Sum64()
}
