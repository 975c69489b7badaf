// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Action classifies a user-item interaction.
type Action int

const (
	// ActionIgnored is any interaction the scoring core does not recognize.
	// Ignored events are filtered out, never treated as an error.
	ActionIgnored Action = iota
	// ActionLike indicates the user explicitly liked an item.
	ActionLike
	// ActionBag indicates the user saved an item for later ("bagged" it).
	ActionBag
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionLike:
		return "like"
	case ActionBag:
		return "bag"
	default:
		return "ignored"
	}
}

// Weight returns the profile-building weight for this action.
// Likes are full-strength signals; bagging is a softer intent.
func (a Action) Weight() float64 {
	switch a {
	case ActionLike:
		return 1.0
	case ActionBag:
		return 0.7
	default:
		return 0.0
	}
}

// Qualifies reports whether the action contributes to a user profile.
func (a Action) Qualifies() bool {
	return a == ActionLike || a == ActionBag
}

// ParseAction maps a raw action string to an Action.
// Unrecognized values map to ActionIgnored.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "like":
		return ActionLike
	case "bag":
		return ActionBag
	default:
		return ActionIgnored
	}
}

// MarshalJSON encodes the action as its string name.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an action from its string name.
// Unknown names decode to ActionIgnored.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAction(s)
	return nil
}

// Event represents one user-item interaction in the append-only log.
type Event struct {
	// UserID is the identifier of the interacting user.
	UserID string `json:"user_id"`

	// ItemID is the identifier of the catalog item.
	ItemID string `json:"item_id"`

	// Action is the interaction type (like, bag, or ignored).
	Action Action `json:"action"`

	// Timestamp is the interaction time as epoch seconds.
	// Zero means unknown/oldest.
	Timestamp float64 `json:"ts"`
}

// eventWire mirrors Event with a raw timestamp so both numeric epochs and
// ISO-8601 strings decode without error.
type eventWire struct {
	UserID    string          `json:"user_id"`
	UID       string          `json:"uid"`
	ItemID    string          `json:"item_id"`
	Action    Action          `json:"action"`
	Timestamp json.RawMessage `json:"ts"`
}

// UnmarshalJSON decodes an event tolerantly: the timestamp may be a numeric
// epoch value or an ISO-8601 string, and unparsable timestamps become 0.
// Both "user_id" and the legacy "uid" key are accepted.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	e.UserID = w.UserID
	if e.UserID == "" {
		e.UserID = w.UID
	}
	e.ItemID = w.ItemID
	e.Action = w.Action
	e.Timestamp = parseTimestamp(w.Timestamp)
	return nil
}

// parseTimestamp converts a raw JSON timestamp to epoch seconds.
// Unparsable values yield 0 (treated as oldest).
func parseTimestamp(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	return ParseTimeString(s)
}

// ParseTimeString parses an ISO-8601 timestamp string to epoch seconds.
// A numeric string is accepted as a plain epoch value. Unparsable input
// yields 0.
func ParseTimeString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	// Interaction logs from some providers carry a trailing Z without an
	// otherwise RFC3339-complete value.
	trimmed := strings.TrimSuffix(s, "Z")
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Unix())
		}
		if t, err := time.Parse(layout, trimmed); err == nil {
			return float64(t.Unix())
		}
	}
	return 0
}

// Item represents a catalog entry with the metadata used for scoring.
// Items are immutable for the duration of a scoring request.
type Item struct {
	// ID is the unique item identifier.
	ID string `json:"item_id"`

	// Name is the display name.
	Name string `json:"name"`

	// Domain is the content source/domain (e.g. "netflix", "spotify").
	Domain string `json:"domain"`

	// Category is a coarse content category (e.g. "music", "product").
	Category string `json:"category"`

	// Tags holds free-form descriptive tags (moods, regions, festivals).
	Tags []string `json:"tags,omitempty"`

	// Text is a free-text description used for vector derivation.
	Text string `json:"text,omitempty"`

	// Price is the item price where applicable. Zero means unknown.
	Price float64 `json:"price,omitempty"`
}

// ScoredItem pairs an item with its final score and a per-signal breakdown.
type ScoredItem struct {
	// Item is the catalog item.
	Item Item `json:"item"`

	// Score is the blended score used for ranking.
	Score float64 `json:"score"`

	// Scores is a breakdown of the contributing signals
	// (e.g. "cosine", "collab", "quanta").
	Scores map[string]float64 `json:"scores,omitempty"`
}

// VectorSource identifies how item vectors were obtained.
type VectorSource int

const (
	// SourceDerived means vectors were derived on the fly from item content.
	SourceDerived VectorSource = iota
	// SourcePrecomputed means vectors came from a precomputed artifact.
	SourcePrecomputed
)

// String returns the backend name for a vector source.
func (s VectorSource) String() string {
	switch s {
	case SourcePrecomputed:
		return "precomputed"
	default:
		return "derived"
	}
}

// ItemVectors holds one vector per catalog item, aligned to catalog order.
//
// Invariants: len(Rows) == len(IDs), Index[IDs[i]] == i, and every row has
// the same dimension. The structure is read-only after construction and safe
// for concurrent reads.
type ItemVectors struct {
	// Rows holds one vector per item, in catalog order.
	Rows [][]float64

	// IDs holds the item ids in row order.
	IDs []string

	// Index maps item id to row index.
	Index map[string]int

	// Source records how the vectors were obtained.
	Source VectorSource
}

// Dim returns the vector dimension, or 0 for an empty set.
func (v *ItemVectors) Dim() int {
	if v == nil || len(v.Rows) == 0 {
		return 0
	}
	return len(v.Rows[0])
}

// VectorProvider supplies item vectors for a catalog snapshot.
// Implemented by the embedding package.
type VectorProvider interface {
	// Vectors returns one vector per deduplicated catalog item, in catalog
	// order, with an id -> row index.
	Vectors(ctx context.Context, catalog []Item) (*ItemVectors, error)
}

// CatalogProvider supplies the active catalog snapshot.
type CatalogProvider interface {
	// Items returns the ordered catalog. Callers receive their own snapshot
	// and must not retain or mutate the engine's copy across requests.
	Items(ctx context.Context) ([]Item, error)
}

// EventSource supplies interaction-log snapshots.
// Implemented by the eventstore package.
type EventSource interface {
	// UserEvents returns all events for one user.
	UserEvents(ctx context.Context, userID string) ([]Event, error)

	// Events returns the global event log.
	Events(ctx context.Context) ([]Event, error)
}

// StaticCatalog adapts a fixed item slice to the CatalogProvider interface.
type StaticCatalog []Item

// Items returns a copy of the catalog slice.
func (c StaticCatalog) Items(ctx context.Context) ([]Item, error) {
	out := make([]Item, len(c))
	copy(out, c)
	return out, nil
}

// Context carries optional request-time context signals for Quanta scoring.
type Context struct {
	// Region is the user's region tag (e.g. "asia", "latam").
	Region string `json:"region,omitempty"`

	// Festival is an active festival/season tag (e.g. "diwali").
	Festival string `json:"festival,omitempty"`

	// Climate is a climate tag (e.g. "monsoon", "winter").
	Climate string `json:"climate,omitempty"`
}

// Request represents one recommendation request.
type Request struct {
	// UserID is the user to score for. An unknown or empty user id simply
	// yields the cold-start path.
	UserID string `json:"user_id"`

	// K is the number of items to return per section.
	// Defaults to the configured Limits.DefaultK when zero.
	K int `json:"k,omitempty"`

	// Context provides optional contextual signals for Quanta scoring.
	Context *Context `json:"context,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response holds the three ranked display sections for one request.
type Response struct {
	// TopPicks is the personalized section (cosine ranking, seen items
	// excluded; MMR-diverse on cold start).
	TopPicks []ScoredItem `json:"top_picks"`

	// VibeTwins is the collaborative section: items liked by users who share
	// at least one liked item with the requester.
	VibeTwins []ScoredItem `json:"vibe_twins"`

	// Explore is the Quanta-ranked discovery section.
	Explore []ScoredItem `json:"explore"`

	// TotalCandidates is the number of catalog items considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata Metadata `json:"metadata"`
}

// Metadata contains timing and diagnostic information for a response.
type Metadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UserID is the user the recommendations are for.
	UserID string `json:"user_id"`

	// Backend reports the vector source ("precomputed" or "derived").
	Backend string `json:"backend"`

	// ColdStart indicates the user had no qualifying interactions.
	ColdStart bool `json:"cold_start"`

	// CatalogSize is the deduplicated catalog size.
	CatalogSize int `json:"catalog_size"`

	// LatencyMS is the total scoring latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}
