// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reccoverse/engine/recommend"
	"github.com/reccoverse/engine/recommend/embedding"
	"github.com/reccoverse/engine/recommend/eventstore"
)

// testCatalog spans three domains with enough textual content for derived
// vectors to separate them.
func testCatalog() []recommend.Item {
	return []recommend.Item{
		{ID: "m1", Name: "Midnight Heist", Domain: "netflix", Category: "movie", Tags: []string{"thriller", "crime"}, Text: "a crew pulls one last job in the rain"},
		{ID: "m2", Name: "Rainy Getaway", Domain: "netflix", Category: "movie", Tags: []string{"thriller", "noir"}, Text: "a driver flees the city after a heist gone wrong"},
		{ID: "m3", Name: "Garden Documentary", Domain: "netflix", Category: "movie", Tags: []string{"nature", "calm"}, Text: "slow footage of gardens through the seasons"},
		{ID: "s1", Name: "Neon Nights", Domain: "spotify", Category: "music", Tags: []string{"synthwave", "retro"}, Text: "pulsing synth lines and late drives"},
		{ID: "s2", Name: "Retro Circuit", Domain: "spotify", Category: "music", Tags: []string{"synthwave", "electronic"}, Text: "arpeggios and neon textures for late drives"},
		{ID: "s3", Name: "Morning Raga", Domain: "spotify", Category: "music", Tags: []string{"classical", "asia"}, Text: "sitar and tabla for quiet mornings"},
		{ID: "p1", Name: "Trail Backpack", Domain: "amazon", Category: "product", Tags: []string{"outdoor", "hiking"}, Text: "forty liter pack with rain cover", Price: 89},
		{ID: "p2", Name: "Camp Stove", Domain: "amazon", Category: "product", Tags: []string{"outdoor", "camping"}, Text: "compact stove for trail cooking", Price: 45},
		{ID: "p3", Name: "Desk Lamp", Domain: "amazon", Category: "product", Tags: []string{"home", "office"}, Text: "warm light for late work", Price: 25},
	}
}

func newTestEngine(t *testing.T, events ...recommend.Event) (*recommend.Engine, *eventstore.MemoryStore) {
	t.Helper()

	cfg := recommend.DefaultConfig()
	eng, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	eng.SetCatalogProvider(recommend.StaticCatalog(testCatalog()))
	eng.SetVectorProvider(embedding.NewProvider(cfg.Embedding, zerolog.Nop()))

	store := eventstore.NewMemoryStore()
	if len(events) > 0 {
		if err := store.Append(context.Background(), events...); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	eng.SetEventSource(store)
	return eng, store
}

func itemIDs(list []recommend.ScoredItem) []string {
	ids := make([]string, len(list))
	for i, si := range list {
		ids[i] = si.Item.ID
	}
	return ids
}

func containsID(list []recommend.ScoredItem, id string) bool {
	for _, si := range list {
		if si.Item.ID == id {
			return true
		}
	}
	return false
}

func TestEngine_Recommend_WarmUser(t *testing.T) {
	// u likes both synthwave tracks; recommendations should stay on theme
	// and never repeat the liked items.
	eng, _ := newTestEngine(t,
		recommend.Event{UserID: "u", ItemID: "s1", Action: recommend.ActionLike, Timestamp: 100},
		recommend.Event{UserID: "u", ItemID: "s2", Action: recommend.ActionBag, Timestamp: 200},
	)

	resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", K: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if resp.Metadata.ColdStart {
		t.Error("user with likes flagged as cold start")
	}
	if resp.Metadata.Backend != "derived" {
		t.Errorf("backend = %q, want derived", resp.Metadata.Backend)
	}
	if len(resp.TopPicks) == 0 {
		t.Fatal("no top picks returned")
	}
	for _, section := range [][]recommend.ScoredItem{resp.TopPicks, resp.VibeTwins, resp.Explore} {
		for _, si := range section {
			if si.Item.ID == "s1" || si.Item.ID == "s2" {
				t.Errorf("interacted item %s resurfaced in results", si.Item.ID)
			}
		}
	}
}

func TestEngine_Recommend_ColdStart(t *testing.T) {
	eng, _ := newTestEngine(t)

	resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "nobody", K: 6})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !resp.Metadata.ColdStart {
		t.Error("user without events not flagged as cold start")
	}
	if len(resp.TopPicks) != 6 {
		t.Fatalf("len(TopPicks) = %d, want 6", len(resp.TopPicks))
	}

	// Cold-start selection must not collapse into a single domain.
	domains := make(map[string]struct{})
	for _, si := range resp.TopPicks {
		domains[si.Item.Domain] = struct{}{}
	}
	if len(domains) < 2 {
		t.Errorf("cold-start picks span %d domain(s), want at least 2: %v", len(domains), itemIDs(resp.TopPicks))
	}

	if len(resp.VibeTwins) != 0 {
		t.Errorf("cold-start user has %d vibe twins, want 0", len(resp.VibeTwins))
	}
}

func TestEngine_Recommend_CollaborativeSection(t *testing.T) {
	// u and n share s1; n also liked m1, so m1 should surface for u with a
	// collaborative score attached.
	eng, _ := newTestEngine(t,
		recommend.Event{UserID: "u", ItemID: "s1", Action: recommend.ActionLike, Timestamp: 1},
		recommend.Event{UserID: "n", ItemID: "s1", Action: recommend.ActionLike, Timestamp: 2},
		recommend.Event{UserID: "n", ItemID: "m1", Action: recommend.ActionLike, Timestamp: 3},
	)

	resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", K: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !containsID(resp.VibeTwins, "m1") {
		t.Fatalf("vibe twins = %v, want m1 present", itemIDs(resp.VibeTwins))
	}
	for _, si := range resp.VibeTwins {
		if si.Scores == nil {
			t.Errorf("vibe twin %s missing score breakdown", si.Item.ID)
			continue
		}
		if _, ok := si.Scores["collab"]; !ok {
			t.Errorf("vibe twin %s missing collab component", si.Item.ID)
		}
		if si.Scores["collab"] <= 0 {
			t.Errorf("vibe twin %s has non-positive collab score", si.Item.ID)
		}
	}
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	events := []recommend.Event{
		{UserID: "u", ItemID: "m1", Action: recommend.ActionLike, Timestamp: 10},
		{UserID: "v", ItemID: "m1", Action: recommend.ActionLike, Timestamp: 11},
		{UserID: "v", ItemID: "p1", Action: recommend.ActionBag, Timestamp: 12},
	}

	eng, _ := newTestEngine(t, events...)
	req := recommend.Request{UserID: "u", K: 5, RequestID: "fixed"}

	first, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		// Fresh engine each time so caching cannot mask nondeterminism.
		other, _ := newTestEngine(t, events...)
		got, err := other.Recommend(context.Background(), req)
		if err != nil {
			t.Fatalf("run %d: Recommend() error = %v", i, err)
		}

		sections := []struct {
			name       string
			want, have []recommend.ScoredItem
		}{
			{"top_picks", first.TopPicks, got.TopPicks},
			{"vibe_twins", first.VibeTwins, got.VibeTwins},
			{"explore", first.Explore, got.Explore},
		}
		for _, s := range sections {
			wantIDs := itemIDs(s.want)
			haveIDs := itemIDs(s.have)
			if len(wantIDs) != len(haveIDs) {
				t.Fatalf("run %d: %s length %d, want %d", i, s.name, len(haveIDs), len(wantIDs))
			}
			for j := range wantIDs {
				if wantIDs[j] != haveIDs[j] {
					t.Fatalf("run %d: %s = %v, want %v", i, s.name, haveIDs, wantIDs)
				}
			}
		}
	}
}

func TestEngine_Recommend_KClamping(t *testing.T) {
	eng, _ := newTestEngine(t)

	t.Run("zero K uses default", func(t *testing.T) {
		resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u"})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		// Catalog is smaller than the default K, so everything comes back.
		if len(resp.TopPicks) != len(testCatalog()) {
			t.Errorf("len(TopPicks) = %d, want %d", len(resp.TopPicks), len(testCatalog()))
		}
	})

	t.Run("huge K is capped", func(t *testing.T) {
		resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", K: 1 << 20})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(resp.TopPicks) > len(testCatalog()) {
			t.Errorf("len(TopPicks) = %d, exceeds catalog", len(resp.TopPicks))
		}
	})
}

type failingEventSource struct{}

func (failingEventSource) UserEvents(ctx context.Context, userID string) ([]recommend.Event, error) {
	return nil, errors.New("event backend down")
}

func (failingEventSource) Events(ctx context.Context) ([]recommend.Event, error) {
	return nil, errors.New("event backend down")
}

func TestEngine_Recommend_DegradesOnEventFailure(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.SetEventSource(failingEventSource{})

	resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", K: 4})
	if err != nil {
		t.Fatalf("Recommend() error = %v, want degraded success", err)
	}
	if !resp.Metadata.ColdStart {
		t.Error("event failure should serve the cold-start path")
	}
	if len(resp.TopPicks) == 0 {
		t.Error("degraded request returned no results")
	}
}

func TestEngine_Recommend_ErrorCases(t *testing.T) {
	cfg := recommend.DefaultConfig()

	t.Run("missing catalog provider", func(t *testing.T) {
		eng, err := recommend.NewEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		eng.SetVectorProvider(embedding.NewProvider(cfg.Embedding, zerolog.Nop()))
		if _, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u"}); err == nil {
			t.Error("expected error without a catalog provider")
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		eng, err := recommend.NewEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		eng.SetCatalogProvider(recommend.StaticCatalog(nil))
		eng.SetVectorProvider(embedding.NewProvider(cfg.Embedding, zerolog.Nop()))
		if _, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u"}); err == nil {
			t.Error("expected error for empty catalog")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := eng.Recommend(ctx, recommend.Request{UserID: "u"}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := recommend.DefaultConfig()
		bad.MMR.Lambda = 2.0
		if _, err := recommend.NewEngine(bad, zerolog.Nop()); err == nil {
			t.Error("expected error for invalid config")
		}
	})
}

func TestEngine_Recommend_RequestID(t *testing.T) {
	eng, _ := newTestEngine(t)

	t.Run("provided id is kept", func(t *testing.T) {
		resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", RequestID: "req-7"})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Metadata.RequestID != "req-7" {
			t.Errorf("request id = %q, want req-7", resp.Metadata.RequestID)
		}
	})

	t.Run("missing id is generated", func(t *testing.T) {
		resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u"})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Metadata.RequestID == "" {
			t.Error("request id not generated")
		}
	})
}

func TestEngine_Recommend_DuplicateCatalogEntries(t *testing.T) {
	cfg := recommend.DefaultConfig()
	eng, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	catalog := append(testCatalog(), testCatalog()...)
	eng.SetCatalogProvider(recommend.StaticCatalog(catalog))
	eng.SetVectorProvider(embedding.NewProvider(cfg.Embedding, zerolog.Nop()))

	resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", K: 100})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if resp.Metadata.CatalogSize != len(testCatalog()) {
		t.Errorf("catalog size = %d, want deduplicated %d", resp.Metadata.CatalogSize, len(testCatalog()))
	}

	seen := make(map[string]struct{})
	for _, si := range resp.TopPicks {
		if _, ok := seen[si.Item.ID]; ok {
			t.Fatalf("duplicate item %s in top picks", si.Item.ID)
		}
		seen[si.Item.ID] = struct{}{}
	}
}

func TestEngine_Recommend_PrecomputedBackend(t *testing.T) {
	cfg := recommend.DefaultConfig()
	catalog := testCatalog()

	artifact, err := embedding.BuildArtifact(context.Background(), catalog, cfg.Embedding)
	if err != nil {
		t.Fatalf("BuildArtifact() error = %v", err)
	}

	provider := embedding.NewProvider(cfg.Embedding, zerolog.Nop())
	provider.SetArtifact(artifact)

	eng, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	eng.SetCatalogProvider(recommend.StaticCatalog(catalog))
	eng.SetVectorProvider(provider)

	resp, err := eng.Recommend(context.Background(), recommend.Request{UserID: "u", K: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.Backend != "precomputed" {
		t.Errorf("backend = %q, want precomputed", resp.Metadata.Backend)
	}
}
