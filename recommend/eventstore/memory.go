// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package eventstore

import (
	"context"
	"sync"

	"github.com/reccoverse/engine/recommend"
)

// MemoryStore is an in-process event log. It backs tests and deployments
// without persistent storage; events are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	events []recommend.Event
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds events to the log.
func (s *MemoryStore) Append(ctx context.Context, events ...recommend.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

// UserEvents returns the events of one user in append order.
func (s *MemoryStore) UserEvents(ctx context.Context, userID string) ([]recommend.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.Event
	for _, ev := range s.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Events returns all events in append order.
func (s *MemoryStore) Events(ctx context.Context) ([]recommend.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recommend.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
