// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package eventstore

import (
	"context"

	"github.com/reccoverse/engine/recommend"
)

// Store is an append-only interaction log that also serves as the engine's
// event source. Events are returned in append order; nothing is ever
// rewritten in place.
type Store interface {
	recommend.EventSource

	// Append adds events to the log.
	Append(ctx context.Context, events ...recommend.Event) error

	// Close releases store resources.
	Close() error
}
