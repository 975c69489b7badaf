// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

// Package eventstore provides append-only interaction logs that implement
// the engine's EventSource interface.
//
// Two backends exist: MemoryStore for tests and ephemeral deployments, and
// BadgerStore for durable storage across restarts. Both return events in
// append order.
package eventstore
