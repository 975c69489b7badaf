// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package eventstore

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reccoverse/engine/recommend"
)

// Key layout for BadgerDB storage. Events are stored under zero-padded
// sequence numbers so key order equals append order.
const (
	eventKeyPrefix = "evt:"
	eventKeyFormat = "evt:%020d"
	sequenceKey    = "evt_seq"
)

// sequenceBandwidth is the number of sequence values leased per request.
const sequenceBandwidth = 64

// BadgerStore is a durable append-only event log backed by BadgerDB.
// Events survive restarts; unparsable records are skipped with a warning
// so one bad write never poisons the whole log.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
	log zerolog.Logger
}

// OpenBadger opens (or creates) a Badger-backed event log at dir.
func OpenBadger(dir string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open event sequence: %w", err)
	}

	return &BadgerStore{
		db:  db,
		seq: seq,
		log: logger.With().Str("component", "eventstore").Logger(),
	}, nil
}

// Append adds events to the log in order.
func (s *BadgerStore) Append(ctx context.Context, events ...recommend.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, ev := range events {
			n, err := s.seq.Next()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}

			data, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("marshal event: %w", err)
			}

			key := []byte(fmt.Sprintf(eventKeyFormat, n))
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set event: %w", err)
			}
		}
		return nil
	})
}

// UserEvents returns the events of one user in append order. The log has
// no per-user index; the full scan is acceptable at the catalog scales
// this engine serves.
func (s *BadgerStore) UserEvents(ctx context.Context, userID string) ([]recommend.Event, error) {
	var out []recommend.Event
	err := s.scan(ctx, func(ev recommend.Event) {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	})
	return out, err
}

// Events returns all events in append order.
func (s *BadgerStore) Events(ctx context.Context) ([]recommend.Event, error) {
	var out []recommend.Event
	err := s.scan(ctx, func(ev recommend.Event) {
		out = append(out, ev)
	})
	return out, err
}

func (s *BadgerStore) scan(ctx context.Context, fn func(recommend.Event)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := it.Item().Value(func(val []byte) error {
				var ev recommend.Event
				if err := json.Unmarshal(val, &ev); err != nil {
					s.log.Warn().Err(err).
						Str("key", string(it.Item().Key())).
						Msg("Skipping unparsable event record")
					return nil
				}
				fn(ev)
				return nil
			})
			if err != nil {
				return fmt.Errorf("read event: %w", err)
			}
		}
		return nil
	})
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to release event sequence")
	}
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
