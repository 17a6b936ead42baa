package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pagewright/pagewright/internal/state"
)

// EventStore is the append-only log of design events, one stream per
// document.
type EventStore interface {
	// AppendEvent adds an event at the end of the document's stream and
	// returns its sequence number.
	AppendEvent(ctx context.Context, documentID string, ev state.Event) (int64, error)

	// LoadEvents returns the document's full stream in append order. An
	// unknown document yields an empty stream, not an error.
	LoadEvents(ctx context.Context, documentID string) ([]state.Event, error)

	// Documents lists the ids of every document with at least one event.
	Documents(ctx context.Context) ([]string, error)
}

// NewEventStore returns a SQLite-backed event store.
func NewEventStore(db *DB) EventStore {
	return &sqlEventStore{db: db}
}

type sqlEventStore struct {
	db *DB
}

func (s *sqlEventStore) AppendEvent(ctx context.Context, documentID string, ev state.Event) (int64, error) {
	if ev.Payload == nil {
		return 0, fmt.Errorf("append event: nil payload")
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return 0, fmt.Errorf("encode event: %w", err)
	}

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents (id) VALUES (?)`, documentID); err != nil {
		return 0, fmt.Errorf("ensure document: %w", err)
	}

	var seq int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM design_events WHERE document_id = ?`,
		documentID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO design_events (document_id, seq, event_id, event_type, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		documentID, seq, ev.ID, ev.Payload.EventType(), string(payload)); err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return seq, nil
}

func (s *sqlEventStore) LoadEvents(ctx context.Context, documentID string) ([]state.Event, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT payload FROM design_events WHERE document_id = ? ORDER BY seq`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var events []state.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		var ev state.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return events, nil
}

func (s *sqlEventStore) Documents(ctx context.Context) ([]string, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT DISTINCT document_id FROM design_events ORDER BY document_id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
