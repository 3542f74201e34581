package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/3dimaging/personal-website-analytics/model"
	_ "modernc.org/sqlite" // CGO-free SQLite
)

// Store wraps the analytics database. All writes are transactional per
// record; reads are plain committed-state scans.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the analytics database at dsn.
func Open(dsn string) (*Store, error) {
	// WAL + busy timeout to avoid "database is locked"; modernc.org/sqlite
	// takes pragmas as _pragma=name(value) parameters.
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS visits(
	  id                INTEGER PRIMARY KEY AUTOINCREMENT,
	  timestamp         TEXT    NOT NULL,
	  is_mobile         INTEGER NOT NULL,
	  screen_resolution TEXT    NOT NULL
	);
	CREATE TABLE IF NOT EXISTS events(
	  id         INTEGER PRIMARY KEY AUTOINCREMENT,
	  timestamp  TEXT NOT NULL,
	  event_type TEXT,
	  event_data TEXT CHECK (event_data IS NULL OR json_valid(event_data))
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create database tables: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InsertVisit stores one visit record atomically. Any failure rolls the
// transaction back; the deferred rollback is a no-op after commit.
func (s *Store) InsertVisit(ctx context.Context, visit model.Visit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO visits(timestamp, is_mobile, screen_resolution) VALUES(?,?,?)`,
		visit.Timestamp.UTC().Format(time.RFC3339Nano), visit.IsMobile, visit.ScreenResolution)
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// InsertEvent stores one event record atomically. Absent type or data is
// persisted as NULL; the data payload is stored as opaque JSON text.
func (s *Store) InsertEvent(ctx context.Context, event model.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var eventType sql.NullString
	if event.EventType != nil {
		eventType = sql.NullString{String: *event.EventType, Valid: true}
	}
	var eventData sql.NullString
	if len(event.EventData) > 0 && string(event.EventData) != "null" {
		eventData = sql.NullString{String: string(event.EventData), Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO events(timestamp, event_type, event_data) VALUES(?,?,?)`,
		event.Timestamp.UTC().Format(time.RFC3339Nano), eventType, eventData)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListVisits returns every stored visit in insertion order.
func (s *Store) ListVisits(ctx context.Context) ([]model.Visit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, is_mobile, screen_resolution FROM visits ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []model.Visit
	for rows.Next() {
		var visit model.Visit
		var ts string
		if err := rows.Scan(&visit.ID, &ts, &visit.IsMobile, &visit.ScreenResolution); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visit.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse visit timestamp: %w", err)
		}
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read visits: %w", err)
	}
	return visits, nil
}

// ListEvents returns every stored event in insertion order.
func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, event_type, event_data FROM events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var event model.Event
		var ts string
		var eventType, eventData sql.NullString
		if err := rows.Scan(&event.ID, &ts, &eventType, &eventData); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event timestamp: %w", err)
		}
		if eventType.Valid {
			event.EventType = &eventType.String
		}
		if eventData.Valid {
			event.EventData = json.RawMessage(eventData.String)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
