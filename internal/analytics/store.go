// Package analytics records privacy-conscious gallery usage in sqlite.
//
// Raw addresses and form content are never stored: visitors are identified by
// a salted, truncated hash and contact events carry only their outcome.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Kind classifies an event.
type Kind string

const (
	PageView      Kind = "page_view"
	FilterTag     Kind = "filter"
	ModalOpen     Kind = "modal_open"
	ImageFailed   Kind = "image_failed"
	ContactSent   Kind = "contact_sent"
	ContactFailed Kind = "contact_failed"
)

// Retention is how long events are kept.
const Retention = 365 * 24 * time.Hour

// Event is one recorded interaction.
type Event struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	Kind      Kind      `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Count is a subject with its number of events.
type Count struct {
	Subject string `json:"subject"`
	Count   int64  `json:"count"`
}

// Stats summarises the stored events.
type Stats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	ContactsSent     int64   `json:"contacts_sent"`
	ContactsFailed   int64   `json:"contacts_failed"`
	TopProjects      []Count `json:"top_projects"`
	TopTags          []Count `json:"top_tags"`
	FailedImages     []Count `json:"failed_images"`
	RecentEvents     []Event `json:"recent_events"`
}

// Store is the sqlite-backed event log.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	kind TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS events_kind_timestamp ON events (kind, timestamp);`

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// sqlite allows one writer; in-memory databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	salt, err := newSalt()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashIP hashes an address with the per-process salt. The result is stable
// for the lifetime of the store and not reversible.
func (s *Store) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

// Record stores one event for the visitor at ip.
func (s *Store) Record(ctx context.Context, ip string, kind Kind, subject string) error {
	if kind == "" {
		return errors.New("record event: empty kind")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (hashed_ip, kind, subject, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), string(kind), subject, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Cleanup deletes events older than the retention window and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE timestamp < ?`, s.now().UTC().Add(-Retention))
	if err != nil {
		return 0, fmt.Errorf("cleanup events: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats computes the operator summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now().UTC()
	startOfDay := now.Truncate(24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM events WHERE kind = ?`, []any{PageView}},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM events WHERE kind = ?`, []any{PageView}},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM events WHERE kind = ? AND timestamp >= ?`, []any{PageView, startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM events WHERE kind = ? AND timestamp >= ?`, []any{PageView, now.Add(-7 * 24 * time.Hour)}},
		{&stats.ContactsSent, `SELECT COUNT(*) FROM events WHERE kind = ?`, []any{ContactSent}},
		{&stats.ContactsFailed, `SELECT COUNT(*) FROM events WHERE kind = ?`, []any{ContactFailed}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.TopProjects, err = s.top(ctx, ModalOpen); err != nil {
		return nil, err
	}
	if stats.TopTags, err = s.top(ctx, FilterTag); err != nil {
		return nil, err
	}
	if stats.FailedImages, err = s.top(ctx, ImageFailed); err != nil {
		return nil, err
	}
	if stats.RecentEvents, err = s.Recent(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) top(ctx context.Context, kind Kind) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject, COUNT(*) AS n
		FROM events
		WHERE kind = ?
		GROUP BY subject
		ORDER BY n DESC, subject ASC
		LIMIT 10`, kind)
	if err != nil {
		return nil, fmt.Errorf("top %s: %w", kind, err)
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Subject, &c.Count); err != nil {
			return nil, fmt.Errorf("top %s: %w", kind, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Recent returns the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, kind, subject, timestamp
		FROM events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.HashedIP, &kind, &e.Subject, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("recent events: %w", err)
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
