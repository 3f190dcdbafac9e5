// Package ledger keeps the minimal durable record of already-booked dates
// in an embedded sqlite file, so restarts never double-book a date the
// portal already confirmed.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/example/desk-scheduler/internal/domain/booking"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger init: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS booked_dates (
		date        TEXT PRIMARY KEY,
		recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`)
	return err
}

func (s *Store) IsBooked(ctx context.Context, date booking.Date) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM booked_dates WHERE date = ?`, date.String()).Scan(&n)
	return n > 0, err
}

func (s *Store) MarkBooked(ctx context.Context, date booking.Date) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO booked_dates (date) VALUES (?)`, date.String())
	return err
}

// Prune drops entries strictly before the given date. Past dates can never
// be booked again, so the ledger stays a handful of rows.
func (s *Store) Prune(ctx context.Context, before booking.Date) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM booked_dates WHERE date < ?`, before.String())
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
