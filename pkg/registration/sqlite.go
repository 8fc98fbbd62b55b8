package registration

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SqliteStore keeps registrations in a single table, one row per join.
// registered_at is unix nanoseconds.
type SqliteStore struct {
	db *sql.DB
}

func NewSqliteStore(db *sql.DB) (*SqliteStore, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`create table if not exists registration (
			id integer primary key autoincrement,
			location text not null,
			registered_at integer not null
		)`,
		`create index if not exists idx_registration_location on registration(location)`,
		`create index if not exists idx_registration_registered_at on registration(registered_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("registration: schema: %w", err)
		}
	}
	return nil
}

func (s *SqliteStore) Insert(ctx context.Context, entry Entry) error {
	if _, err := s.db.ExecContext(ctx,
		`insert into registration(location, registered_at) values(?, ?)`,
		entry.Location, entry.RegisteredAt.UnixNano(),
	); err != nil {
		return unavailable("insert", err)
	}
	return nil
}

func (s *SqliteStore) CountByLocation(ctx context.Context, location string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from registration where location = ?`, location,
	).Scan(&count); err != nil {
		return 0, unavailable("count", err)
	}
	return count, nil
}

func (s *SqliteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`delete from registration where registered_at < ?`, cutoff.UnixNano(),
	)
	if err != nil {
		return 0, unavailable("delete", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("delete", err)
	}
	return removed, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}
