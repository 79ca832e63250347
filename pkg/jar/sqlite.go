package jar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go).

	"github.com/dmitrymomot/flashkit/pkg/cookie"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS cookies (
	name         TEXT    NOT NULL,
	path         TEXT    NOT NULL,
	value        TEXT    NOT NULL,
	expires_utc  INTEGER NOT NULL DEFAULT 0,
	creation_utc INTEGER NOT NULL,
	PRIMARY KEY (name, path)
)`

// SQLite is a jar persisted in a SQLite database, so cookies outlive the
// process the way a browser profile's cookie store does.
//
// The Jar methods run with a background context and remember the last
// failure in Err; use CookieContext and SetCookieContext to handle errors
// directly.
type SQLite struct {
	db      *sql.DB
	now     func() time.Time
	docPath string
	err     error
	mu      sync.Mutex
}

// OpenSQLite opens (and creates if needed) the cookie store at dsn.
// Use "file::memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, dsn string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpen, err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writes.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpen, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrSchema, err)
	}

	o := newOptions(opts...)
	return &SQLite{db: db, now: o.now, docPath: o.docPath}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Healthcheck pings the database.
func (s *SQLite) Healthcheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Err returns the last error from Cookie or SetCookie, if any.
func (s *SQLite) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cookie returns the visible cookies as "a=1; b=2".
// On failure it returns "" and records the error for Err.
func (s *SQLite) Cookie() string {
	v, err := s.CookieContext(context.Background())
	s.record(err)
	return v
}

// SetCookie applies one assignment, recording any failure for Err.
func (s *SQLite) SetCookie(assignment string) {
	s.record(s.SetCookieContext(context.Background(), assignment))
}

// CookieContext returns the cookies visible on the document path, longer
// paths first, then by creation time.
func (s *SQLite) CookieContext(ctx context.Context) (string, error) {
	now := s.now()
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value, path FROM cookies
		WHERE expires_utc = 0 OR expires_utc > ?
		ORDER BY length(path) DESC, creation_utc ASC, rowid ASC`,
		now.UnixNano(),
	)
	if err != nil {
		return "", errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var name, value, path string
		if err := rows.Scan(&name, &value, &path); err != nil {
			return "", errors.Join(ErrQuery, err)
		}
		if pathMatches(s.docPath, path) {
			parts = append(parts, name+"="+value)
		}
	}
	if err := rows.Err(); err != nil {
		return "", errors.Join(ErrQuery, err)
	}
	return strings.Join(parts, "; "), nil
}

// SetCookieContext stores or deletes the cookie named by assignment.
// Malformed assignments are ignored, as a browser would.
func (s *SQLite) SetCookieContext(ctx context.Context, assignment string) error {
	a, err := cookie.ParseAssignment(assignment)
	if err != nil {
		return nil
	}

	now := s.now()
	path := a.Path
	if path == "" || path[0] != '/' {
		path = defaultPath(s.docPath)
	}

	if a.Expired(now) {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM cookies WHERE name = ? AND path = ?`, a.Name, path); err != nil {
			return fmt.Errorf("delete cookie %q: %w", a.Name, errors.Join(ErrQuery, err))
		}
		return nil
	}

	var expires int64
	if t := expiresAt(a, now); t != nil {
		expires = t.UnixNano()
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO cookies (name, path, value, expires_utc, creation_utc)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name, path) DO UPDATE SET
			value = excluded.value,
			expires_utc = excluded.expires_utc`,
		a.Name, path, a.Value, expires, now.UnixNano(),
	); err != nil {
		return fmt.Errorf("store cookie %q: %w", a.Name, errors.Join(ErrQuery, err))
	}
	return nil
}

// Purge deletes expired cookies and returns how many were removed.
func (s *SQLite) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cookies WHERE expires_utc != 0 AND expires_utc <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	return res.RowsAffected()
}

func (s *SQLite) record(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
