package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/cpm"
)

var _ cpm.SessionService = (*SessionService)(nil)

// SessionService stores judge login cookies per host.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// SaveCookies replaces the stored cookies for host in one transaction.
func (s *SessionService) SaveCookies(ctx context.Context, host string, cookies []*cpm.Cookie) error {
	if host == "" {
		return cpm.Errorf(cpm.EINVALID, "session host required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM session_cookies WHERE host = ?", host); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, c := range cookies {
		if c.Name == "" {
			return cpm.Errorf(cpm.EINVALID, "cookie name required")
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO session_cookies (host, name, value, position, saved_at)
			VALUES (?, ?, ?, ?, ?)
		`, host, c.Name, c.Value, i, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindCookies returns the stored cookies for host in the order they were saved.
func (s *SessionService) FindCookies(ctx context.Context, host string) ([]*cpm.Cookie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value FROM session_cookies WHERE host = ? ORDER BY position
	`, host)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cookies := []*cpm.Cookie{}
	for rows.Next() {
		var c cpm.Cookie
		if err := rows.Scan(&c.Name, &c.Value); err != nil {
			return nil, err
		}
		cookies = append(cookies, &c)
	}
	return cookies, rows.Err()
}

// DeleteCookies removes the stored session for host.
// Returns ENOTFOUND if no session is stored.
func (s *SessionService) DeleteCookies(ctx context.Context, host string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM session_cookies WHERE host = ?", host)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return cpm.Errorf(cpm.ENOTFOUND, "no session stored for %s", host)
	}
	return nil
}
