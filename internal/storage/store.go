package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cookies (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	expires_at TIMESTAMP,
	same_site TEXT NOT NULL DEFAULT 'lax'
);
`

// SameSiteLax is the only same-site mode the backend contract uses.
const SameSiteLax = "lax"

type Cookie struct {
	Name      string
	Value     string
	ExpiresAt *time.Time
	SameSite  string
}

// Store is the durable browser-profile analog: a key/value area shared by
// the whole client (localStorage) and a cookie area with expiry semantics.
// Writes are last-writer-wins; database/sql serializes concurrent access.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetItem(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *Store) SetItem(key string, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key,
		value,
	)
	return err
}

func (s *Store) RemoveItem(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

// SetCookie writes a cookie record. maxAge == 0 means a session-scoped
// cookie with no expiry.
func (s *Store) SetCookie(name string, value string, maxAge time.Duration, sameSite string) error {
	var expiresAt *time.Time
	if maxAge > 0 {
		t := time.Now().Add(maxAge)
		expiresAt = &t
	}
	_, err := s.db.Exec(
		`INSERT INTO cookies(name, value, expires_at, same_site) VALUES(?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, same_site = excluded.same_site`,
		name,
		value,
		expiresAt,
		sameSite,
	)
	return err
}

// GetCookie returns the cookie value if present and unexpired. Expired
// rows are treated as misses and removed lazily.
func (s *Store) GetCookie(name string) (string, bool) {
	var (
		value     string
		expiresAt *time.Time
	)
	err := s.db.QueryRow("SELECT value, expires_at FROM cookies WHERE name = ?", name).Scan(&value, &expiresAt)
	if err != nil {
		return "", false
	}

	if expiresAt != nil && expiresAt.Before(time.Now()) {
		_ = s.RemoveCookie(name)
		return "", false
	}

	return value, true
}

func (s *Store) RemoveCookie(name string) error {
	_, err := s.db.Exec("DELETE FROM cookies WHERE name = ?", name)
	return err
}

// Cookies returns all unexpired cookies.
func (s *Store) Cookies() ([]Cookie, error) {
	rows, err := s.db.Query("SELECT name, value, expires_at, same_site FROM cookies")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var cookies []Cookie
	for rows.Next() {
		var c Cookie
		if err := rows.Scan(&c.Name, &c.Value, &c.ExpiresAt, &c.SameSite); err != nil {
			return nil, err
		}
		if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
			continue
		}
		cookies = append(cookies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cookies, nil
}
