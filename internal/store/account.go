package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrDuplicateUsername is returned when the username is already registered.
var ErrDuplicateUsername = errors.New("store: username already registered")

const accountColumns = `id, username, phone, password_hash, name, avatar, status, last_seen_at, created_at`

// CreateAccount inserts a new account. CreatedAt is set when zero.
func (db *DB) CreateAccount(a *Account) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().UnixMilli()
	}
	if a.Status == "" {
		a.Status = "offline"
	}
	_, err := db.Exec(`
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.Phone, a.PasswordHash, a.Name, a.Avatar, a.Status, a.LastSeenAt, a.CreatedAt)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %s", ErrDuplicateUsername, a.Username)
	}
	return err
}

// GetAccount returns an account by id, or nil if it does not exist.
func (db *DB) GetAccount(id string) (*Account, error) {
	return db.scanAccount(db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

// GetAccountByUsername returns an account by username (case-insensitive), or nil.
func (db *DB) GetAccountByUsername(username string) (*Account, error) {
	return db.scanAccount(db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username))
}

func (db *DB) scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Username, &a.Phone, &a.PasswordHash, &a.Name, &a.Avatar, &a.Status, &a.LastSeenAt, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SearchAccounts matches query against username, name and phone (LIKE is
// case-insensitive for ASCII in SQLite). Exact
// username matches rank first, then prefix matches, then the rest by name.
func (db *DB) SearchAccounts(query string, limit int) ([]Account, error) {
	if limit <= 0 {
		limit = 20
	}
	query = strings.TrimSpace(query)
	like := "%" + escapeLike(query) + "%"
	prefix := escapeLike(query) + "%"

	rows, err := db.Query(`
		SELECT `+accountColumns+`
		FROM accounts
		WHERE username LIKE ? ESCAPE '\'
		   OR name LIKE ? ESCAPE '\'
		   OR phone LIKE ? ESCAPE '\'
		ORDER BY
			CASE
				WHEN username = ? COLLATE NOCASE THEN 0
				WHEN username LIKE ? ESCAPE '\' THEN 1
				ELSE 2
			END,
			COALESCE(NULLIF(name, ''), username) COLLATE NOCASE
		LIMIT ?`,
		like, like, like, query, prefix, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Phone, &a.PasswordHash, &a.Name, &a.Avatar, &a.Status, &a.LastSeenAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AccountCount returns the number of registered accounts.
func (db *DB) AccountCount() (int64, error) {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
