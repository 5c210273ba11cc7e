package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/wishwall-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS wishes (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	message         TEXT NOT NULL,
	password_digest TEXT NOT NULL,
	created_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wishes_created ON wishes(created_at DESC);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and bootstraps the schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewWithSetup creates a new SQLite store and runs a setup function in
// place of the default schema. Useful for tests.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListAll returns every wish, newest first.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]*store.Wish, error) {
	query := `
		SELECT id, name, message, password_digest, created_at
		FROM wishes
		ORDER BY created_at DESC, rowid DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	defer rows.Close()

	wishes := make([]*store.Wish, 0)
	for rows.Next() {
		var w store.Wish
		if err := rows.Scan(&w.ID, &w.Name, &w.Message, &w.PasswordDigest, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		wishes = append(wishes, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishes: %w", err)
	}

	return wishes, nil
}

// Insert persists a new wish. Returns store.ErrConflict if the id is taken.
func (s *SQLiteStore) Insert(ctx context.Context, wish *store.Wish) error {
	query := `
		INSERT INTO wishes (id, name, message, password_digest, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, wish.ID, wish.Name, wish.Message, wish.PasswordDigest, wish.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return store.ErrConflict
		}
		return fmt.Errorf("insert wish: %w", err)
	}

	return nil
}

// FindByID retrieves a wish by id. Returns store.ErrNotFound if absent.
func (s *SQLiteStore) FindByID(ctx context.Context, id string) (*store.Wish, error) {
	query := `
		SELECT id, name, message, password_digest, created_at
		FROM wishes
		WHERE id = ?
	`
	var w store.Wish
	err := s.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.Message, &w.PasswordDigest, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find wish: %w", err)
	}

	return &w, nil
}

// DeleteByID removes a wish by id. Returns store.ErrNotFound if no row
// was deleted, so of two racing deletes exactly one reports success.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM wishes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wish rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return nil
}
