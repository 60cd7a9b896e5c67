// Package sqlite provides the SQLite-backed acronym repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/acrobot/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/acrobot/internal/services/acronym/storage"
	"github.com/louisbranch/acrobot/internal/services/acronym/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists acronym entries in SQLite with a synchronized FTS5 index.
//
// The acronyms_fts virtual table mirrors the acronyms table through insert and
// delete triggers, so every committed pair row is visible to Search and
// nothing else is. Exact lookups never touch the index.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite acronym store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// session acquires a dedicated connection for the lifetime of one operation.
// Callers must close it on every exit path.
func (s *Store) session(ctx context.Context) (*sql.Conn, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	conn, err := s.sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

// Get returns the full value set stored under key, in insertion order.
func (s *Store) Get(ctx context.Context, key string) (storage.Result, error) {
	conn, err := s.session(ctx)
	if err != nil {
		return storage.Result{}, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(
		ctx,
		`SELECT value FROM acronyms WHERE key = ? ORDER BY id ASC`,
		key,
	)
	if err != nil {
		return storage.Result{}, fmt.Errorf("get %q: %w", key, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return storage.Result{}, fmt.Errorf("get %q: %w", key, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return storage.Result{}, fmt.Errorf("get %q: %w", key, err)
	}
	if len(values) == 0 {
		return storage.Result{Status: storage.StatusNoKey, Values: values}, nil
	}
	return storage.Result{Status: storage.StatusOK, Values: values}, nil
}

// ListKeys returns a random sample of at most SampleLimit distinct keys.
func (s *Store) ListKeys(ctx context.Context) (storage.Result, error) {
	conn, err := s.session(ctx)
	if err != nil {
		return storage.Result{}, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(
		ctx,
		`SELECT DISTINCT key FROM acronyms ORDER BY RANDOM() LIMIT ?`,
		storage.SampleLimit,
	)
	if err != nil {
		return storage.Result{}, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return storage.Result{}, fmt.Errorf("list keys: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return storage.Result{}, fmt.Errorf("list keys: %w", err)
	}
	return storage.Result{Status: storage.StatusOK, Values: keys}, nil
}

// Search returns at most SampleLimit distinct keys whose key or values match
// term, ranked best-first by bm25. The FTS tokenizer folds case, so matching
// is case-insensitive; the prefix star lets partial words match too.
func (s *Store) Search(ctx context.Context, term string) (storage.Result, error) {
	match := ftsMatchQuery(term)
	if match == "" {
		return storage.Result{Status: storage.StatusNoKey, Values: []string{}}, nil
	}

	conn, err := s.session(ctx)
	if err != nil {
		return storage.Result{}, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(
		ctx,
		`SELECT a.key
		   FROM acronyms_fts fts
		   JOIN acronyms a ON a.id = fts.rowid
		  WHERE acronyms_fts MATCH ?
		  GROUP BY a.key
		  ORDER BY min(fts.rank) ASC, a.key ASC
		  LIMIT ?`,
		match,
		storage.SampleLimit,
	)
	if err != nil {
		return storage.Result{}, fmt.Errorf("search %q: %w", term, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return storage.Result{}, fmt.Errorf("search %q: %w", term, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return storage.Result{}, fmt.Errorf("search %q: %w", term, err)
	}
	if len(keys) == 0 {
		return storage.Result{Status: storage.StatusNoKey, Values: keys}, nil
	}
	return storage.Result{Status: storage.StatusOK, Values: keys}, nil
}

// Add stores the values not already present for key. The insert runs as a
// single transaction of INSERT OR IGNORE statements, so the set-merge is
// atomic at the store level and two concurrent Adds cannot lose each other's
// values. Re-adding present values is an idempotent success.
func (s *Store) Add(ctx context.Context, key string, values []string) (storage.Result, error) {
	candidates := distinct(values)
	if len(candidates) == 0 {
		return storage.Result{Status: storage.StatusNoValues}, nil
	}

	conn, err := s.session(ctx)
	if err != nil {
		return storage.Result{}, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return storage.Result{}, fmt.Errorf("add %q: begin: %w", key, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().UnixMilli()
	for _, value := range candidates {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO acronyms (key, value, created_at) VALUES (?, ?, ?)`,
			key, value, now,
		); err != nil {
			return storage.Result{}, fmt.Errorf("add %q: insert: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storage.Result{}, fmt.Errorf("add %q: commit: %w", key, err)
	}
	return storage.Result{Status: storage.StatusOK}, nil
}

// Remove deletes the given values for key, all or nothing. The existing set
// is read inside the same transaction as the delete, so a partial removal can
// never be observed: either every requested value was present and all of them
// go, or nothing changes.
func (s *Store) Remove(ctx context.Context, key string, values []string) (storage.Result, error) {
	requested := distinct(values)
	if len(requested) == 0 {
		return storage.Result{Status: storage.StatusNoValues}, nil
	}

	conn, err := s.session(ctx)
	if err != nil {
		return storage.Result{}, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return storage.Result{}, fmt.Errorf("remove %q: begin: %w", key, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT value FROM acronyms WHERE key = ?`, key)
	if err != nil {
		return storage.Result{}, fmt.Errorf("remove %q: read: %w", key, err)
	}
	existing := map[string]bool{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			rows.Close()
			return storage.Result{}, fmt.Errorf("remove %q: read: %w", key, err)
		}
		existing[value] = true
	}
	if err := rows.Close(); err != nil {
		return storage.Result{}, fmt.Errorf("remove %q: read: %w", key, err)
	}
	if err := rows.Err(); err != nil {
		return storage.Result{}, fmt.Errorf("remove %q: read: %w", key, err)
	}

	if len(existing) == 0 {
		return storage.Result{Status: storage.StatusNoKey}, nil
	}
	for _, value := range requested {
		if !existing[value] {
			return storage.Result{Status: storage.StatusNoValues}, nil
		}
	}

	placeholders := strings.Repeat("?, ", len(requested)-1) + "?"
	args := make([]any, 0, len(requested)+1)
	args = append(args, key)
	for _, value := range requested {
		args = append(args, value)
	}
	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM acronyms WHERE key = ? AND value IN (`+placeholders+`)`,
		args...,
	); err != nil {
		return storage.Result{}, fmt.Errorf("remove %q: delete: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return storage.Result{}, fmt.Errorf("remove %q: commit: %w", key, err)
	}
	return storage.Result{Status: storage.StatusOK}, nil
}

// Delete removes every value stored under key.
func (s *Store) Delete(ctx context.Context, key string) (storage.Result, error) {
	conn, err := s.session(ctx)
	if err != nil {
		return storage.Result{}, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `DELETE FROM acronyms WHERE key = ?`, key)
	if err != nil {
		return storage.Result{}, fmt.Errorf("delete %q: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storage.Result{}, fmt.Errorf("delete %q: %w", key, err)
	}
	if affected == 0 {
		return storage.Result{Status: storage.StatusNoKey}, nil
	}
	return storage.Result{Status: storage.StatusOK}, nil
}

// distinct drops duplicates and empty strings, preserving first-seen order.
func distinct(values []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}

// ftsMatchQuery turns free text into an FTS5 prefix query, quoting each word
// so user input cannot inject MATCH syntax.
func ftsMatchQuery(term string) string {
	words := strings.Fields(strings.ToLower(term))
	for i, word := range words {
		word = strings.ReplaceAll(word, `"`, `""`)
		words[i] = `"` + word + `"*`
	}
	return strings.Join(words, " ")
}

var _ storage.Repository = (*Store)(nil)
