package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"listcmp/internal/config"
	"listcmp/internal/exchange"
)

// ErrInvalidName is returned for blank workspace names.
var ErrInvalidName = errors.New("workspace name must not be empty")

const lockRetryDelay = 25 * time.Millisecond

// Store manages workspace persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Record is one saved workspace.
type Record struct {
	Name      string
	Revision  string
	Document  exchange.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary describes a saved workspace without decoding its document.
type Summary struct {
	Name      string    `json:"name"`
	Revision  string    `json:"revision"`
	Lists     int       `json:"lists"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Open initializes or connects to the workspace database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.StorePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: flock.New(cfg.StoreLockPath())}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// WithLock runs fn while holding the cross-process writer lock. It is not
// reentrant: fn must not call Save, Update, Delete, or WithLock.
func (s *Store) WithLock(ctx context.Context, fn func() error) error {
	ctx = ensureContext(ctx)
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire store lock: %s is held by another process", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

// Save stores doc under name, replacing any workspace with the same name.
func (s *Store) Save(ctx context.Context, name string, doc exchange.Document) (*Record, error) {
	var rec *Record
	err := s.WithLock(ctx, func() error {
		var saveErr error
		rec, saveErr = s.save(ctx, name, doc)
		return saveErr
	})
	return rec, err
}

// Update loads the named workspace, lets fn modify its document, and saves the
// result under the same lock. A missing workspace is reported as (nil, nil)
// when create is false; otherwise fn receives an empty document.
func (s *Store) Update(ctx context.Context, name string, create bool, fn func(*exchange.Document) error) (*Record, error) {
	var rec *Record
	err := s.WithLock(ctx, func() error {
		existing, err := s.Load(ctx, name)
		if err != nil {
			return err
		}
		var doc exchange.Document
		switch {
		case existing != nil:
			doc = existing.Document
		case create:
			doc = exchange.Document{Version: exchange.CurrentVersion}
		default:
			return nil
		}
		if err := fn(&doc); err != nil {
			return err
		}
		rec, err = s.save(ctx, name, doc)
		return err
	})
	return rec, err
}

func (s *Store) save(ctx context.Context, name string, doc exchange.Document) (*Record, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	data, err := exchange.MarshalDocument(doc)
	if err != nil {
		return nil, err
	}
	revision := uuid.NewString()
	now := time.Now().UTC()
	timestamp := formatTime(now)

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO workspaces (name, revision, document_json, list_count, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            revision = excluded.revision,
            document_json = excluded.document_json,
            list_count = excluded.list_count,
            updated_at = excluded.updated_at`,
		name,
		revision,
		string(data),
		len(doc.Lists),
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("save workspace %q: %w", name, err)
	}

	return s.Load(ctx, name)
}

// Load returns the named workspace, or nil when it does not exist.
func (s *Store) Load(ctx context.Context, name string) (*Record, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT name, revision, document_json, created_at, updated_at FROM workspaces WHERE name = ?`,
		name,
	)
	var (
		rec        Record
		documentJS string
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	err = row.Scan(&rec.Name, &rec.Revision, &documentJS, &createdRaw, &updatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workspace %q: %w", name, err)
	}
	rec.Document, err = exchange.UnmarshalDocument([]byte(documentJS))
	if err != nil {
		return nil, fmt.Errorf("load workspace %q: %w", name, err)
	}
	rec.CreatedAt, _ = parseTimeString(createdRaw.String)
	rec.UpdatedAt, _ = parseTimeString(updatedRaw.String)
	return &rec, nil
}

// List returns every saved workspace, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, revision, list_count, created_at, updated_at FROM workspaces
        ORDER BY updated_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			summary    Summary
			createdRaw sql.NullString
			updatedRaw sql.NullString
		)
		if err := rows.Scan(&summary.Name, &summary.Revision, &summary.Lists, &createdRaw, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		summary.CreatedAt, _ = parseTimeString(createdRaw.String)
		summary.UpdatedAt, _ = parseTimeString(updatedRaw.String)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}
	return summaries, nil
}

// Delete removes the named workspace and reports whether it existed.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	name, err := normalizeName(name)
	if err != nil {
		return false, err
	}
	var removed bool
	err = s.WithLock(ctx, func() error {
		res, err := s.execWithRetry(ctx, `DELETE FROM workspaces WHERE name = ?`, name)
		if err != nil {
			return fmt.Errorf("delete workspace %q: %w", name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		removed = affected > 0
		return nil
	})
	return removed, err
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}
