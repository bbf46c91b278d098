// Package sqlite reads abstracts from, and writes paper IDs to, a SQLite
// snapshot of the conference-management database.
//
// A Snapshot is a scoped resource: the caller attaches it, uses it and must
// Detach it on every exit path. The allocator never holds a Snapshot.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// Snapshot lifecycle errors.
var (
	ErrDetached        = errors.New("snapshot is detached")
	ErrAlreadyAttached = errors.New("snapshot is already attached")
	ErrSnapshotMissing = errors.New("snapshot database does not exist")
)

// Snapshot is a handle on one snapshot database file.
type Snapshot struct {
	mu       sync.RWMutex
	attached bool
	path     string
	db       *sql.DB
}

// NewSnapshot creates a detached Snapshot. Call Attach or Create before use.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Attach opens the snapshot named by config.Database. The file must exist;
// Attach never creates an empty snapshot. Returns ErrAlreadyAttached if
// already attached.
func (s *Snapshot) Attach(ctx context.Context, config types.Config) error {
	if _, err := os.Stat(config.Database); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSnapshotMissing, config.Database)
		}
		return fmt.Errorf("stat snapshot: %w", err)
	}
	return s.open(ctx, config)
}

// Create opens the snapshot named by config.Database, creating the file,
// its parent directory and any missing tables.
func (s *Snapshot) Create(ctx context.Context, config types.Config) error {
	if dir := filepath.Dir(config.Database); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := s.open(ctx, config); err != nil {
		return err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Detach()
		return err
	}
	return nil
}

func (s *Snapshot) open(ctx context.Context, config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", config.Database)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping snapshot: %w", err)
	}

	s.db = db
	s.path = config.Database
	s.attached = true
	return nil
}

// Detach closes the database. Detach is idempotent.
func (s *Snapshot) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	s.attached = false
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		if err != nil {
			return fmt.Errorf("close snapshot: %w", err)
		}
	}
	return nil
}

// Path returns the snapshot file path.
func (s *Snapshot) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// EnsureSchema creates any missing tables and indexes.
func (s *Snapshot) EnsureSchema(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (s *Snapshot) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, ErrDetached
	}
	return s.db, nil
}
