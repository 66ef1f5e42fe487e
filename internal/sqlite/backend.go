// Package sqlite implements the SQLite storage backend for DataScope:
// schema management, typed table accessors, and the dynamic record query
// builder used by listing, export, and stats.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// dbFileName is the SQLite database file created under DataDir.
const dbFileName = "datascope.db"

// Backend wraps a SQLite database and exposes typed table accessors.
// One Backend is shared by all services; database/sql handles pooling.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	datasets  *DatasetsTable
	records   *RecordsTable
	bookmarks *BookmarksTable
}

// NewBackend creates an unattached backend; call Attach with a Config to
// open the database and initialize the schema.
func NewBackend() *Backend {
	b := &Backend{}
	b.datasets = &DatasetsTable{backend: b}
	b.records = &RecordsTable{backend: b}
	b.bookmarks = &BookmarksTable{backend: b}
	return b
}

// Attach opens (or creates) the database under config.DataDir and applies
// the schema. Returns ErrAlreadyAttached if called twice without Detach.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// foreign_keys must be set per connection; the DSN pragma applies it to
	// every pooled connection.
	dsn := "file:" + filepath.Join(dataDir, dbFileName) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying indexes: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent: detaching an unattached backend
// is a no-op.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// handle returns the database handle, or ErrDetached when unattached.
// Every table operation acquires the handle through here.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// Datasets returns the datasets table accessor.
func (b *Backend) Datasets() *DatasetsTable { return b.datasets }

// Records returns the records table accessor.
func (b *Backend) Records() *RecordsTable { return b.records }

// Bookmarks returns the bookmarks table accessor.
func (b *Backend) Bookmarks() *BookmarksTable { return b.bookmarks }
