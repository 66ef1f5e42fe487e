package sqlite

// Schema DDL for all tables. Statements use IF NOT EXISTS so Attach can run
// against an existing database without clobbering data.
const (
	createDatasets = `CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    row_count INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
);`

	createRecords = `CREATE TABLE IF NOT EXISTS records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
);`

	createDatasetFields = `CREATE TABLE IF NOT EXISTS dataset_fields (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    null_frac REAL NOT NULL,
    distinct_count INTEGER,
    example_value TEXT,
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
);`

	createBookmarks = `CREATE TABLE IF NOT EXISTS bookmarks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    dataset_id TEXT NOT NULL,
    record_id INTEGER NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE,
    FOREIGN KEY (record_id) REFERENCES records(id) ON DELETE CASCADE
);`
)

// Index DDL for common queries. The two UNIQUE indexes carry invariants:
// one field-stat row per (dataset, name), one bookmark per (user, record).
const (
	idxRecordsDataset      = `CREATE INDEX IF NOT EXISTS idx_records_dataset ON records(dataset_id);`
	idxFieldsDatasetName   = `CREATE UNIQUE INDEX IF NOT EXISTS idx_dataset_fields_name ON dataset_fields(dataset_id, name);`
	idxBookmarksUserRecord = `CREATE UNIQUE INDEX IF NOT EXISTS idx_bookmarks_user_record ON bookmarks(user_id, record_id);`
	idxBookmarksUser       = `CREATE INDEX IF NOT EXISTS idx_bookmarks_user ON bookmarks(user_id);`
	idxBookmarksDataset    = `CREATE INDEX IF NOT EXISTS idx_bookmarks_dataset ON bookmarks(dataset_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDatasets,
	createRecords,
	createDatasetFields,
	createBookmarks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRecordsDataset,
	idxFieldsDatasetName,
	idxBookmarksUserRecord,
	idxBookmarksUser,
	idxBookmarksDataset,
}
