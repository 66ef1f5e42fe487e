package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// DatasetsTable accesses datasets and their cached field statistics.
type DatasetsTable struct {
	backend *Backend
}

// timeFormat is the timestamp encoding for all TEXT time columns.
// Nanosecond precision keeps created_at ordering meaningful when several
// rows are written within the same second.
const timeFormat = time.RFC3339Nano

// List returns one page of datasets, newest first by updated_at, optionally
// narrowed to names containing search (case-insensitive for ASCII).
func (t *DatasetsTable) List(search string, page, limit int) ([]types.Dataset, int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, 0, err
	}

	where := "1=1"
	var args []any
	if search != "" {
		where = "name LIKE '%' || ? || '%'"
		args = append(args, search)
	}

	var total int64
	if err := db.QueryRow("SELECT COUNT(*) FROM datasets WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting datasets: %w", err)
	}

	query := "SELECT id, name, description, row_count, updated_at FROM datasets WHERE " +
		where + " ORDER BY updated_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var items []types.Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating datasets: %w", err)
	}
	return items, total, nil
}

// All returns every dataset ordered by name. Used by the stats CLI.
func (t *DatasetsTable) All() ([]types.Dataset, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT id, name, description, row_count, updated_at FROM datasets ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var items []types.Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating datasets: %w", err)
	}
	return items, nil
}

// Get retrieves a dataset by id. Returns ErrNotFound when absent.
func (t *DatasetsTable) Get(id string) (*types.Dataset, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(
		"SELECT id, name, description, row_count, updated_at FROM datasets WHERE id = ?", id)
	return scanDatasetRow(row, id)
}

// GetByName retrieves a dataset by its unique name.
func (t *DatasetsTable) GetByName(name string) (*types.Dataset, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(
		"SELECT id, name, description, row_count, updated_at FROM datasets WHERE name = ?", name)
	return scanDatasetRow(row, name)
}

// Insert creates a dataset with a generated UUID and returns it.
func (t *DatasetsTable) Insert(name, description string) (*types.Dataset, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	d := types.Dataset{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}
	_, err = db.Exec(
		"INSERT INTO datasets (id, name, description, row_count, updated_at) VALUES (?, ?, ?, 0, ?)",
		d.ID, d.Name, d.Description, d.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting dataset %s: %w", name, err)
	}
	return &d, nil
}

// Fields returns the cached field statistics for a dataset, ordered by name.
func (t *DatasetsTable) Fields(datasetID string) ([]types.DatasetField, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT id, dataset_id, name, type, null_frac, distinct_count, example_value
		 FROM dataset_fields WHERE dataset_id = ? ORDER BY name ASC`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("querying dataset fields: %w", err)
	}
	defer rows.Close()

	var fields []types.DatasetField
	for rows.Next() {
		var f types.DatasetField
		var distinct sql.NullInt64
		var example sql.NullString
		if err := rows.Scan(&f.ID, &f.DatasetID, &f.Name, &f.Type, &f.NullFrac, &distinct, &example); err != nil {
			return nil, fmt.Errorf("scanning dataset field: %w", err)
		}
		f.DistinctCount = distinct.Int64
		if example.Valid {
			f.ExampleValue = json.RawMessage(example.String)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dataset fields: %w", err)
	}
	return fields, nil
}

// ReplaceFieldStats atomically replaces a dataset's field statistics and
// updates its cached row count. The delete-then-insert runs in one
// transaction; concurrent recomputes of the same dataset must be serialized
// by the caller.
func (t *DatasetsTable) ReplaceFieldStats(datasetID string, rowCount int64, fields []types.DatasetField) error {
	db, err := t.backend.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning stats transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE datasets SET row_count = ?, updated_at = ? WHERE id = ?",
		rowCount, time.Now().UTC().Format(timeFormat), datasetID,
	)
	if err != nil {
		return fmt.Errorf("updating dataset row count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking dataset update: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM dataset_fields WHERE dataset_id = ?", datasetID); err != nil {
		return fmt.Errorf("clearing dataset fields: %w", err)
	}

	for _, f := range fields {
		var example any
		if f.ExampleValue != nil {
			example = string(f.ExampleValue)
		}
		_, err := tx.Exec(
			`INSERT INTO dataset_fields (dataset_id, name, type, null_frac, distinct_count, example_value)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			datasetID, f.Name, f.Type, f.NullFrac, f.DistinctCount, example,
		)
		if err != nil {
			return fmt.Errorf("inserting field stats for %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stats: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(s rowScanner) (*types.Dataset, error) {
	var d types.Dataset
	var updatedAt string
	if err := s.Scan(&d.ID, &d.Name, &d.Description, &d.RowCount, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning dataset: %w", err)
	}
	ts, err := time.Parse(timeFormat, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset timestamp: %w", err)
	}
	d.UpdatedAt = ts
	return &d, nil
}

func scanDatasetRow(row *sql.Row, key string) (*types.Dataset, error) {
	d, err := scanDataset(row)
	if err != nil {
		if errorIsNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting dataset %s: %w", key, err)
	}
	return d, nil
}
