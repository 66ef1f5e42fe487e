package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// RecordsTable accesses the records of all datasets. Reads are always scoped
// to one dataset through RecordQuery.DatasetID.
type RecordsTable struct {
	backend *Backend
}

// List returns one page of records matching the query, plus the total match
// count before pagination. Page numbering is 1-based; paginating past the
// last page returns an empty slice with the true total.
func (t *RecordsTable) List(q RecordQuery) ([]types.Record, int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, 0, err
	}

	where, whereArgs := wherePredicates(q)

	var total int64
	countSQL := "SELECT COUNT(*) FROM records WHERE " + where
	if err := db.QueryRow(countSQL, whereArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting records: %w", err)
	}

	order, orderArgs := orderClause(q.Sort)
	querySQL := "SELECT id, dataset_id, payload FROM records WHERE " + where +
		" " + order + " LIMIT ? OFFSET ?"
	args := append(append(whereArgs, orderArgs...), q.Limit, (q.Page-1)*q.Limit)

	items, err := scanRecords(db, querySQL, args)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll returns every record matching the query, sorted but unpaginated.
// Used by CSV export and the stats engine.
func (t *RecordsTable) ListAll(q RecordQuery) ([]types.Record, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	where, whereArgs := wherePredicates(q)
	order, orderArgs := orderClause(q.Sort)
	querySQL := "SELECT id, dataset_id, payload FROM records WHERE " + where +
		" " + order
	return scanRecords(db, querySQL, append(whereArgs, orderArgs...))
}

// Get retrieves one record by the compound (dataset, record) key. A record
// that exists under a different dataset is reported as not found.
func (t *RecordsTable) Get(datasetID string, recordID int64) (*types.Record, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var r types.Record
	var payload string
	err = db.QueryRow(
		"SELECT id, dataset_id, payload FROM records WHERE dataset_id = ? AND id = ?",
		datasetID, recordID,
	).Scan(&r.ID, &r.DatasetID, &payload)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record %d: %w", recordID, err)
	}
	r.Payload = json.RawMessage(payload)
	return &r, nil
}

// Insert adds a record to a dataset and returns its generated id.
func (t *RecordsTable) Insert(datasetID string, payload json.RawMessage) (int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		"INSERT INTO records (dataset_id, payload) VALUES (?, ?)",
		datasetID, string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading record id: %w", err)
	}
	return id, nil
}

// scanRecords runs a record SELECT and hydrates the rows.
func scanRecords(db *sql.DB, query string, args []any) ([]types.Record, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var items []types.Record
	for rows.Next() {
		var r types.Record
		var payload string
		if err := rows.Scan(&r.ID, &r.DatasetID, &payload); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Payload = json.RawMessage(payload)
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return items, nil
}
