package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// BookmarksTable accesses per-user record bookmarks.
type BookmarksTable struct {
	backend *Backend
}

// List returns one page of a user's bookmarks, newest first, optionally
// narrowed to one dataset.
func (t *BookmarksTable) List(userID, datasetID string, page, limit int) ([]types.Bookmark, int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, 0, err
	}

	where := "user_id = ?"
	args := []any{userID}
	if datasetID != "" {
		where += " AND dataset_id = ?"
		args = append(args, datasetID)
	}

	var total int64
	if err := db.QueryRow("SELECT COUNT(*) FROM bookmarks WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting bookmarks: %w", err)
	}

	query := "SELECT id, user_id, dataset_id, record_id, note, created_at FROM bookmarks WHERE " +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	var items []types.Bookmark
	for rows.Next() {
		var b types.Bookmark
		var createdAt string
		if err := rows.Scan(&b.ID, &b.UserID, &b.DatasetID, &b.RecordID, &b.Note, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scanning bookmark: %w", err)
		}
		ts, err := time.Parse(timeFormat, createdAt)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing bookmark timestamp: %w", err)
		}
		b.CreatedAt = ts
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating bookmarks: %w", err)
	}
	return items, total, nil
}

// GetByUserAndRecord retrieves the bookmark a user holds on a record, if any.
func (t *BookmarksTable) GetByUserAndRecord(userID string, recordID int64) (*types.Bookmark, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var b types.Bookmark
	var createdAt string
	err = db.QueryRow(
		"SELECT id, user_id, dataset_id, record_id, note, created_at FROM bookmarks WHERE user_id = ? AND record_id = ?",
		userID, recordID,
	).Scan(&b.ID, &b.UserID, &b.DatasetID, &b.RecordID, &b.Note, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting bookmark for record %d: %w", recordID, err)
	}
	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing bookmark timestamp: %w", err)
	}
	b.CreatedAt = ts
	return &b, nil
}

// Insert stores a new bookmark, filling its ID and CreatedAt. A duplicate
// (user, record) pair returns ErrConflict: the unique index is the authority
// when two inserts race past the service-level pre-check.
func (t *BookmarksTable) Insert(b *types.Bookmark) error {
	db, err := t.backend.handle()
	if err != nil {
		return err
	}

	b.CreatedAt = time.Now().UTC()
	res, err := db.Exec(
		"INSERT INTO bookmarks (user_id, dataset_id, record_id, note, created_at) VALUES (?, ?, ?, ?, ?)",
		b.UserID, b.DatasetID, b.RecordID, b.Note, b.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.ErrConflict
		}
		return fmt.Errorf("inserting bookmark: %w", err)
	}
	b.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading bookmark id: %w", err)
	}
	return nil
}

// Delete removes a bookmark owned by the given user. A bookmark held by a
// different user is indistinguishable from an absent one: both return
// ErrNotFound.
func (t *BookmarksTable) Delete(userID string, bookmarkID int64) error {
	db, err := t.backend.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM bookmarks WHERE id = ? AND user_id = ?", bookmarkID, userID)
	if err != nil {
		return fmt.Errorf("deleting bookmark %d: %w", bookmarkID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking bookmark deletion: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}
