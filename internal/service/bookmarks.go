package service

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// BookmarkService serves per-user bookmark listing, creation, and deletion.
type BookmarkService struct {
	backend *sqlite.Backend
}

// NewBookmarkService creates a BookmarkService over the given backend.
func NewBookmarkService(backend *sqlite.Backend) *BookmarkService {
	return &BookmarkService{backend: backend}
}

// List returns one page of the user's bookmarks, newest first, optionally
// scoped to one dataset.
func (s *BookmarkService) List(userID, datasetID string, page, limit int) (*types.BookmarkPage, error) {
	items, total, err := s.backend.Bookmarks().List(userID, datasetID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	if items == nil {
		items = []types.Bookmark{}
	}
	return &types.BookmarkPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Create stores a bookmark for the user on a record. Returns ErrConflict if
// the user already bookmarked that record. The pre-check catches the common
// case; the store's unique index decides races, surfacing as the same
// ErrConflict.
func (s *BookmarkService) Create(userID, datasetID string, recordID int64, note string) (*types.Bookmark, error) {
	_, err := s.backend.Bookmarks().GetByUserAndRecord(userID, recordID)
	if err == nil {
		return nil, types.ErrConflict
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, fmt.Errorf("checking existing bookmark: %w", err)
	}

	bm := &types.Bookmark{
		UserID:    userID,
		DatasetID: datasetID,
		RecordID:  recordID,
		Note:      note,
	}
	if err := s.backend.Bookmarks().Insert(bm); err != nil {
		return nil, err
	}
	return bm, nil
}

// Delete removes a bookmark owned by the user. A bookmark belonging to a
// different user returns ErrNotFound, same as one that does not exist.
func (s *BookmarkService) Delete(userID string, bookmarkID int64) error {
	return s.backend.Bookmarks().Delete(userID, bookmarkID)
}
