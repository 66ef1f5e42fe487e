package types

import "time"

// Bookmark marks a record for one user with an optional note. At most one
// bookmark may exist per (user, record); the store enforces this with a
// unique index.
type Bookmark struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	DatasetID string    `json:"dataset_id"`
	RecordID  int64     `json:"record_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// BookmarkPage is a page of bookmarks with the total match count.
type BookmarkPage struct {
	Items []Bookmark `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
}
