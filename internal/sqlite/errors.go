package sqlite

import (
	"database/sql"
	"errors"
	"strings"
)

// errorIsNoRows reports whether err is, or wraps, sql.ErrNoRows.
func errorIsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The modernc driver exposes no stable sentinel for constraint
// errors, so this matches the message SQLite itself produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
