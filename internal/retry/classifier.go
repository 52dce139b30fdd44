package retry

import (
	"context"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteClassifier treats lock contention on a SQLite database as transient.
// Everything else, including context cancellation, is fatal.
type SQLiteClassifier struct{}

// NewSQLiteClassifier creates a new SQLite error classifier.
func NewSQLiteClassifier() *SQLiteClassifier {
	return &SQLiteClassifier{}
}

// IsTransient reports whether err is SQLITE_BUSY or SQLITE_LOCKED.
func (c *SQLiteClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// extended result codes carry the primary code in the low byte
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}
