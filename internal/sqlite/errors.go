package sqlite

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintCode returns the extended result code of a constraint failure,
// or 0 when err is not one or carries only the primary code.
func constraintCode(err error) int {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return 0
	}
	code := sqlErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT {
		return 0
	}
	return code
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := constraintCode(err); code != 0 {
		return code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// isUniqueViolation also covers duplicate primary keys, which clients see as
// the same conflict.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := constraintCode(err); code != 0 {
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
