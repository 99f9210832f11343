package utils

import (
	"database/sql"
	"errors"
)

// IsSQLNoRowsError reports whether err is a no-rows result.
func IsSQLNoRowsError(err error) bool {
	return err != nil && (errors.Is(err, sql.ErrNoRows) || err.Error() == "sql: no rows in result set")
}
