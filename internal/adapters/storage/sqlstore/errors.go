package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

const (
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// isForeignKeyViolation reconoce el error de FK de cada driver.
// Postgres y MySQL no distinguen (en código) padre de hijo con la misma
// claridad, así que el repo decide el error de dominio según la operación.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code() == sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		// sin extended result codes llega solo SQLITE_CONSTRAINT
		return liteErr.Code()&0xff == sqlitelib.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "FOREIGN KEY")
	}

	return false
}

// parseID: los ids SQL son enteros; cualquier otra cosa no existe.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
