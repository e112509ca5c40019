// file: internals/helpers/db_error.go
package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE unique_violation
const SQLStateUniqueViolation = "23505"

// SQLState mengambil kode SQLSTATE dari error driver (pgx / lib/pq). "" jika bukan error PG.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsDuplicateKey: pelanggaran unique index di postgres maupun sqlite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	// TranslateError: true di gorm.Config
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if SQLState(err) == SQLStateUniqueViolation {
		return true
	}
	// fallback substring (driver lain / error terbungkus string)
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
