package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))

	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicateKey(fmt.Errorf("tx: %w", &pq.Error{Code: "23505"})))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: siswa.nipd")))
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "uq_siswa_nipd"`)))

	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503", Message: "fk"}))
}

func TestSQLState(t *testing.T) {
	assert.Equal(t, "23503", SQLState(&pgconn.PgError{Code: "23503"}))
	assert.Equal(t, "23505", SQLState(&pq.Error{Code: "23505"}))
	assert.Equal(t, "", SQLState(errors.New("x")))
}
