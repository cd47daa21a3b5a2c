package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return gdb, mock
}

// The retention sweep must remove tasks and participants before the plans
// themselves, all inside one transaction.
func TestDeleteExpiredCancelledRemovesDependentsFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPlanRepository(gdb)

	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "plans" WHERE status = $1 AND canceled_at < $2`)).
		WithArgs("cancelled", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("plan-1").AddRow("plan-2"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tasks" WHERE plan_id IN ($1,$2)`)).
		WithArgs("plan-1", "plan-2").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "participants" WHERE plan_id IN ($1,$2)`)).
		WithArgs("plan-1", "plan-2").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "plans" WHERE id IN ($1,$2)`)).
		WithArgs("plan-1", "plan-2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := repo.DeleteExpiredCancelled(cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredCancelledSkipsDeletesWhenNothingMatches(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPlanRepository(gdb)

	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "plans" WHERE status = $1 AND canceled_at < $2`)).
		WithArgs("cancelled", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	deleted, err := repo.DeleteExpiredCancelled(cutoff)
	require.NoError(t, err)
	require.Zero(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
