package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

const transitionSQL = `UPDATE "candidates" SET "quiz_score"=\$1,"status"=\$2,"updated_at"=\$3 WHERE quiz_token = \$4 AND status = \$5`

func TestTransitionStatus_ConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCandidateRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(transitionSQL).
		WithArgs(80.0, "SELECTED", sqlmock.AnyArg(), "tok", "SHORTLISTED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// the row is no longer SHORTLISTED, so the same update matches nothing
	mock.ExpectBegin()
	mock.ExpectExec(transitionSQL).
		WithArgs(100.0, "SELECTED", sqlmock.AnyArg(), "tok", "SHORTLISTED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	changed, err := repo.TransitionStatus(context.Background(), "tok", lifecycle.StatusShortlisted, lifecycle.StatusSelected, 80)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.TransitionStatus(context.Background(), "tok", lifecycle.StatusShortlisted, lifecycle.StatusSelected, 100)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus_DisallowedSkipsDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCandidateRepository(db)

	changed, err := repo.TransitionStatus(context.Background(), "tok", lifecycle.StatusSelected, lifecycle.StatusRejected, 0)
	assert.Error(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordHash_OnlyWhileShortlisted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCandidateRepository(db)
	id := uuid.New()

	updateSQL := `UPDATE "candidates" SET "password_hash"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`
	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs("hash-1", sqlmock.AnyArg(), id.String(), "SHORTLISTED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(updateSQL).
		WithArgs("hash-2", sqlmock.AnyArg(), id.String(), "SHORTLISTED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	updated, err := repo.UpdatePasswordHash(context.Background(), id, "hash-1")
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.UpdatePasswordHash(context.Background(), id, "hash-2")
	require.NoError(t, err)
	assert.False(t, updated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRecruiter_CountAndPageUseSameFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCandidateRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "candidates" WHERE recruiter_email = \$1 AND status = \$2$`).
		WithArgs("hr@acme.io", "SELECTED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT \* FROM "candidates" WHERE recruiter_email = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("hr@acme.io", "SELECTED", 2, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "candidate_name", "email", "status"}).
			AddRow(uuid.New().String(), "Ana", "ana@x.com", "SELECTED").
			AddRow(uuid.New().String(), "Bob", "bob@x.com", "SELECTED"))

	got, total, err := repo.ListByRecruiter(context.Background(), "HR@acme.io", lifecycle.StatusSelected, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].CandidateName)
	assert.Equal(t, lifecycle.StatusSelected, got[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
