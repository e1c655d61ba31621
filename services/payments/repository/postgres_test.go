package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/services/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{
	"payment_id", "user_id", "status", "created_at", "completed_at", "txid", "ledger_snapshot",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func TestPostgresRepo_CreatePayment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)
	record := newApprovedRecord("P1")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_records")).
		WithArgs("P1", "U1", "approved", record.CreatedAt, []byte(record.LedgerSnapshot)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreatePayment(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_CreatePaymentConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (payment_id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CreatePayment(context.Background(), newApprovedRecord("P1"))
	assert.ErrorIs(t, err, payments.ErrRecordExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_GetPayment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	completed := created.Add(5 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payment_id, user_id, status")).
		WithArgs("P1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("P1", "U1", "completed", created, completed, "T1", []byte(`{"identifier":"P1"}`)))

	got, err := repo.GetPayment(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, got.Status)
	assert.Equal(t, "T1", got.TxID)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completed.Equal(*got.CompletedAt))
	assert.JSONEq(t, `{"identifier":"P1"}`, string(got.LedgerSnapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_GetPaymentApprovedHasNoCompletion(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payment_id, user_id, status")).
		WithArgs("P1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("P1", "U1", "approved", time.Now(), nil, nil, nil))

	got, err := repo.GetPayment(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Empty(t, got.TxID)
}

func TestPostgresRepo_GetPaymentNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payment_id, user_id, status")).
		WithArgs("P2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPayment(context.Background(), "P2")
	assert.ErrorIs(t, err, payments.ErrRecordNotFound)
}

func TestPostgresRepo_MarkCompleted(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)
	at := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payment_records")).
		WithArgs("completed", "T1", at, "P1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("P1", "U1", "completed", at.Add(-time.Minute), at, "T1", nil))

	got, err := repo.MarkCompleted(context.Background(), "P1", "T1", at)
	require.NoError(t, err)
	assert.Equal(t, "U1", got.UserID)
	assert.True(t, got.IsCompleted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_MarkCompletedMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payment_records")).
		WillReturnRows(sqlmock.NewRows(recordColumns))

	_, err := repo.MarkCompleted(context.Background(), "P9", "T9", time.Now())
	assert.ErrorIs(t, err, payments.ErrRecordNotFound)
}

func TestPostgresRepo_ExecError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_records")).
		WillReturnError(assert.AnError)

	err := repo.CreatePayment(context.Background(), newApprovedRecord("P1"))
	assert.ErrorIs(t, err, assert.AnError)
}
