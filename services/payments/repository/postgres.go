package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/services/payments"
)

// PostgresRepo stores payment records in the payment_records table
type PostgresRepo struct {
	db *sqlx.DB
}

var _ payments.PaymentRepo = (*PostgresRepo)(nil)

// NewPostgresRepository creates a postgres-backed store
func NewPostgresRepository(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

type paymentRow struct {
	PaymentID      string         `db:"payment_id"`
	UserID         string         `db:"user_id"`
	Status         string         `db:"status"`
	CreatedAt      time.Time      `db:"created_at"`
	CompletedAt    sql.NullTime   `db:"completed_at"`
	TxID           sql.NullString `db:"txid"`
	LedgerSnapshot []byte         `db:"ledger_snapshot"`
}

func (row paymentRow) toModel() *models.PaymentRecord {
	record := &models.PaymentRecord{
		PaymentID:      row.PaymentID,
		UserID:         row.UserID,
		Status:         models.PaymentStatus(row.Status),
		CreatedAt:      row.CreatedAt,
		TxID:           row.TxID.String,
		LedgerSnapshot: row.LedgerSnapshot,
	}
	if row.CompletedAt.Valid {
		at := row.CompletedAt.Time
		record.CompletedAt = &at
	}
	return record
}

func (r *PostgresRepo) CreatePayment(ctx context.Context, record *models.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (payment_id, user_id, status, created_at, ledger_snapshot)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (payment_id) DO NOTHING
	`

	var snapshot interface{}
	if len(record.LedgerSnapshot) > 0 {
		snapshot = []byte(record.LedgerSnapshot)
	}

	result, err := r.db.ExecContext(ctx, query,
		record.PaymentID,
		record.UserID,
		string(record.Status),
		record.CreatedAt,
		snapshot,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		return payments.ErrRecordExists
	}
	return nil
}

func (r *PostgresRepo) GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	query := `
		SELECT payment_id, user_id, status, created_at, completed_at, txid, ledger_snapshot
		FROM payment_records
		WHERE payment_id = $1
	`

	var row paymentRow
	if err := r.db.GetContext(ctx, &row, query, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}
	return row.toModel(), nil
}

func (r *PostgresRepo) MarkCompleted(ctx context.Context, paymentID, txID string, completedAt time.Time) (*models.PaymentRecord, error) {
	query := `
		UPDATE payment_records
		SET status = $1, txid = $2, completed_at = $3
		WHERE payment_id = $4
		RETURNING payment_id, user_id, status, created_at, completed_at, txid, ledger_snapshot
	`

	var row paymentRow
	err := r.db.GetContext(ctx, &row, query,
		string(models.PaymentStatusCompleted), txID, completedAt, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to complete payment record: %w", err)
	}
	return row.toModel(), nil
}
