package repository

import (
	"context"
	"sync"
	"time"

	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/services/payments"
)

// MemoryRepo keeps payment records in process memory
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]models.PaymentRecord
}

var _ payments.PaymentRepo = (*MemoryRepo)(nil)

// NewMemoryRepository creates an empty in-memory store
func NewMemoryRepository() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]models.PaymentRecord)}
}

func (r *MemoryRepo) CreatePayment(ctx context.Context, record *models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.PaymentID]; ok {
		return payments.ErrRecordExists
	}
	r.records[record.PaymentID] = clone(*record)
	return nil
}

func (r *MemoryRepo) GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[paymentID]
	if !ok {
		return nil, payments.ErrRecordNotFound
	}
	out := clone(record)
	return &out, nil
}

func (r *MemoryRepo) MarkCompleted(ctx context.Context, paymentID, txID string, completedAt time.Time) (*models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[paymentID]
	if !ok {
		return nil, payments.ErrRecordNotFound
	}

	record.Status = models.PaymentStatusCompleted
	record.TxID = txID
	record.CompletedAt = &completedAt
	r.records[paymentID] = record

	out := clone(record)
	return &out, nil
}

// clone detaches the record from caller-owned slices and pointers
func clone(record models.PaymentRecord) models.PaymentRecord {
	if record.LedgerSnapshot != nil {
		record.LedgerSnapshot = append([]byte(nil), record.LedgerSnapshot...)
	}
	if record.CompletedAt != nil {
		at := *record.CompletedAt
		record.CompletedAt = &at
	}
	return record
}
