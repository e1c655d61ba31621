package payments

import (
	"context"
	"errors"
	"time"

	"github.com/piresc/lume/internal/pkg/models"
)

var (
	ErrRecordNotFound = errors.New("payment record not found")
	ErrRecordExists   = errors.New("payment record already exists")
)

// PaymentRepo defines the interface for the local entitlement store
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/lume/services/payments PaymentRepo
type PaymentRepo interface {
	// CreatePayment stores a new record and fails with ErrRecordExists if one is present
	CreatePayment(ctx context.Context, record *models.PaymentRecord) error
	// GetPayment fails with ErrRecordNotFound when nothing is stored for paymentID
	GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error)
	// MarkCompleted upgrades an existing record and fails with ErrRecordNotFound when absent
	MarkCompleted(ctx context.Context, paymentID, txID string, completedAt time.Time) (*models.PaymentRecord, error)
}
