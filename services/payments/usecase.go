package payments

import (
	"context"

	"github.com/piresc/lume/internal/pkg/models"
)

// PaymentUC defines the interface for payment confirmation logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/lume/services/payments PaymentUC
type PaymentUC interface {
	Approve(ctx context.Context, req models.ApproveRequest) (*models.ApproveResult, error)
	Complete(ctx context.Context, req models.CompleteRequest) (*models.CompleteResult, error)
	Verify(ctx context.Context, paymentID string) (*models.VerifyResult, error)
	Status(ctx context.Context, paymentID string) (*models.PaymentRecord, error)
	Entitlement(ctx context.Context, paymentID string) (*models.Entitlement, error)
}
