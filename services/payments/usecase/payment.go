package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/piresc/lume/internal/pkg/keylock"
	"github.com/piresc/lume/internal/pkg/logger"
	"github.com/piresc/lume/internal/pkg/models"
	nrpkg "github.com/piresc/lume/internal/pkg/newrelic"
	"github.com/piresc/lume/services/payments"
	"github.com/shopspring/decimal"
)

const defaultLedgerTimeout = 10 * time.Second

// paymentUC implements the payments.PaymentUC interface
type paymentUC struct {
	cfg      *models.Config
	price    decimal.Decimal
	lockWait time.Duration

	repo   payments.PaymentRepo
	ledger payments.LedgerGW
	events payments.EventGW
	locks  *keylock.Locker
	now    func() time.Time
}

// NewPaymentUC creates a new payment use case. events may be nil.
func NewPaymentUC(
	cfg *models.Config,
	repo payments.PaymentRepo,
	ledger payments.LedgerGW,
	events payments.EventGW,
) (payments.PaymentUC, error) {
	price, err := decimal.NewFromString(cfg.Product.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid product price %q: %w", cfg.Product.Price, err)
	}

	ledgerTimeout := time.Duration(cfg.Ledger.Timeout) * time.Second
	if ledgerTimeout <= 0 {
		ledgerTimeout = defaultLedgerTimeout
	}

	return &paymentUC{
		cfg:      cfg,
		price:    price,
		lockWait: 2 * ledgerTimeout,
		repo:     repo,
		ledger:   ledger,
		events:   events,
		locks:    keylock.New(),
		now:      time.Now,
	}, nil
}

// Approve validates a payment against the ledger and approves it
func (uc *paymentUC) Approve(ctx context.Context, req models.ApproveRequest) (*models.ApproveResult, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "PaymentUC.Approve", func(ctx context.Context) (*models.ApproveResult, error) {
		return uc.approve(ctx, req)
	})
}

func (uc *paymentUC) approve(ctx context.Context, req models.ApproveRequest) (*models.ApproveResult, error) {
	req.PaymentID = strings.TrimSpace(req.PaymentID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.PaymentID == "" || req.UserID == "" {
		return nil, payments.InputError("Missing required fields", "paymentId", "userId")
	}

	unlock, err := uc.lock(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	payment, err := uc.ledger.GetPayment(ctx, req.PaymentID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch payment for approval",
			logger.PaymentID(req.PaymentID), logger.Err(err))
		return nil, err
	}

	if !payment.Amount.Equal(uc.price) {
		logger.WarnCtx(ctx, "Rejected payment with unexpected amount",
			logger.PaymentID(req.PaymentID),
			logger.String("expected", uc.price.String()),
			logger.String("received", payment.Amount.String()))
		return nil, payments.BusinessRuleError(payments.ReasonAmountMismatch, "Invalid payment amount",
			map[string]string{"expected": uc.price.String(), "received": payment.Amount.String()})
	}
	if payment.Status.DeveloperApproved {
		return nil, payments.BusinessRuleError(payments.ReasonAlreadyApproved, "Payment already approved", nil)
	}
	if payment.Status.Cancelled || payment.Status.UserCancelled {
		return nil, payments.BusinessRuleError(payments.ReasonCancelled, "Payment was cancelled", nil)
	}
	if uc.cfg.Product.Memo != "" && payment.Memo != uc.cfg.Product.Memo {
		logger.WarnCtx(ctx, "Approving payment with unexpected memo",
			logger.PaymentID(req.PaymentID),
			logger.String("expected", uc.cfg.Product.Memo),
			logger.String("received", payment.Memo))
	}

	approved, err := uc.ledger.ApprovePayment(ctx, req.PaymentID)
	if err != nil {
		logger.ErrorCtx(ctx, "Ledger rejected approval",
			logger.PaymentID(req.PaymentID), logger.Err(err))
		return nil, err
	}

	// Ledger state has changed; the local write must outlive the request.
	storeCtx := context.WithoutCancel(ctx)
	record := &models.PaymentRecord{
		PaymentID:      req.PaymentID,
		UserID:         req.UserID,
		Status:         models.PaymentStatusApproved,
		CreatedAt:      uc.now().UTC(),
		LedgerSnapshot: payment.Raw,
	}
	if err := uc.repo.CreatePayment(storeCtx, record); err != nil {
		if errors.Is(err, payments.ErrRecordExists) {
			logger.WarnCtx(ctx, "Local record already existed for approved payment",
				logger.PaymentID(req.PaymentID))
		} else {
			logger.ErrorCtx(ctx, "Failed to store approved payment",
				logger.PaymentID(req.PaymentID), logger.Err(err))
		}
	}

	uc.publish(storeCtx, models.PaymentEvent{
		PaymentID:  req.PaymentID,
		UserID:     req.UserID,
		Status:     models.PaymentStatusApproved,
		OccurredAt: record.CreatedAt,
	})

	logger.InfoCtx(ctx, "Payment approved",
		logger.PaymentID(req.PaymentID), logger.String("user_id", req.UserID))

	return &models.ApproveResult{
		PaymentID:      req.PaymentID,
		Status:         models.PaymentStatusApproved,
		LedgerResponse: approved,
	}, nil
}

// Complete checks the submitted transaction against the ledger and completes the payment
func (uc *paymentUC) Complete(ctx context.Context, req models.CompleteRequest) (*models.CompleteResult, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "PaymentUC.Complete", func(ctx context.Context) (*models.CompleteResult, error) {
		return uc.complete(ctx, req)
	})
}

func (uc *paymentUC) complete(ctx context.Context, req models.CompleteRequest) (*models.CompleteResult, error) {
	req.PaymentID = strings.TrimSpace(req.PaymentID)
	req.TxID = strings.TrimSpace(req.TxID)
	if req.PaymentID == "" || req.TxID == "" {
		return nil, payments.InputError("Missing required fields", "paymentId", "txid")
	}

	unlock, err := uc.lock(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	payment, err := uc.ledger.GetPayment(ctx, req.PaymentID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch payment for completion",
			logger.PaymentID(req.PaymentID), logger.Err(err))
		return nil, err
	}

	if payment.Transaction == nil || payment.Transaction.TxID != req.TxID {
		logger.WarnCtx(ctx, "Rejected completion with mismatched txid",
			logger.PaymentID(req.PaymentID), logger.String("txid", req.TxID))
		return nil, payments.BusinessRuleError(payments.ReasonTxIDMismatch, "Transaction ID mismatch", nil)
	}
	if !payment.Transaction.Verified {
		return nil, payments.BusinessRuleError(payments.ReasonTransactionNotVerified,
			"Transaction not verified on blockchain", nil)
	}

	completed, err := uc.ledger.CompletePayment(ctx, req.PaymentID, req.TxID)
	if err != nil {
		logger.ErrorCtx(ctx, "Ledger rejected completion",
			logger.PaymentID(req.PaymentID), logger.Err(err))
		return nil, err
	}

	storeCtx := context.WithoutCancel(ctx)
	completedAt := uc.now().UTC()
	userID := payment.UserUID
	record, err := uc.repo.MarkCompleted(storeCtx, req.PaymentID, req.TxID, completedAt)
	switch {
	case err == nil:
		userID = record.UserID
	case errors.Is(err, payments.ErrRecordNotFound):
		logger.InfoCtx(ctx, "Completed payment is not tracked locally",
			logger.PaymentID(req.PaymentID))
	default:
		logger.ErrorCtx(ctx, "Failed to store completed payment",
			logger.PaymentID(req.PaymentID), logger.Err(err))
	}

	uc.publish(storeCtx, models.PaymentEvent{
		PaymentID:  req.PaymentID,
		UserID:     userID,
		TxID:       req.TxID,
		Status:     models.PaymentStatusCompleted,
		OccurredAt: completedAt,
	})

	logger.InfoCtx(ctx, "Payment completed",
		logger.PaymentID(req.PaymentID), logger.String("txid", req.TxID))

	return &models.CompleteResult{
		PaymentID:      req.PaymentID,
		TxID:           req.TxID,
		Status:         models.PaymentStatusCompleted,
		LedgerResponse: completed,
	}, nil
}

// Verify returns the ledger's current view of a payment
func (uc *paymentUC) Verify(ctx context.Context, paymentID string) (*models.VerifyResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, payments.InputError("Missing paymentId parameter", "paymentId")
	}

	payment, err := uc.ledger.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &models.VerifyResult{LedgerResponse: payment.Raw}, nil
}

// Status returns the local record without consulting the ledger
func (uc *paymentUC) Status(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, payments.InputError("Missing paymentId parameter", "paymentId")
	}

	record, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payments.ErrRecordNotFound) {
			return nil, payments.NotFoundError(payments.ReasonNotTrackedLocally, "Payment not found in local storage")
		}
		logger.ErrorCtx(ctx, "Failed to read payment record",
			logger.PaymentID(paymentID), logger.Err(err))
		return nil, payments.InternalError(payments.ReasonStoreUnavailable, "Failed to read payment record", err)
	}

	return record, nil
}

// Entitlement reports whether paymentID unlocks premium features
func (uc *paymentUC) Entitlement(ctx context.Context, paymentID string) (*models.Entitlement, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, payments.InputError("Missing paymentId parameter", "paymentId")
	}

	record, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payments.ErrRecordNotFound) {
			return &models.Entitlement{PaymentID: paymentID}, nil
		}
		return nil, payments.InternalError(payments.ReasonStoreUnavailable, "Failed to read payment record", err)
	}

	return &models.Entitlement{
		PaymentID:     paymentID,
		PremiumActive: record.IsCompleted(),
	}, nil
}

// lock serializes approve and complete for one payment
func (uc *paymentUC) lock(ctx context.Context, paymentID string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, uc.lockWait)
	defer cancel()

	unlock, err := uc.locks.Lock(waitCtx, paymentID)
	if err != nil {
		logger.WarnCtx(ctx, "Timed out waiting for in-flight payment operation",
			logger.PaymentID(paymentID), logger.Err(err))
		return nil, payments.UpstreamError(payments.ReasonLedgerTimeout, 0, nil, err)
	}
	return unlock, nil
}

func (uc *paymentUC) publish(ctx context.Context, event models.PaymentEvent) {
	if uc.events == nil {
		return
	}

	var err error
	switch event.Status {
	case models.PaymentStatusApproved:
		err = uc.events.PublishPaymentApproved(ctx, event)
	case models.PaymentStatusCompleted:
		err = uc.events.PublishPaymentCompleted(ctx, event)
	}
	if err != nil {
		logger.WarnCtx(ctx, "Failed to publish payment event",
			logger.PaymentID(event.PaymentID),
			logger.String("status", string(event.Status)),
			logger.Err(err))
	}
}
