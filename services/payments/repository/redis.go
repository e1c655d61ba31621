package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/lume/internal/pkg/constants"
	"github.com/piresc/lume/internal/pkg/database"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/services/payments"
)

// RedisRepo stores payment records as JSON values without expiry
type RedisRepo struct {
	redisClient *database.RedisClient
}

var _ payments.PaymentRepo = (*RedisRepo)(nil)

// NewRedisRepository creates a redis-backed store
func NewRedisRepository(redisClient *database.RedisClient) *RedisRepo {
	return &RedisRepo{redisClient: redisClient}
}

func recordKey(paymentID string) string {
	return fmt.Sprintf(constants.KeyPaymentRecord, paymentID)
}

func (r *RedisRepo) CreatePayment(ctx context.Context, record *models.PaymentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal payment record: %w", err)
	}

	created, err := r.redisClient.Client.SetNX(ctx, recordKey(record.PaymentID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store payment record: %w", err)
	}
	if !created {
		return payments.ErrRecordExists
	}
	return nil
}

func (r *RedisRepo) GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	data, err := r.redisClient.Client.Get(ctx, recordKey(paymentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, payments.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}

	var record models.PaymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment record: %w", err)
	}
	return &record, nil
}

// MarkCompleted updates the record under WATCH so a concurrent writer aborts the transaction
func (r *RedisRepo) MarkCompleted(ctx context.Context, paymentID, txID string, completedAt time.Time) (*models.PaymentRecord, error) {
	key := recordKey(paymentID)
	var updated models.PaymentRecord

	err := r.redisClient.Client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return payments.ErrRecordNotFound
			}
			return err
		}

		if err := json.Unmarshal(data, &updated); err != nil {
			return fmt.Errorf("failed to unmarshal payment record: %w", err)
		}
		updated.Status = models.PaymentStatusCompleted
		updated.TxID = txID
		updated.CompletedAt = &completedAt

		next, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("failed to marshal payment record: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, payments.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to complete payment record: %w", err)
	}

	return &updated, nil
}
