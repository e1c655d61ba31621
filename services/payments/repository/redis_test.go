package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/lume/internal/pkg/constants"
	"github.com/piresc/lume/internal/pkg/database"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/services/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return &database.RedisClient{Client: client}, mr
}

func TestRedisRepo_CreateAndGet(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()
	repo := NewRedisRepository(redisClient)
	ctx := context.Background()

	require.NoError(t, repo.CreatePayment(ctx, newApprovedRecord("P1")))

	key := fmt.Sprintf(constants.KeyPaymentRecord, "P1")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Duration(0), mr.TTL(key), "records never expire")

	got, err := repo.GetPayment(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", got.PaymentID)
	assert.Equal(t, "U1", got.UserID)
	assert.Equal(t, models.PaymentStatusApproved, got.Status)
	assert.JSONEq(t, `{"identifier":"P1","amount":0.001}`, string(got.LedgerSnapshot))
}

func TestRedisRepo_CreateDuplicate(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()
	repo := NewRedisRepository(redisClient)
	ctx := context.Background()

	require.NoError(t, repo.CreatePayment(ctx, newApprovedRecord("P1")))

	second := newApprovedRecord("P1")
	second.UserID = "U2"
	assert.ErrorIs(t, repo.CreatePayment(ctx, second), payments.ErrRecordExists)

	got, err := repo.GetPayment(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "U1", got.UserID)
}

func TestRedisRepo_GetMissing(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()

	_, err := NewRedisRepository(redisClient).GetPayment(context.Background(), "nope")
	assert.ErrorIs(t, err, payments.ErrRecordNotFound)
}

func TestRedisRepo_MarkCompleted(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()
	repo := NewRedisRepository(redisClient)
	ctx := context.Background()

	require.NoError(t, repo.CreatePayment(ctx, newApprovedRecord("P1")))

	at := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	updated, err := repo.MarkCompleted(ctx, "P1", "T1", at)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)

	raw, err := mr.Get(fmt.Sprintf(constants.KeyPaymentRecord, "P1"))
	require.NoError(t, err)

	var stored models.PaymentRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.Equal(t, "T1", stored.TxID)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, at.Equal(*stored.CompletedAt))
}

func TestRedisRepo_MarkCompletedMissing(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()

	_, err := NewRedisRepository(redisClient).MarkCompleted(context.Background(), "P9", "T9", time.Now())
	assert.ErrorIs(t, err, payments.ErrRecordNotFound)
}

func TestRedisRepo_ConnectionError(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	mr.Close()

	_, err := NewRedisRepository(redisClient).GetPayment(context.Background(), "P1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, payments.ErrRecordNotFound)
}
