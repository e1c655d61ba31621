package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(models.RedisConfig{
		Host:     mr.Host(),
		Port:     mustPort(t, mr.Port()),
		PoolSize: 2,
	})
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client.Client)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestNewRedisClient_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	port := mustPort(t, mr.Port())
	mr.Close()

	client, err := NewRedisClient(models.RedisConfig{Host: "127.0.0.1", Port: port})

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
