package cache

import (
	"testing"

	"sanctuary/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_NotConfigured(t *testing.T) {
	client, err := NewRedisClient(config.RedisConfig{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrRedisNotConfigured)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	// Port 1 is reserved and refuses connections.
	client, err := NewRedisClient(config.RedisConfig{Address: "127.0.0.1:1"})
	assert.Nil(t, client)
	assert.Error(t, err)
}
