package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/pkg/errors"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(&config.RedisConfig{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewClient_PingsOnConnect(t *testing.T) {
	c := testClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNewClient_RequiresAddr(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestNewClient_ConnectionRefused(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCache))
}
