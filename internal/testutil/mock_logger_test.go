package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/internal/testutil"
)

func TestMockLogger_RecordsMessages(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("perception completed", logging.String("mode", "permissive"))
	logger.Warn("sink failed", logging.String("sink", "kafka"))
	logger.Warn("sink failed", logging.String("sink", "milvus"))

	messages := logger.GetMessages()
	require.Len(t, messages, 3)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "perception completed", messages[0].Message)
	require.Len(t, messages[0].Fields, 1)

	assert.Equal(t, 2, logger.CountLevel("warn"))
	assert.True(t, logger.HasMessage("warn", "sink failed"))
	assert.False(t, logger.HasMessage("error", "sink failed"))
}

func TestMockLogger_Clear(t *testing.T) {
	logger := testutil.NewMockLogger()
	logger.Error("boom")
	require.Len(t, logger.GetMessages(), 1)

	logger.Clear()
	assert.Empty(t, logger.GetMessages())
}

func TestMockLogger_WithAndNamedStillRecord(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.With(logging.String("component", "cache")).Debug("hit")
	logger.Named("worker").Info("scan started")

	assert.Equal(t, 1, logger.CountLevel("debug"))
	assert.Equal(t, 1, logger.CountLevel("info"))
	assert.NoError(t, logger.Sync())
}
