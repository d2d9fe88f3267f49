package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("production logger with explicit level", func(t *testing.T) {
		logger, err := New("debug", false)
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.NotNil(t, logger.Check(zapcore.DebugLevel, "debug enabled"))
	})

	t.Run("development logger with default level", func(t *testing.T) {
		logger, err := New("", true)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New("loud", false)
		assert.Error(t, err)
	})
}

func TestMaskSender(t *testing.T) {
	assert.Equal(t, "+947****567", MaskSender("+94771234567").String)
	assert.Equal(t, "12345", MaskSender("12345").String)
}
