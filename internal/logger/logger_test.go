package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLevels(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, Init("warn", false))
	assert.False(t, Log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Log.Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, Init("debug", true))
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	err := Init("loud", false)
	assert.Error(t, err)
	assert.Same(t, prev, Log)
}

func TestSyncAfterInit(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	Log = zap.NewNop()
	assert.NotPanics(t, Sync)
}
