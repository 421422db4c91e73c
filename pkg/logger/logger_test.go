package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	defer Set(nil)()

	require.NoError(t, Init("debug", "production"))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("warn", "development"))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))

	// Unknown levels fall back to info
	require.NoError(t, Init("verbose", "production"))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestGet_Nop(t *testing.T) {
	defer Set(nil)()

	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestSet(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Set(zap.New(core))

	Info("bar accepted", String("symbol", "AAPL"), Int("period", 14))
	Debug("dropped")
	restore()
	Info("after restore")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "bar accepted", entry.Message)
	assert.Equal(t, "AAPL", entry.ContextMap()["symbol"])
	assert.Equal(t, int64(14), entry.ContextMap()["period"])
}
