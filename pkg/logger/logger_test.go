package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitSetsLevel(t *testing.T) {
	require.NoError(t, Init("debug"))
	require.True(t, L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("warn"))
	require.False(t, L().Core().Enabled(zapcore.InfoLevel))
	require.True(t, L().Core().Enabled(zapcore.WarnLevel))
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	require.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
	require.Equal(t, zapcore.InfoLevel, parseLevel(""))
	require.Equal(t, zapcore.ErrorLevel, parseLevel(" ERROR "))
}

func TestWithModuleNeverNil(t *testing.T) {
	require.NotNil(t, WithModule("test"))
}
