package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNew_LevelGatesEntries(t *testing.T) {
	lg, err := New(Options{Level: "warn", Format: "json", Service: "roommait-api"})
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, lg.Core().Enabled(zapcore.WarnLevel))

	lg, err = New(Options{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, lg.Core().Enabled(zapcore.DebugLevel))
}

func TestBaseFields(t *testing.T) {
	keys := func(opts Options) []string {
		var out []string
		for _, f := range baseFields(opts) {
			out = append(out, f.Key)
		}
		return out
	}
	got := keys(Options{Service: "roommait-api", Environment: "production"})
	assert.Contains(t, got, "service_name")
	assert.Contains(t, got, "env")
	assert.NotContains(t, keys(Options{}), "service_name")
}
