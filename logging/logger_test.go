package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "xml"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "homeprice.log")

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("artifacts loaded")
	logger.Debug("not written at info level")
	_ = logger.Sync()

	payload, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"msg":"artifacts loaded"`)
	assert.False(t, strings.Contains(string(payload), "not written"))
}
