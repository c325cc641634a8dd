package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-pursuit/internal/config"
)

func TestNewLevels(t *testing.T) {
	log := logrus.New()
	require.NoError(t, New(log, config.Log{Level: "warn"}, false))
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	require.NoError(t, New(log, config.Log{Level: "warn"}, true))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	assert.Error(t, New(log, config.Log{Level: "loud"}, false))
}

func TestNewFileHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	log := logrus.New()
	log.SetOutput(os.Stderr)
	require.NoError(t, New(log, config.Log{
		Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1,
	}, false))

	log.WithField("mode", "pursuit").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"mode":"pursuit"`)
}
