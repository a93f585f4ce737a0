package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signpost/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Enabled = false

	err := Setup(cfg)
	require.NoError(t, err)
	// Console-only loggers are still usable.
	MainLogger.Info().Msg("main")
	AccessLogger.Info().Msg("access")
}

func TestSetup_CreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{}
	cfg.Logging.Enabled = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Dir = dir
	cfg.Logging.MainLogFile = "signpost.log"
	cfg.Logging.AccessLogFile = "access.log"
	cfg.Logging.MaxSize = 1

	err := Setup(cfg)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Enabled = true
	cfg.Logging.Level = "shouting"
	cfg.Logging.Dir = t.TempDir()
	cfg.Logging.MainLogFile = "signpost.log"
	cfg.Logging.AccessLogFile = "access.log"

	err := Setup(cfg)
	require.NoError(t, err)
}
