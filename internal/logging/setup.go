package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"signpost/internal/config"
)

var (
	MainLogger   zerolog.Logger
	AccessLogger zerolog.Logger
)

// Setup initializes the logging system based on the configuration
func Setup(cfg *config.Config) error {
	if !cfg.Logging.Enabled {
		// Keep console logging only
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		MainLogger = log.Logger
		AccessLogger = log.Logger
		return nil
	}

	// Create logs directory with secure permissions (0700 - owner only)
	if err := os.MkdirAll(cfg.Logging.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
		log.Warn().Str("invalid_level", cfg.Logging.Level).Msg("Invalid log level, using info")
	}
	zerolog.SetGlobalLevel(level)

	// Configure time format
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Setup main application logger
	mainLogFile := filepath.Join(cfg.Logging.Dir, cfg.Logging.MainLogFile)
	mainFileWriter := &lumberjack.Logger{
		Filename:   mainLogFile,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	}

	// Set file permissions to be secure (readable only by owner)
	if err := os.Chmod(mainLogFile, 0600); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", mainLogFile).Msg("Failed to set secure permissions on log file")
	}

	// Setup access logger for per-request redirect decisions
	accessLogFile := filepath.Join(cfg.Logging.Dir, cfg.Logging.AccessLogFile)
	accessFileWriter := &lumberjack.Logger{
		Filename:   accessLogFile,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	}

	if err := os.Chmod(accessLogFile, 0600); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", accessLogFile).Msg("Failed to set secure permissions on log file")
	}

	// Create multi-writers (console + file)
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}

	mainMultiWriter := io.MultiWriter(consoleWriter, mainFileWriter)
	accessMultiWriter := io.MultiWriter(consoleWriter, accessFileWriter)

	// Initialize loggers
	MainLogger = zerolog.New(mainMultiWriter).With().Timestamp().Logger()
	AccessLogger = zerolog.New(accessMultiWriter).With().Timestamp().Logger()

	// Set the global logger to the main logger
	log.Logger = MainLogger

	log.Info().
		Str("main_log", mainLogFile).
		Str("access_log", accessLogFile).
		Str("level", level.String()).
		Msg("File logging initialized")

	return nil
}
