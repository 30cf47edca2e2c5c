package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const logFileName = "jira-ticket-viewer.log"

var (
	logger arbor.ILogger
	mu     sync.RWMutex
)

func GetLogger() arbor.ILogger {
	mu.RLock()
	if logger != nil {
		mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = initDefaultLogger()
	}
	return logger
}

// GetLogFilePath returns the log file the arbor logger is writing to
func GetLogFilePath() string {
	mu.RLock()
	currentLogger := logger
	mu.RUnlock()

	if currentLogger != nil {
		if logFilePath := currentLogger.GetLogFilePath(); logFilePath != "" {
			return logFilePath
		}
	}

	return filepath.Join(logsDir(), logFileName)
}

func InitLogger(config *LoggingConfig) error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return nil
	}

	var err error
	logger, err = createLogger(config)
	return err
}

func initDefaultLogger() arbor.ILogger {
	l, err := createLogger(DefaultLoggingConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to initialize default logger: %v\n", err)
		return arbor.NewLogger()
	}
	return l
}

func logsDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "logs"
	}
	return filepath.Join(filepath.Dir(execPath), "logs")
}

func createLogger(config *LoggingConfig) (arbor.ILogger, error) {
	l := arbor.NewLogger()

	if config.Output == "both" || config.Output == "file" || config.Output == "" {
		dir := logsDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}

		l = l.WithFileWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeFile,
			FileName:         filepath.Join(dir, logFileName),
			TimeFormat:       "15:04:05",
			MaxSize:          int64(config.MaxSize * 1024 * 1024),
			MaxBackups:       config.MaxBackups,
			TextOutput:       config.Format != "json",
			DisableTimestamp: false,
		})
	}

	// Console output shares stdout with the ticket report, so it is opt-in.
	if config.Output == "both" || config.Output == "console" {
		l = l.WithConsoleWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeConsole,
			TimeFormat:       "15:04:05",
			TextOutput:       config.Format != "json",
			DisableTimestamp: false,
		})
	}

	l = l.WithLevelFromString(config.Level)

	l.Debug().Str("output", config.Output).Msg("Jira ticket viewer logger initialized")

	return l, nil
}

func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:      "info",
		Format:     "text",
		Output:     "file",
		MaxSize:    10,
		MaxBackups: 3,
	}
}
