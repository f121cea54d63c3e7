// Package logging provides the component loggers used across prompts.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/prompts/config"
	"github.com/grovetools/prompts/pkg/paths"
	"github.com/grovetools/prompts/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// Loggers are cached per component.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := newLoggerFromConfig(component, logCfg)
	loggers[component] = entry
	return entry
}

// newLoggerFromConfig builds an uncached logger. Environment variables take
// precedence over logCfg.
func newLoggerFromConfig(component string, logCfg Config) *logrus.Entry {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("PROMPTS_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("PROMPTS_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer

	logPath := logCfg.File.Path
	if logPath == "" {
		logPath = paths.LogFile()
	}
	if logCfg.File.Enabled && logPath != "" {
		path := pathutil.Expand(logPath)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			logger.Warnf("Failed to create log directory for %s: %v", path, err)
		} else if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			logger.Warnf("Failed to open log file %s: %v", path, err)
		} else {
			writers = append(writers, file)
		}
	}

	if shouldLogToStderr(logCfg.Format.StructuredToStderr, logger.GetLevel()) {
		writers = append(writers, GetGlobalOutput())
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger.WithField("component", component)
}

// shouldLogToStderr resolves the structured_to_stderr mode. In "auto" mode
// logs reach stderr only when debugging or when stderr is not a terminal, so
// interactive use stays quiet.
func shouldLogToStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	isDebug := os.Getenv("PROMPTS_DEBUG") == "1" || level >= logrus.DebugLevel
	fd := os.Stderr.Fd()
	isInteractive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return isDebug || !isInteractive
}
