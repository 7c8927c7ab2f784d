package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the process-wide logger. It stays nil until Init runs, so the
	// helpers below are safe to call from tests and library code.
	Logger *log.Logger
	output io.Writer = io.Discard
)

type Config struct {
	Debug  bool
	LogDir string
}

func Init(cfg Config) error {
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "habitflow.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	output = writer
	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habitflow",
	})
	return nil
}

// Writer returns the sink used by Logger, for collaborators (gorm, fiber)
// that want raw line output.
func Writer() io.Writer {
	return output
}

// Printf satisfies gorm's logger.Writer.
func Printf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Printf(format, args...)
	}
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

type PrintfWriter interface {
	Printf(format string, args ...interface{})
}

type printfFunc func(format string, args ...interface{})

func (fn printfFunc) Printf(format string, args ...interface{}) {
	fn(format, args...)
}

// GormWriter adapts the package logger to gorm's logger.Writer interface.
func GormWriter() PrintfWriter {
	return printfFunc(Printf)
}
