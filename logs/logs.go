// File: logs/logs.go
// Author: momentics <momentics@gmail.com>
//
// Process-wide structured logger for the library. Components log through
// the package-level helpers unless a per-instance logger was injected.

package logs

import "go.uber.org/zap"

var logger *zap.Logger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger = l.With(zap.String("lib", "hioload-waitset"))
}

// SetLogger replaces the process-wide logger. A nil argument installs a
// no-op logger, silencing the library.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the current process-wide logger.
func Logger() *zap.Logger {
	return logger
}

// Debug logs a message at debug level.
func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

// Info logs a message at info level.
func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

// Warn logs a message at warn level.
func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

// Error logs a message at error level.
func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}
