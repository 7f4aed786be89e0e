package core

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides a structured logging interface for the application.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Debug(msg string, fields ...any)
}

// zapLogger wraps a sugared zap logger; fields are alternating keys and values.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a JSON logger writing to w with the specified log level.
func NewLogger(level string, w io.Writer) Logger {
	zc := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		parseLevel(level),
	)
	return &zapLogger{sugar: zap.New(zc).Sugar()}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

// Sync flushes buffered entries of loggers that buffer.
func Sync(l Logger) {
	if zl, ok := l.(*zapLogger); ok {
		_ = zl.sugar.Sync()
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Info(msg string, fields ...any) {
	l.sugar.Infow(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...any) {
	l.sugar.Warnw(msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...any) {
	l.sugar.Errorw(msg, fields...)
}

func (l *zapLogger) Debug(msg string, fields ...any) {
	l.sugar.Debugw(msg, fields...)
}
