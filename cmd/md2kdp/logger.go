package main

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resolveLogLevel picks the log level. -v and -q override the configured
// level; an empty level means info.
func resolveLogLevel(configured string, quiet, verbose bool) zapcore.Level {
	switch {
	case verbose:
		return zapcore.DebugLevel
	case quiet:
		return zapcore.ErrorLevel
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(configured))
	if err != nil || configured == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

// newLogger builds a console logger writing to w without timestamps.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.TimeKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}
