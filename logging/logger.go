// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging wraps go.uber.org/zap behind a narrow interface, the way
// vms/secp256k1fx/vm.go's VM interface exposes Logger() logging.Logger
// without leaking the zap types into callers.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the narrow structured-logging surface the ledger core depends
// on. The core never writes to stdout directly.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

type zapLogger struct {
	*zap.Logger
}

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{l.Logger.With(fields...)}
}

// NewNoOp returns a Logger that discards everything, for tests.
func NewNoOp() Logger {
	return &zapLogger{zap.NewNop()}
}

// New returns a production console logger writing to stderr at info level.
func New() Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		zapcore.InfoLevel,
	)
	return &zapLogger{zap.New(core)}
}

// NewFileCore returns a Logger that rotates its output through lumberjack,
// for long-running node deployments.
func NewFileCore(path string, maxSizeMB, maxBackups, maxAgeDays int) Logger {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(sink),
		zapcore.InfoLevel,
	)
	return &zapLogger{zap.New(core)}
}
