package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger writes human readable logs to w. Time is omitted since the
// browser console shows it.
func newLogger(w zapcore.WriteSyncer, level zapcore.Level) *zap.SugaredLogger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), w, level)
	return zap.New(core).Named("pcgallery").Sugar()
}
