// Package logging builds the process-wide structured logger, shared
// by every component that needs one. Grounded on
// uhyunpark-hyperlicked/pkg/util/log.go's zap.NewProductionConfig
// setup; the teacher itself only ever uses log.Printf/log.Fatalf.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON-encoded, ISO8601-timestamped production logger.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
