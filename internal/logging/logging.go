// Package logging adapts zap to the dispatch.Logger and
// dispatch.MetricsCollector interfaces.
package logging

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/caio-campos/profilectl/dispatch"
)

// New builds a production zap logger writing JSON to stderr at level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Zap implements dispatch.Logger on top of a *zap.Logger.
type Zap struct {
	logger *zap.Logger
}

var _ dispatch.Logger = (*Zap)(nil)

func NewZap(logger *zap.Logger) *Zap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Zap{logger: logger}
}

func (z *Zap) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	z.logger.Debug(msg, toFields(fields)...)
}

func (z *Zap) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	z.logger.Info(msg, toFields(fields)...)
}

func (z *Zap) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	z.logger.Warn(msg, toFields(fields)...)
}

func (z *Zap) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	z.logger.Error(msg, toFields(fields)...)
}

func (z *Zap) IsNoop() bool {
	return !z.logger.Core().Enabled(zapcore.ErrorLevel)
}

// toFields sorts keys so log lines are stable.
func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		out = append(out, zap.Any(key, fields[key]))
	}
	return out
}

// Metrics logs every request's metrics at debug level.
type Metrics struct {
	logger *zap.Logger
}

var _ dispatch.MetricsCollector = (*Metrics)(nil)

func NewMetrics(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Metrics{logger: logger.Named("http")}
}

func (m *Metrics) RecordRequest(ctx context.Context, metrics dispatch.RequestMetrics) {
	fields := []zap.Field{
		zap.String("method", metrics.Method),
		zap.String("url", metrics.URL),
		zap.Int("status_code", metrics.StatusCode),
		zap.Duration("duration", metrics.Duration),
		zap.Int64("request_size", metrics.RequestSize),
		zap.Int64("response_size", metrics.ResponseSize),
		zap.Bool("success", metrics.Success),
	}
	if metrics.Error != nil {
		fields = append(fields, zap.Error(metrics.Error))
	}

	m.logger.Debug("request metrics", fields...)
}
