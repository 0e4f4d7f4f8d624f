// Package log is a thin zap facade. Every log call takes a context so
// request-scoped fields attached by the HTTP middleware travel with the
// entry without threading a logger through constructors.
package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

var (
	String = zap.String
	Int    = zap.Int
	Int64  = zap.Int64
	Uint64 = zap.Uint64
	Any    = zap.Any
	Err    = zap.Error
	Time   = zap.Time
	Bool   = zap.Bool
)

type ctxKey struct{}

var base = zap.NewNop()

type Option func(*options)

type options struct {
	level       zapcore.Level
	development bool
	callerSkip  int
}

func WithLogEnvOption(env string) Option {
	return func(o *options) {
		if env == "local" || env == "" {
			o.development = true
		}
	}
}

func WithLevel(level string) Option {
	return func(o *options) {
		if l, err := zapcore.ParseLevel(level); err == nil {
			o.level = l
		}
	}
}

func AddCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip = skip
	}
}

// Init builds the process logger. Call once from setup.
func Init(appName string, opts ...Option) {
	o := &options{level: zapcore.InfoLevel, callerSkip: 1}
	for _, opt := range opts {
		opt(o)
	}

	cfg := zap.NewProductionConfig()
	if o.development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(o.level)

	l, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(o.callerSkip))
	if err != nil {
		l = zap.NewNop()
	}

	base = l.Named(appName)
}

// InitForTest swaps in a no-op logger. Used from TestMain.
func InitForTest() {
	base = zap.NewNop()
}

// Logger returns the underlying zap logger, for integrations that need it
// (nrzap).
func Logger() *zap.Logger {
	return base
}

func Sync() {
	_ = base.Sync()
}

// ContextWithFields returns a context whose log entries carry the given
// fields.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	existing, _ := ctx.Value(ctxKey{}).([]Field)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

// ContextFields returns the fields attached to the context, so they can be
// re-attached to a detached background context.
func ContextFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]Field)
	return fields
}

func fromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return base
	}
	fields, _ := ctx.Value(ctxKey{}).([]Field)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Error(msg, fields...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Sugar().Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Sugar().Fatalf(format, args...)
}
