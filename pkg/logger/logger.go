// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment verified", "order", order.OrderNumber)
//	// → time=... level=INFO msg="payment verified" request_id=a1b2c3d4 order=SS-20260828-K3X9J2
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shringarlabs/shringar/config"
)

var L *slog.Logger

// mongoSink is set by Setup when MONGO_LOG_URI is configured; Close flushes it.
var mongoSink *MongoHandler

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		return slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		return slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}
}

// Setup attaches the MongoDB sink when MONGO_LOG_URI is configured.
// Records still go to stdout; Mongo is a best-effort secondary sink and a
// connection failure only logs a warning.
func Setup() {
	uri := config.MongoLogURI()
	if uri == "" {
		return
	}

	sink, err := NewMongoHandler(uri, config.MongoLogDatabase(), "logs")
	if err != nil {
		L.Warn("mongo log sink unavailable", "error", err)
		return
	}

	mongoSink = sink
	L = slog.New(NewMultiHandler(baseHandler(), sink))
	slog.SetDefault(L)
}

// Close flushes and disconnects the Mongo sink, if one was attached.
func Close() {
	if mongoSink != nil {
		mongoSink.Close()
	}
}

type ctxKey struct{}

// WithCtx returns the per-request *slog.Logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware, not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
