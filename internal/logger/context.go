package logger

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

type (
	requestIDKey struct{}
	fieldsKey    struct{}
)

// WithRequestID stores id on ctx and adds it to every logger FromCtx builds.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return WithFields(ctx, zap.String("request_id", id))
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithFields appends fields to the ones FromCtx attaches for ctx.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	return context.WithValue(ctx, fieldsKey{}, slices.Concat(fieldsFrom(ctx), fields))
}

func fieldsFrom(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(fieldsKey{}).([]zap.Field)
	return fields
}

// FromCtx returns the global logger carrying the fields stored on ctx.
func FromCtx(ctx context.Context) *zap.Logger {
	fields := fieldsFrom(ctx)
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
