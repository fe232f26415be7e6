package libs

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFromCtx(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewJSONHandler(&buf, nil)).With("req_id", "r-1")
	fallback := NopLogger()

	assert.Same(t, fallback, LoggerFromCtx(context.Background(), fallback))
	assert.NotNil(t, LoggerFromCtx(context.Background(), nil))

	ctx := WithLogger(context.Background(), reqLog)
	LoggerFromCtx(ctx, fallback).Info("hello")
	assert.Contains(t, buf.String(), `"req_id":"r-1"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
