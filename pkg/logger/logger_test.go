package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCtxFallsBackToBaseLogger(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestWithCtxReturnsInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	injected := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc123")

	ctx := InjectLogger(context.Background(), injected)
	WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc123")
	assert.Contains(t, buf.String(), "hello")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)

	log := slog.New(multi)
	log.Info("order placed", "total", 12.5)

	require.Contains(t, a.String(), "order placed")
	require.Contains(t, b.String(), `"msg":"order placed"`)
	assert.Contains(t, b.String(), `"total":12.5`)
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	log := slog.New(multi).With("request_id", "abc")
	log.Info("tagged")

	assert.Contains(t, buf.String(), "request_id=abc")
}
