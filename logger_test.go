package sparseset

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.LogSave(ctx, "f0", 12, 64, nil)
	assert.Contains(t, buf.String(), "set saved")
	assert.Contains(t, buf.String(), "set=f0")
	assert.Contains(t, buf.String(), "values=12")

	buf.Reset()
	l.LogLoad(ctx, "f1", 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "load failed")
	assert.Contains(t, buf.String(), "error=boom")

	buf.Reset()
	l.WithName("f2").WithCount(3).Info("hello")
	assert.Contains(t, buf.String(), "set=f2")
	assert.Contains(t, buf.String(), "count=3")

	buf.Reset()
	l.LogBatch(ctx, "load", 4, 1)
	assert.Contains(t, buf.String(), "load completed with failures")
	assert.Contains(t, buf.String(), "failed=1")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogSave(context.Background(), "x", 1, 1, nil)
}
