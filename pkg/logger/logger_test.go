package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := InjectLogger(context.Background(), custom)
	assert.Same(t, custom, WithCtx(ctx))
}

func TestTeeWritesToBothHandlers(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev; slog.SetDefault(prev) })

	var base, extra bytes.Buffer
	L = slog.New(slog.NewTextHandler(&base, nil))
	Tee(slog.NewTextHandler(&extra, nil))

	Info("hello", "k", "v")

	assert.Contains(t, base.String(), "hello")
	assert.Contains(t, extra.String(), "k=v")
}

func TestAuditDocumentOnlyForAuditRecords(t *testing.T) {
	plain := slog.NewRecord(time.Now(), slog.LevelInfo, "request", 0)
	_, ok := auditDocument(plain, nil)
	assert.False(t, ok)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, AuditMessage, 0)
	r.AddAttrs(slog.String("event", "auth.login"), slog.Int("gym_id", 7))

	doc, ok := auditDocument(r, []slog.Attr{slog.String("request_id", "abc")})
	require.True(t, ok)
	assert.Equal(t, "auth.login", doc.Event)
	assert.Equal(t, "abc", doc.RequestID)
	assert.EqualValues(t, 7, doc.Attrs["gym_id"])
}

func TestAuditDocumentRequiresEventName(t *testing.T) {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, AuditMessage, 0)
	_, ok := auditDocument(r, nil)
	assert.False(t, ok)
}
