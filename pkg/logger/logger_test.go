package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/id"
)

func TestFromContext_AddsRequestAndUserFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := &Logger{zap.New(core).Sugar()}

	userID := id.New()
	ctx := WithLogger(context.Background(), base)
	ctx = appctx.WithTrace(ctx, &appctx.TraceContext{TraceID: "t-1", RequestID: "r-1"})
	ctx = appctx.WithUser(ctx, &appctx.UserContext{UserID: userID, Username: "alice", Role: "user"})

	Info(ctx, "stock saved", "items", 3)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "r-1", fields["request_id"])
	assert.Equal(t, "t-1", fields["trace_id"])
	assert.Equal(t, userID.String(), fields["user_id"])
	assert.Equal(t, "alice", fields["username"])
	assert.EqualValues(t, 3, fields["items"])
}

func TestNew_FallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "verbose", OutputPaths: []string{"stdout"}})
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
}
