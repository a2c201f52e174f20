package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/pkg/logger"
)

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	l := logger.NewWithWriter(buf, slog.LevelDebug).With("component", "test")

	ctx := logger.SetRequestID(context.Background(), "req-1")
	ctx = logger.SetUserID(ctx, "user-1")
	ctx = logger.SetRole(ctx, "manager")
	ctx = logger.SetMethod(ctx, "GET")

	l.InfoContext(ctx, "hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "req-1", record["request_id"])
	require.Equal(t, "user-1", record["user_id"])
	require.Equal(t, "manager", record["role"])
	require.Equal(t, "GET", record["method"])
	require.Equal(t, "test", record["component"])
	require.Equal(t, "helpdesk", record["origin_service"])
	require.NotContains(t, record, "ip")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, logger.ParseLevel("warn"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
	require.Equal(t, "req", logger.RequestIDFromCtx(logger.SetRequestID(context.Background(), "req")))
	require.Empty(t, logger.RequestIDFromCtx(context.Background()))
}
