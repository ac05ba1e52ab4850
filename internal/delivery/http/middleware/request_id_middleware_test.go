package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "whereto/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequestIDMiddleware(t *testing.T, header string) (context.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured context.Context
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewRequestIDMiddleware(logger)
	err := m.Process(func(c echo.Context) error {
		captured = c.Request().Context()

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return captured, rec
}

func TestRequestIDMiddleware_PropagatesClientHeader(t *testing.T) {
	ctx, rec := runRequestIDMiddleware(t, "client-supplied-id")

	assert.Equal(t, "client-supplied-id", deliverycontext.GetRequestIDFromContext(ctx))
	assert.Equal(t, "client-supplied-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_GeneratesIDWhenMissing(t *testing.T) {
	ctx, rec := runRequestIDMiddleware(t, "")

	requestID := deliverycontext.GetRequestIDFromContext(ctx)
	require.NotEmpty(t, requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err)
	assert.Equal(t, requestID, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_InstallsRequestScopedLogger(t *testing.T) {
	ctx, _ := runRequestIDMiddleware(t, "client-supplied-id")

	assert.NotNil(t, deliverycontext.GetLogger(ctx))
}
