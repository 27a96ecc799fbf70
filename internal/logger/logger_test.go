package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		l, err := New(env)
		require.NoError(t, err, env)
		require.NotNil(t, l)
	}
	prod, _ := New("production")
	require.False(t, prod.Core().Enabled(zap.DebugLevel))
	dev, _ := New("development")
	require.True(t, dev.Core().Enabled(zap.DebugLevel))
}

func TestRequestLogger(t *testing.T) {
	t.Cleanup(func() { newRequestID = uuid.NewString })

	t.Run("keeps incoming id", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/products?x=1", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequestLogger(zap.New(core))(func(c echo.Context) error {
			require.Equal(t, "abc", RequestID(c))
			return c.String(http.StatusOK, "ok")
		})(c)
		require.NoError(t, err)
		require.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))
		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		require.Equal(t, "abc", fields["request_id"])
		require.Equal(t, "/products", fields["path"])
		require.Equal(t, "x=1", fields["query"])
		require.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("generates id and renders error", func(t *testing.T) {
		newRequestID = func() string { return "gen-1" }
		core, logs := observer.New(zap.InfoLevel)
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/boom", nil), rec)

		err := RequestLogger(zap.New(core))(func(echo.Context) error {
			return echo.NewHTTPError(http.StatusTeapot, errors.New("x").Error())
		})(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, "gen-1", rec.Header().Get(echo.HeaderXRequestID))
		require.EqualValues(t, http.StatusTeapot, logs.All()[0].ContextMap()["status"])
	})
}
