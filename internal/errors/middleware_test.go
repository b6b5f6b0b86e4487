package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMiddlewareWithStructuredError(t *testing.T) {
	c, rec := newContext()
	HTTPErrorsTotal.Reset()

	handler := Middleware()(func(c echo.Context) error {
		return ValidationError("No text provided")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "No text provided", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPErrorsTotal.WithLabelValues("validation")))
}

func TestMiddlewareWithStandardError(t *testing.T) {
	c, rec := newContext()
	HTTPErrorsTotal.Reset()

	handler := Middleware()(func(c echo.Context) error {
		return fmt.Errorf("standard error")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPErrorsTotal.WithLabelValues("internal")))
}

func TestMiddlewareWithStageContext(t *testing.T) {
	c, rec := newContext()

	handler := Middleware()(func(c echo.Context) error {
		return InternalError("analysis failed", fmt.Errorf("crashed")).WithContext("stage", "sentiment_scored")
	})

	require.NoError(t, handler(c))
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sentiment_scored", resp.Context["stage"])
}

func TestMiddlewarePassesEchoErrors(t *testing.T) {
	c, rec := newContext()
	HTTPErrorsTotal.Reset()

	handler := Middleware()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	})

	err := handler(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "nothing is written for echo errors")
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPErrorsTotal.WithLabelValues("validation")))
}

func TestMiddlewareWithNoError(t *testing.T) {
	c, rec := newContext()

	handler := Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWrapHTTPError(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorType
		desc     string
	}{
		{http.StatusBadRequest, TypeValidation, "Bad request"},
		{http.StatusRequestEntityTooLarge, TypeValidation, "Body too large"},
		{http.StatusNotFound, TypeNotFound, "Unknown route"},
		{http.StatusServiceUnavailable, TypeUnavailable, "Unavailable"},
		{http.StatusMethodNotAllowed, TypeInternal, "Other codes"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, WrapHTTPError(echo.NewHTTPError(tt.code)).Type)
		})
	}

	wrapped := WrapHTTPError(echo.NewHTTPError(http.StatusBadRequest, "bad json"))
	assert.Equal(t, "bad json", wrapped.Message)
}
