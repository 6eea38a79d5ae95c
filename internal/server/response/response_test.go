package response

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"count":2},"error":null}`, rec.Body.String())
}

func TestOKUnencodableBody(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]float64{"ra": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Nil(t, resp.Data)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad", "") }, http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "gone", "") }, http.StatusNotFound, "NOT_FOUND"},
		{"method", func(w http.ResponseWriter) { MethodNotAllowed(w, "PUT") }, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"rate", func(w http.ResponseWriter) { RateLimited(w, "slow down") }, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", func(w http.ResponseWriter) { InternalError(w, errors.New("secret")) }, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", func(w http.ResponseWriter) { ServiceUnavailable(w, "loading") }, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec, errors.New("db password is hunter2"))
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errors.NewValidationError("ra", "x", "not a number"), http.StatusBadRequest},
		{"parse", errors.NewParseError("sexagesimal", "", "bad field", nil), http.StatusBadRequest},
		{"not found", errors.NewNotFoundError("instrument", "hipercam"), http.StatusNotFound},
		{"unavailable", errors.WrapResource("read", "catalog", "ultracam", errors.ErrUnavailable), http.StatusServiceUnavailable},
		{"canceled", errors.WrapResource("reload", "catalog", "ultracam", errors.ErrCanceled), http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorFromType(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
