package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedLevel zapcore.Level
	}{
		{name: "page", status: http.StatusOK, body: "hello", expectedLevel: zapcore.InfoLevel},
		{name: "redirect", status: http.StatusFound, expectedLevel: zapcore.InfoLevel},
		{name: "bad csrf", status: http.StatusBadRequest, body: "bad", expectedLevel: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, body: "error", expectedLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)

			var seenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = RequestIDFromContext(r.Context())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			rr := httptest.NewRecorder()
			LoggingMiddleware(zap.New(core).Sugar())(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users?page=2", nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())

			reqID := rr.Header().Get(RequestIDHeader)
			_, err := uuid.Parse(reqID)
			require.NoError(t, err)
			assert.Equal(t, reqID, seenID)

			entries := logs.FilterMessage("request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, int64(len(tt.body)), fields["bytes"])
			assert.Equal(t, "/users?page=2", fields["uri"])
			assert.Equal(t, reqID, fields["request_id"])
		})
	}
}

func TestLoggingMiddleware_RequestIDHeader(t *testing.T) {
	incoming := uuid.NewString()

	tests := []struct {
		name     string
		header   string
		expectID func(t *testing.T, got string)
	}{
		{
			name:   "uuid is reused",
			header: incoming,
			expectID: func(t *testing.T, got string) {
				assert.Equal(t, incoming, got)
			},
		},
		{
			name:   "garbage is replaced",
			header: "<script>",
			expectID: func(t *testing.T, got string) {
				assert.NotEqual(t, "<script>", got)
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = RequestIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(RequestIDHeader, tt.header)
			rr := httptest.NewRecorder()
			LoggingMiddleware(zap.NewNop().Sugar())(next).ServeHTTP(rr, req)

			tt.expectID(t, seenID)
			assert.Equal(t, seenID, rr.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
