package middleware

import (
	"authsvc/internal/core/domain/logging"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	cases := []struct {
		status        int
		expectedLevel string
	}{
		{status: 0, expectedLevel: logging.INFO},
		{status: http.StatusCreated, expectedLevel: logging.INFO},
		{status: http.StatusNotFound, expectedLevel: logging.WARNING},
		{status: http.StatusInternalServerError, expectedLevel: logging.ERROR},
	}
	for _, testcase := range cases {
		t.Run(http.StatusText(testcase.status), func(t *testing.T) {
			log := logging.NewFakeLogger()
			handler := RequestLogger(log)(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
				if testcase.status != 0 {
					rw.WriteHeader(testcase.status)
				}
			}))

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Len(t, log.Logged, 1)
			record := log.Logged[0]
			assert.Equal(t, testcase.expectedLevel, record.Level)
			assert.Equal(t, "Request completed.", record.Msg)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "form-action 'self'")
}
