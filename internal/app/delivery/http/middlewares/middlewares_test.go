package middlewares

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doctor-booking-service/internal/app/config"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		JWT: config.AppJWT{Secret: "middleware-secret"},
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) exceptions.CustomError {
	t.Helper()
	var body exceptions.CustomError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()

	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, exceptions.KindInternal, decodeError(t, rec).Kind)
}

func TestErrorHandlerRepanicsOnAbort(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	m := newTestMiddlewares()

	var caller string
	handler := m.Authenticate(m.RequireRole(constvars.RoleDoctor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := CallerIdentityFromContext(r.Context())
		require.NoError(t, err)
		caller = identity.ID
		w.WriteHeader(http.StatusNoContent)
	})))

	doctorToken, err := utils.GenerateAccessToken("doc-1", constvars.RoleDoctor, "middleware-secret", time.Hour)
	require.NoError(t, err)
	patientToken, err := utils.GenerateAccessToken("pat-1", constvars.RolePatient, "middleware-secret", time.Hour)
	require.NoError(t, err)
	expiredToken, err := utils.GenerateAccessToken("doc-1", constvars.RoleDoctor, "middleware-secret", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		kind   exceptions.Kind
	}{
		{"missing header", "", http.StatusUnauthorized, exceptions.KindUnauthorized},
		{"basic scheme", "Basic abc", http.StatusUnauthorized, exceptions.KindUnauthorized},
		{"expired", constvars.AuthorizationBearerPrefix + expiredToken, http.StatusUnauthorized, exceptions.KindUnauthorized},
		{"wrong role", constvars.AuthorizationBearerPrefix + patientToken, http.StatusForbidden, exceptions.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constvars.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, decodeError(t, rec).Kind)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+doctorToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "doc-1", caller)
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(2, time.Second, 10*time.Second, zap.NewNop())
	current := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	call := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))

	// Still blocked although a token has been refilled.
	current = current.Add(5 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1003"))

	current = current.Add(10 * time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1004"))
}

func TestBodyLimit(t *testing.T) {
	m := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{RequestBodyLimitInMegabyte: 1},
	})

	var readErr error
	handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 2<<20)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	body := make([]byte, 2<<20)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}
