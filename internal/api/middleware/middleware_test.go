package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/authclient"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeValidator struct {
	calls int
	user  authclient.User
	err   error
}

func (f *fakeValidator) Validate(_ context.Context, _ string) (authclient.User, error) {
	f.calls++
	return f.user, f.err
}

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)

	return token
}

func newAuthRouter(v TokenValidator) *gin.Engine {
	router := gin.New()
	router.GET("/private", NewAuthenticator(v).VerifyToken(), func(ctx *gin.Context) {
		user, ok := AuthUser(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	return router
}

func get(router http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		validator  *fakeValidator
		wantCode   int
		wantBody   string
		wantCalled bool
	}{
		{
			name:      "missing header",
			validator: &fakeValidator{},
			wantCode:  http.StatusUnauthorized,
			wantBody:  `{"error":"missing token"}`,
		},
		{
			name:      "wrong scheme",
			header:    "Basic dXNlcjpwYXNz",
			validator: &fakeValidator{},
			wantCode:  http.StatusUnauthorized,
			wantBody:  `{"error":"missing token"}`,
		},
		{
			name:      "expired jwt is refused locally",
			header:    "Bearer " + mintToken(t, time.Now().Add(-time.Minute)),
			validator: &fakeValidator{},
			wantCode:  http.StatusUnauthorized,
			wantBody:  `{"error":"token expired"}`,
		},
		{
			name:       "live jwt",
			header:     "Bearer " + mintToken(t, time.Now().Add(time.Hour)),
			validator:  &fakeValidator{user: authclient.User{ID: 42}},
			wantCode:   http.StatusOK,
			wantBody:   `{"id":42}`,
			wantCalled: true,
		},
		{
			name:       "opaque token",
			header:     "bearer abc123",
			validator:  &fakeValidator{user: authclient.User{ID: 7}},
			wantCode:   http.StatusOK,
			wantBody:   `{"id":7}`,
			wantCalled: true,
		},
		{
			name:       "rejected by auth service",
			header:     "Bearer abc123",
			validator:  &fakeValidator{err: authclient.ErrInvalidToken},
			wantCode:   http.StatusUnauthorized,
			wantBody:   `{"error":"invalid token"}`,
			wantCalled: true,
		},
		{
			name:       "auth service down",
			header:     "Bearer abc123",
			validator:  &fakeValidator{err: errors.New("connection refused")},
			wantCode:   http.StatusUnauthorized,
			wantBody:   `{"error":"invalid token"}`,
			wantCalled: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newAuthRouter(tt.validator), "/private", tt.header)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantCalled, tt.validator.calls > 0)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	router := gin.New()
	router.Use(rl.Limit())
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	request := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, request("10.0.0.1").Code)

	rec := request("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, request("10.0.0.2").Code)

	time.Sleep(time.Millisecond)
	rl.Cleanup(0)
	assert.Equal(t, http.StatusOK, request("10.0.0.1").Code)
}

func TestConfigCORS(t *testing.T) {
	router := gin.New()
	router.Use(ConfigCORS([]string{"http://localhost:3000"}))
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetrics(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.GET("/missions/:id", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	rec := get(router, "/missions/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = get(router, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
