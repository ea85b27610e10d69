package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/authclient"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/config"
)

type fakeValidator struct {
	token string
}

func (f fakeValidator) Validate(_ context.Context, token string) (authclient.User, error) {
	if token != f.token {
		return authclient.User{}, authclient.ErrInvalidToken
	}

	return authclient.User{ID: 1, Email: "admin@relief.org"}, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Environment: "development",
			Port:        "8080",
			BaseURL:     "localhost:8080",
			LogLevel:    "info",
		},
		Gin:       &config.GinConfig{Mode: "test"},
		Postgres:  &config.PostgresConfig{},
		Auth:      &config.AuthConfig{},
		RateLimit: &config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		Defaults:  &config.DefaultsConfig{CityID: 1},
	}
}

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := NewServer(testConfig(), db, fakeValidator{token: "good-token"})
	require.NoError(t, err)

	return s, mock
}

func do(s *Server, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	return rec
}

func TestServer_PublicRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/status", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/swagger/doc.json", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(s, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := do(s, http.MethodGet, "/", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_ProtectedRoutes(t *testing.T) {
	s, mock := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/v1/missions", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"missing token"}`, rec.Body.String())
	})

	t.Run("rejected token", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/v1/item-types", "bad-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "item_types"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit"}).AddRow(1, "Rice", "kg"))

		rec := do(s, http.MethodGet, "/api/v1/item-types", "good-token")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data []struct {
				ID   uint   `json:"id"`
				Name string `json:"name"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Rice", body.Data[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("static segment next to id", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM "missions"`).
			WillReturnError(errors.New("db closed"))

		rec := do(s, http.MethodGet, "/api/v1/missions/available", "good-token")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/v1/tombolas", "good-token")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
