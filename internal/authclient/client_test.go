package authclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&config.AuthConfig{ServiceURL: srv.URL + "/", Timeout: time.Second})
}

func TestClient_Validate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/validate", r.URL.Path)

		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_, _ = w.Write([]byte(`{"valid": true, "user": {"id": 4, "name": "Ana", "email": "ana@example.org"}}`))
		case "Bearer revoked":
			_, _ = w.Write([]byte(`{"valid": false}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	user, err := client.Validate(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, User{ID: 4, Name: "Ana", Email: "ana@example.org"}, user)

	_, err = client.Validate(context.Background(), "revoked")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = client.Validate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClient_Validate_Unreachable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Validate(ctx, "good")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidToken))
}
