package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// User is the authenticated account as reported by the auth service.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type validateResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user"`
}

// Client asks the external auth service whether a bearer token is valid.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(conf *config.AuthConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.ServiceURL, "/"),
		http:    &http.Client{Timeout: conf.Timeout},
	}
}

// Validate returns ErrInvalidToken when the service rejects the token. Transport failures are
// returned wrapped.
func (c *Client) Validate(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/validate", nil)
	if err != nil {
		return User{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("c.http.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return User{}, fmt.Errorf("auth service answered %d after %s -> %w", resp.StatusCode, time.Since(start), ErrInvalidToken)
	}

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return User{}, fmt.Errorf("decode validate response -> %w", err)
	}
	if !body.Valid || body.User == nil {
		return User{}, ErrInvalidToken
	}

	return *body.User, nil
}
