package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/authclient"
)

const authUserKey = "auth_user"

type TokenValidator interface {
	Validate(ctx context.Context, token string) (authclient.User, error)
}

// Authenticator delegates bearer token checks to the auth service. Tokens that are JWTs with a
// past exp claim are refused locally.
type Authenticator struct {
	validator TokenValidator
	parser    *jwt.Parser
	now       func() time.Time
}

func NewAuthenticator(validator TokenValidator) *Authenticator {
	return &Authenticator{
		validator: validator,
		parser:    jwt.NewParser(),
		now:       time.Now,
	}
}

func (a *Authenticator) VerifyToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx.GetHeader("Authorization"))
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("missing token"))
			return
		}

		if a.expired(token) {
			response.RenderErr(ctx, response.ErrUnauthorized("token expired"))
			return
		}

		user, err := a.validator.Validate(ctx.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, authclient.ErrInvalidToken) {
				zap.L().Warn("auth service call failed", zap.Error(err))
			}
			response.RenderErr(ctx, response.ErrUnauthorized("invalid token"))
			return
		}

		ctx.Set(authUserKey, user)
		ctx.Next()
	}
}

// expired only reports true for well formed JWTs. Opaque tokens are left to the auth service.
func (a *Authenticator) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := a.parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(a.now())
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// AuthUser returns the user stored by VerifyToken.
func AuthUser(ctx *gin.Context) (authclient.User, bool) {
	v, ok := ctx.Get(authUserKey)
	if !ok {
		return authclient.User{}, false
	}
	user, ok := v.(authclient.User)

	return user, ok
}
