package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/auth"
)

// contextUserKey is where the authenticated user is stored on the gin context
const contextUserKey = "authUser"

// TokenResolver maps a presented token key to its owner
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*models.User, error)
}

// AuthMiddleware authenticates requests carrying an API token
type AuthMiddleware struct {
	resolver TokenResolver
	logger   zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver TokenResolver, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// RequireToken rejects the request with 401 unless it carries a valid token
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.authenticate(c)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if user == nil {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalToken attaches the user when a valid token is presented and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.authenticate(c)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if user != nil {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// authenticate returns (nil, nil) for anonymous requests and for tokens
// that are malformed, unknown or owned by an inactive user. Only store
// failures are returned as errors.
func (m *AuthMiddleware) authenticate(c *gin.Context) (*models.User, error) {
	key, err := auth.ExtractToken(c.GetHeader("Authorization"))
	if err != nil {
		if !errors.Is(err, auth.ErrMissingToken) {
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Ignoring malformed Authorization header")
		}
		return nil, nil
	}

	user, err := m.resolver.ResolveToken(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the user attached by the token middleware, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
