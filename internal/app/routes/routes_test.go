package routes

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumniportal/internal/app/controllers"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/app/models/dto"
	"github.com/yigit/alumniportal/internal/middleware"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

const aliceKey = "0123456789abcdef0123456789abcdef01234567"

func init() {
	gin.SetMode(gin.TestMode)
}

type resolver struct{}

func (resolver) ResolveToken(_ context.Context, key string) (*models.User, error) {
	if key == aliceKey {
		return &models.User{ID: 1, Username: "alice", IsActive: true}, nil
	}
	return nil, apperrors.ErrUnauthenticated
}

type accounts struct{}

func (accounts) Register(context.Context, *dto.RegisterRequest, *multipart.FileHeader) (*dto.RegisterResponse, error) {
	return &dto.RegisterResponse{Message: dto.RegisterSuccessMessage}, nil
}

func (accounts) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, apperrors.ErrInvalidCredentials
}

type home struct{}

func (home) Home(_ context.Context, user *models.User) (*dto.HomeResponse, error) {
	return &dto.HomeResponse{User: dto.AlumniView{ID: user.ID, Username: user.Username}}, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger := zerolog.Nop()
	handlers := NewHandlers(
		controllers.NewAuthController(accounts{}, logger),
		controllers.NewHomeController(home{}, logger),
		controllers.NewIndexController(NamedRoutes(), "http://portal.test", nil),
	)
	router := gin.New()
	require.NoError(t, SetupRouter(router, handlers, middleware.NewAuthMiddleware(resolver{}, logger)))
	return router
}

func serve(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouteAuthRequirements(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"index is public", http.MethodGet, "/", "", http.StatusOK},
		{"register is public", http.MethodPost, "/register/", "", http.StatusCreated},
		{"login is public", http.MethodPost, "/login/", "", http.StatusBadRequest},
		{"home needs a token", http.MethodGet, "/home/", "", http.StatusUnauthorized},
		{"home rejects unknown token", http.MethodGet, "/home/", "ffffffffffffffffffffffffffffffffffffffff", http.StatusUnauthorized},
		{"home with token", http.MethodGet, "/home/", aliceKey, http.StatusOK},
		{"auth check anonymous", http.MethodGet, "/auth/", "", http.StatusOK},
		{"auth check with bad token", http.MethodGet, "/auth/", "ffffffffffffffffffffffffffffffffffffffff", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(router, tt.method, tt.path, tt.token).Code)
		})
	}
}

func TestAuthStatusReflectsToken(t *testing.T) {
	router := newRouter(t)

	var body dto.MessageResponse
	require.NoError(t, json.Unmarshal(serve(router, http.MethodGet, "/auth/", aliceKey).Body.Bytes(), &body))
	assert.Equal(t, controllers.AuthenticatedMessage, body.Message)

	require.NoError(t, json.Unmarshal(serve(router, http.MethodGet, "/auth/", "").Body.Bytes(), &body))
	assert.Equal(t, controllers.NotAuthenticatedMessage, body.Message)
}

func TestIndexListsEveryRoute(t *testing.T) {
	router := newRouter(t)

	var links map[string]string
	require.NoError(t, json.Unmarshal(serve(router, http.MethodGet, "/", "").Body.Bytes(), &links))

	assert.Equal(t, map[string]string{
		"index":           "http://portal.test/",
		"alumni-register": "http://portal.test/register/",
		"alumni-login":    "http://portal.test/login/",
		"home":            "http://portal.test/home/",
		"Auth":            "http://portal.test/auth/",
	}, links)
}

func TestSetupRouterMissingHandler(t *testing.T) {
	handlers := Handlers{"index": func(c *gin.Context) {}}
	err := SetupRouter(gin.New(), handlers, middleware.NewAuthMiddleware(resolver{}, zerolog.Nop()))
	assert.ErrorContains(t, err, "no handler for route")
}
