package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniportal/internal/app/controllers"
	"github.com/yigit/alumniportal/internal/middleware"
)

// AuthRequirement states how a route treats the token middleware
type AuthRequirement int

const (
	// AuthNone skips token authentication
	AuthNone AuthRequirement = iota
	// AuthOptional attaches the user when a valid token is presented
	AuthOptional
	// AuthRequired rejects requests without a valid token
	AuthRequired
)

// Route is one public, named endpoint
type Route struct {
	Name   string
	Method string
	Path   string
	Auth   AuthRequirement
}

// Table lists every named route; names are what the index reports
var Table = []Route{
	{Name: "index", Method: http.MethodGet, Path: "/", Auth: AuthNone},
	{Name: "alumni-register", Method: http.MethodPost, Path: "/register/", Auth: AuthNone},
	{Name: "alumni-login", Method: http.MethodPost, Path: "/login/", Auth: AuthNone},
	{Name: "home", Method: http.MethodGet, Path: "/home/", Auth: AuthRequired},
	{Name: "Auth", Method: http.MethodGet, Path: "/auth/", Auth: AuthOptional},
}

// Handlers maps a route name to its handler
type Handlers map[string]gin.HandlerFunc

// NewHandlers binds the controllers to the route names in Table
func NewHandlers(auth *controllers.AuthController, home *controllers.HomeController, index *controllers.IndexController) Handlers {
	return Handlers{
		"index":           index.Index,
		"alumni-register": auth.Register,
		"alumni-login":    auth.Login,
		"home":            home.Home,
		"Auth":            auth.Status,
	}
}

// NamedRoutes returns the index entries for Table
func NamedRoutes() []controllers.NamedRoute {
	named := make([]controllers.NamedRoute, 0, len(Table))
	for _, r := range Table {
		named = append(named, controllers.NamedRoute{Name: r.Name, Path: r.Path})
	}
	return named
}

// SetupRouter registers every route in Table with its auth middleware
func SetupRouter(router gin.IRouter, handlers Handlers, authMiddleware *middleware.AuthMiddleware) error {
	for _, r := range Table {
		handler, ok := handlers[r.Name]
		if !ok {
			return fmt.Errorf("no handler for route %q", r.Name)
		}

		chain := make([]gin.HandlerFunc, 0, 2)
		switch r.Auth {
		case AuthRequired:
			chain = append(chain, authMiddleware.RequireToken())
		case AuthOptional:
			chain = append(chain, authMiddleware.OptionalToken())
		}
		chain = append(chain, handler)

		router.Handle(r.Method, r.Path, chain...)
	}
	return nil
}
