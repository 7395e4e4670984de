package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniportal/internal/app/models/dto"
)

// NamedRoute is a public route listed by the index
type NamedRoute struct {
	Name string
	Path string
}

// Pinger checks a backing dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexController serves the route index and the health check
type IndexController struct {
	routes    []NamedRoute
	publicURL string
	db        Pinger
}

// NewIndexController creates a new IndexController. When publicURL is empty,
// absolute URLs are derived from each request.
func NewIndexController(routes []NamedRoute, publicURL string, db Pinger) *IndexController {
	return &IndexController{
		routes:    routes,
		publicURL: strings.TrimRight(publicURL, "/"),
		db:        db,
	}
}

// Index handles GET / and maps every route name to its absolute URL
func (c *IndexController) Index(ctx *gin.Context) {
	base := c.publicURL
	if base == "" {
		base = requestBaseURL(ctx.Request)
	}

	links := make(map[string]string, len(c.routes))
	for _, r := range c.routes {
		links[r.Name] = base + r.Path
	}
	ctx.JSON(http.StatusOK, links)
}

// Health handles GET /health
func (c *IndexController) Health(ctx *gin.Context) {
	if c.db != nil {
		if err := c.db.Ping(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
