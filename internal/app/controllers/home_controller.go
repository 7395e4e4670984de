package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/app/models/dto"
	"github.com/yigit/alumniportal/internal/middleware"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

// HomeProvider builds the home payload for an authenticated user
type HomeProvider interface {
	Home(ctx context.Context, user *models.User) (*dto.HomeResponse, error)
}

// HomeController serves the authenticated home screen
type HomeController struct {
	home   HomeProvider
	logger zerolog.Logger
}

// NewHomeController creates a new HomeController
func NewHomeController(home HomeProvider, logger zerolog.Logger) *HomeController {
	return &HomeController{
		home:   home,
		logger: logger,
	}
}

// Home handles GET /home/
func (c *HomeController) Home(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	resp, err := c.home.Home(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
