// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models/dto"
	"github.com/yigit/alumniportal/internal/middleware"
)

// Auth check messages
const (
	AuthenticatedMessage    = "Authenticated"
	NotAuthenticatedMessage = "Not Authenticated"
)

// AccountService registers and logs in alumni
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, upload *multipart.FileHeader) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthController handles authentication related operations
type AuthController struct {
	accounts AccountService
	logger   zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(accounts AccountService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		accounts: accounts,
		logger:   logger,
	}
}

// Register handles POST /register/ with a JSON or multipart body
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.BindBody(ctx, &req); err != nil {
		c.logger.Debug().Err(err).Msg("Invalid registration payload")
		middleware.HandleAPIError(ctx, err)
		return
	}

	upload, err := middleware.FormFile(ctx, "profile_image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.accounts.Register(ctx.Request.Context(), &req, upload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Login handles POST /login/
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.BindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.accounts.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", resp.UserID).Msg("User logged in")
	ctx.JSON(http.StatusOK, resp)
}

// Status handles GET /auth/ and reports whether the caller is authenticated
func (c *AuthController) Status(ctx *gin.Context) {
	if _, ok := middleware.CurrentUser(ctx); ok {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: AuthenticatedMessage})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: NotAuthenticatedMessage})
}
