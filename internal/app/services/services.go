// Package services holds the portal's business logic. Services depend on
// small store interfaces that the repositories package satisfies.
package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/repositories"
	"github.com/yigit/alumniportal/internal/pkg/auth"
	"github.com/yigit/alumniportal/internal/pkg/filestorage"
	"github.com/yigit/alumniportal/internal/pkg/validation"
)

// Services holds all the service instances
type Services struct {
	Credentials *CredentialService
	Auth        *AuthService
	Home        *HomeService
}

// NewServices wires every service to the repositories
func NewServices(
	repos *repositories.Repositories,
	storage filestorage.FileStorage,
	hasher *auth.PasswordHasher,
	validator *validation.Validator,
	logger zerolog.Logger,
) *Services {
	credentials := NewCredentialService(repos.TokenRepository, hasher, logger.With().Str("service", "credentials").Logger())
	return &Services{
		Credentials: credentials,
		Auth: NewAuthService(repos.UserRepository, repos.AlumniRepository, credentials, storage, validator,
			logger.With().Str("service", "auth").Logger()),
		Home: NewHomeService(repos.AlumniRepository, repos.EventRepository, repos.InternshipRepository,
			logger.With().Str("service", "home").Logger()),
	}
}
