package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/auth"
)

// TokenStore persists the single API token of each user
type TokenStore interface {
	GetOrCreate(ctx context.Context, userID int64, candidateKey string) (*models.Token, error)
	GetUserByKey(ctx context.Context, key string) (*models.User, error)
}

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hashedPassword, password string) bool
}

// placeholderPassword is hashed once per service to give failed lookups a comparison target
const placeholderPassword = "alumniportal-placeholder-password"

// CredentialService hashes passwords and issues or resolves API tokens
type CredentialService struct {
	tokens    TokenStore
	hasher    PasswordHasher
	dummyHash string
	logger    zerolog.Logger
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(tokens TokenStore, hasher PasswordHasher, logger zerolog.Logger) *CredentialService {
	s := &CredentialService{
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
	hash, err := hasher.HashPassword(placeholderPassword)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to prepare placeholder password hash")
	}
	s.dummyHash = hash
	return s
}

// HashPassword returns the salted one-way hash of plaintext
func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hash, err := s.hasher.HashPassword(plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether plaintext matches hash
func (s *CredentialService) VerifyPassword(plaintext, hash string) bool {
	return s.hasher.CheckPassword(hash, plaintext)
}

// VerifyPlaceholder compares plaintext against a hash no account owns. Login
// calls it when there is no usable account, so every failure pays for one
// bcrypt comparison.
func (s *CredentialService) VerifyPlaceholder(plaintext string) {
	_ = s.hasher.CheckPassword(s.dummyHash, plaintext)
}

// IssueOrGetToken returns the user's token, creating it on first use.
// Repeated and concurrent calls for one user return the same key.
func (s *CredentialService) IssueOrGetToken(ctx context.Context, userID int64) (*models.Token, error) {
	candidate, err := auth.GenerateTokenKey()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token key")
		return nil, err
	}

	token, err := s.tokens.GetOrCreate(ctx, userID, candidate)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// ResolveToken maps a presented key to its active owner.
// Unknown keys and inactive owners yield apperrors.ErrUnauthenticated.
func (s *CredentialService) ResolveToken(ctx context.Context, key string) (*models.User, error) {
	user, err := s.tokens.GetUserByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		s.logger.Debug().Int64("userID", user.ID).Msg("Token owner is inactive")
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}
