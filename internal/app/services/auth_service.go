package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/app/models/dto"
	"github.com/yigit/alumniportal/internal/metrics"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/filestorage"
	"github.com/yigit/alumniportal/internal/pkg/sanitize"
	"github.com/yigit/alumniportal/internal/pkg/validation"
)

// Registration messages
const (
	UsernameTakenMessage   = "A user with that username already exists."
	NoFileSubmittedMessage = "No file was submitted."
	InvalidImageMessage    = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

// ProfileImageDir is the media subdirectory for alumni profile images
const ProfileImageDir = "alumni_images"

// UserStore looks up identities
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// AlumniWriter creates an identity and its profile atomically
type AlumniWriter interface {
	CreateWithUser(ctx context.Context, alumni *models.Alumni) error
}

// AuthService handles alumni registration and login
type AuthService struct {
	users       UserStore
	alumni      AlumniWriter
	credentials *CredentialService
	storage     filestorage.FileStorage
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users UserStore,
	alumni AlumniWriter,
	credentials *CredentialService,
	storage filestorage.FileStorage,
	validator *validation.Validator,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		alumni:      alumni,
		credentials: credentials,
		storage:     storage,
		validator:   validator,
		logger:      logger,
	}
}

// Register creates an alumni account and returns it with the account's token.
// upload carries the multipart profile image; without it req.ProfileImage must
// hold an existing media reference. Field problems are reported together as
// a *apperrors.ValidationError.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, upload *multipart.FileHeader) (*dto.RegisterResponse, error) {
	if req == nil {
		req = &dto.RegisterRequest{}
	}
	sanitizeRegistration(req)

	verr, err := s.validate(req)
	if err != nil {
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeError)
		return nil, err
	}
	if upload == nil && strings.TrimSpace(req.ProfileImage) == "" {
		verr.Add("profile_image", NoFileSubmittedMessage)
	}
	if upload != nil && !filestorage.IsImageFilename(upload.Filename) {
		verr.Add("profile_image", InvalidImageMessage)
	}
	if _, bad := verr.Fields["username"]; !bad {
		exists, err := s.users.UsernameExists(ctx, req.Username)
		if err != nil {
			metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeError)
			return nil, err
		}
		if exists {
			verr.Add("username", UsernameTakenMessage)
		}
	}
	if verr.HasErrors() {
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeInvalid)
		return nil, verr
	}

	hash, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password during registration")
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeError)
		return nil, err
	}

	imageRef := strings.TrimSpace(req.ProfileImage)
	var savedRef string
	if upload != nil {
		savedRef, err = s.storage.SaveFileWithPath(upload, ProfileImageDir)
		if err != nil {
			metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeError)
			return nil, err
		}
		imageRef = savedRef
	}

	contactEmail := req.ContactEmail
	alumni := &models.Alumni{
		ProfileImage:    imageRef,
		Bio:             req.Bio,
		GraduationYear:  req.GraduationYear,
		Major:           req.Major,
		CurrentPosition: req.CurrentPosition,
		ContactEmail:    &contactEmail,
		User: &models.User{
			Username:  req.Username,
			Password:  hash,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     contactEmail,
			IsActive:  true,
		},
	}

	if err := s.alumni.CreateWithUser(ctx, alumni); err != nil {
		s.discardUpload(savedRef)
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeInvalid)
			return nil, apperrors.NewFieldError("username", UsernameTakenMessage)
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create alumni")
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeError)
		return nil, err
	}

	token, err := s.credentials.IssueOrGetToken(ctx, alumni.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", alumni.UserID).Msg("Failed to issue token after registration")
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeError)
		return nil, err
	}

	s.logger.Info().Int64("userID", alumni.UserID).Str("username", req.Username).Msg("Alumni registered")
	metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeSuccess)

	return &dto.RegisterResponse{
		Message: dto.RegisterSuccessMessage,
		Data:    dto.FromRegisteredAlumni(alumni),
		Token:   token.Key,
	}, nil
}

// Login exchanges a username and password for the account's token.
// Every authentication failure returns apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req == nil {
		req = &dto.LoginRequest{}
	}

	verr, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeInvalid)
		return nil, verr
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.credentials.VerifyPlaceholder(req.Password)
			metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeInvalid)
			return nil, apperrors.ErrInvalidCredentials
		}
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeError)
		return nil, err
	}

	// the hash is checked even for inactive users
	passwordOK := s.credentials.VerifyPassword(req.Password, user.Password)
	if !user.IsActive || !passwordOK {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login rejected")
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeInvalid)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.credentials.IssueOrGetToken(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue token on login")
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeError)
		return nil, err
	}

	metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeSuccess)
	return &dto.LoginResponse{
		Token:   token.Key,
		UserID:  user.ID,
		Email:   user.Email,
		Message: dto.LoginSuccessMessage,
	}, nil
}

// validate always returns a usable ValidationError unless err is set
func (s *AuthService) validate(obj interface{}) (*apperrors.ValidationError, error) {
	err := s.validator.Struct(obj)
	if err == nil {
		return apperrors.NewValidationError(), nil
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return verr, nil
	}
	return nil, err
}

func (s *AuthService) discardUpload(ref string) {
	if ref == "" {
		return
	}
	if err := s.storage.DeleteFile(ref); err != nil {
		s.logger.Warn().Err(err).Str("ref", ref).Msg("Failed to remove orphaned profile image")
	}
}

func sanitizeRegistration(req *dto.RegisterRequest) {
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = sanitize.Text(req.FirstName)
	req.LastName = sanitize.Text(req.LastName)
	req.Bio = sanitize.Text(req.Bio)
	req.Major = sanitize.Text(req.Major)
	req.CurrentPosition = sanitize.Text(req.CurrentPosition)
	req.GraduationYear = strings.TrimSpace(req.GraduationYear)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
}
