package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/app/models/dto"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

// NewestAlumniLimit is how many recent alumni the home screen lists
const NewestAlumniLimit = 5

// AlumniProfileNotFoundMessage is returned when the caller has no alumni profile
const AlumniProfileNotFoundMessage = "Alumni profile not found."

// AlumniReader reads alumni profiles
type AlumniReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Alumni, error)
	GetNewest(ctx context.Context, limit int) ([]*models.Alumni, error)
}

// EventReader lists events with their images
type EventReader interface {
	ListWithImages(ctx context.Context) ([]*models.Event, error)
}

// InternshipReader lists internships with their companies
type InternshipReader interface {
	ListWithCompany(ctx context.Context) ([]*models.InternshipOpportunity, error)
}

// HomeService assembles the authenticated home payload
type HomeService struct {
	alumni      AlumniReader
	events      EventReader
	internships InternshipReader
	logger      zerolog.Logger
}

// NewHomeService creates a new HomeService
func NewHomeService(alumni AlumniReader, events EventReader, internships InternshipReader, logger zerolog.Logger) *HomeService {
	return &HomeService{
		alumni:      alumni,
		events:      events,
		internships: internships,
		logger:      logger,
	}
}

// Home returns the caller's profile, every event, every internship and the
// newest alumni. Users without an alumni profile get a not-found error.
func (s *HomeService) Home(ctx context.Context, user *models.User) (*dto.HomeResponse, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	profile, err := s.alumni.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(AlumniProfileNotFoundMessage)
		}
		return nil, err
	}

	var (
		events      []*models.Event
		internships []*models.InternshipOpportunity
		newest      []*models.Alumni
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.ListWithImages(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		internships, err = s.internships.ListWithCompany(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		newest, err = s.alumni.GetNewest(gctx, NewestAlumniLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to load home data")
		return nil, err
	}

	return &dto.HomeResponse{
		User:        dto.FromAlumni(profile),
		Events:      dto.FromEvents(events),
		Internships: dto.FromInternships(internships),
		NewUsers:    dto.FromAlumniList(newest),
	}, nil
}
