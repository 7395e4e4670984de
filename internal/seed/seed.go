// Package seed fills an empty portal with sample content. Every step checks
// for existing rows first, so running it repeatedly is safe.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/alumniportal/internal/app/models"
	appRepos "github.com/yigit/alumniportal/internal/app/repositories"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/auth"
)

// Options controls the accounts created by the seed
type Options struct {
	AdminUsername string
	AdminPassword string
}

// DemoAlumniUsername is the sample alumnus created with an achievement
const DemoAlumniUsername = "demo.alumnus"

func strPtr(s string) *string { return &s }

var companies = []appModels.Company{
	{Name: "Acme Systems", Location: "Istanbul", Industry: "Software", Website: "https://acme.example.com"},
	{Name: "Northwind Energy", Location: "Ankara", Industry: "Energy", Website: "https://northwind.example.com"},
}

var events = []appModels.Event{
	{
		Title:       "Annual Alumni Reunion",
		Description: "An evening with classmates, faculty and friends.",
		Location:    "Main Campus Hall",
		StartDate:   time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 12, 23, 0, 0, 0, time.UTC),
		Images: []*appModels.EventImage{
			{Image: "/media/event_images/reunion-stage.jpg", Caption: strPtr("Opening talk")},
			{Image: "/media/event_images/reunion-dinner.jpg", Caption: strPtr("Dinner")},
			{Image: "/media/event_images/reunion-group.jpg", Caption: strPtr("Class photo")},
		},
	},
	{
		Title:       "Career Fair",
		Description: "Meet employers hiring graduates and interns.",
		Location:    "Engineering Building",
		StartDate:   time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 3, 17, 0, 0, 0, time.UTC),
	},
}

var internships = []struct {
	company string
	item    appModels.InternshipOpportunity
}{
	{"Acme Systems", appModels.InternshipOpportunity{
		Title:        "Backend Engineering Intern",
		Description:  "Work on the services behind our customer APIs.",
		Requirements: strPtr("Go or Python, SQL basics"),
		Location:     "Istanbul",
		PostedDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ApplyLink:    "https://acme.example.com/careers/backend-intern",
	}},
	{"Northwind Energy", appModels.InternshipOpportunity{
		Title:       "Data Analyst Intern",
		Description: "Help model consumption forecasts.",
		Location:    "Ankara",
		PostedDate:  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ApplyLink:   "https://northwind.example.com/jobs/data-intern",
	}},
}

// Seeder writes sample data through the repositories
type Seeder struct {
	repos  *appRepos.Repositories
	hasher *auth.PasswordHasher
	logger zerolog.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(repos *appRepos.Repositories, hasher *auth.PasswordHasher, lgr zerolog.Logger) *Seeder {
	return &Seeder{repos: repos, hasher: hasher, logger: lgr}
}

// Run creates whatever sample data is missing. A failing step does not stop
// the others; all failures are returned joined.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	s.logger.Info().Msg("Checking/Creating sample data...")
	var finalErr error

	companyIDs, err := s.seedCompanies(ctx)
	finalErr = errors.Join(finalErr, err)
	finalErr = errors.Join(finalErr, s.seedEvents(ctx))
	finalErr = errors.Join(finalErr, s.seedInternships(ctx, companyIDs))
	finalErr = errors.Join(finalErr, s.seedStaff(ctx, opts))
	finalErr = errors.Join(finalErr, s.seedAlumnus(ctx, companyIDs))

	s.logger.Info().Msg("Sample data check/creation finished.")
	return finalErr
}

func (s *Seeder) seedCompanies(ctx context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(companies))
	var finalErr error
	for _, c := range companies {
		company := c
		if err := s.repos.CompanyRepository.Upsert(ctx, &company); err != nil {
			s.logger.Error().Err(err).Str("company", company.Name).Msg("Error creating company")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		ids[company.Name] = company.ID
	}
	return ids, finalErr
}

func (s *Seeder) seedEvents(ctx context.Context) error {
	var finalErr error
	for _, e := range events {
		exists, err := s.repos.EventRepository.ExistsByTitle(ctx, e.Title)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		event := e
		event.Images = make([]*appModels.EventImage, 0, len(e.Images))
		for _, img := range e.Images {
			copied := *img
			event.Images = append(event.Images, &copied)
		}
		if err := s.repos.EventRepository.Create(ctx, &event); err != nil {
			s.logger.Error().Err(err).Str("event", event.Title).Msg("Error creating event")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		s.logger.Info().Int64("eventID", event.ID).Int("images", len(event.Images)).Msg("Event created")
	}
	return finalErr
}

func (s *Seeder) seedInternships(ctx context.Context, companyIDs map[string]int64) error {
	var finalErr error
	for _, in := range internships {
		companyID, ok := companyIDs[in.company]
		if !ok {
			continue
		}
		exists, err := s.repos.InternshipRepository.ExistsByTitle(ctx, companyID, in.item.Title)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		item := in.item
		item.CompanyID = companyID
		if err := s.repos.InternshipRepository.Create(ctx, &item); err != nil {
			s.logger.Error().Err(err).Str("internship", item.Title).Msg("Error creating internship")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

// seedStaff creates an administrator identity with no alumni profile
func (s *Seeder) seedStaff(ctx context.Context, opts Options) error {
	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		s.logger.Info().Msg("No admin credentials given, skipping staff account")
		return nil
	}

	exists, err := s.repos.UserRepository.UsernameExists(ctx, opts.AdminUsername)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		s.logger.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	hashed, err := s.hasher.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	admin := &appModels.User{
		Username:  opts.AdminUsername,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		IsStaff:   true,
		IsActive:  true,
	}
	if err := s.repos.UserRepository.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		s.logger.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	s.logger.Info().Int64("adminID", admin.ID).Msg("Default admin user created")
	return nil
}

// seedAlumnus creates one alumnus working at a sample company, with an achievement
func (s *Seeder) seedAlumnus(ctx context.Context, companyIDs map[string]int64) error {
	exists, err := s.repos.UserRepository.UsernameExists(ctx, DemoAlumniUsername)
	if err != nil || exists {
		return err
	}

	hashed, err := s.hasher.HashPassword(DemoAlumniUsername)
	if err != nil {
		return err
	}
	email := "demo.alumnus@example.com"
	alumni := &appModels.Alumni{
		Bio:             "Graduated in computer engineering, now building payment systems.",
		GraduationYear:  "2019",
		Major:           "Computer Engineering",
		CurrentPosition: "Software Engineer",
		ContactEmail:    &email,
		User: &appModels.User{
			Username:  DemoAlumniUsername,
			Password:  hashed,
			FirstName: "Demo",
			LastName:  "Alumnus",
			Email:     email,
			IsActive:  true,
		},
	}
	if id, ok := companyIDs["Acme Systems"]; ok {
		alumni.CurrentCompanyID = &id
	}

	if err := s.repos.AlumniRepository.CreateWithUser(ctx, alumni); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil
		}
		s.logger.Error().Err(err).Msg("Error creating demo alumnus")
		return err
	}

	achievement := &appModels.AlumniAchievement{
		AlumnusID:   alumni.UserID,
		Title:       "Best Graduation Project",
		Description: "Awarded for a distributed ledger prototype.",
		Date:        time.Date(2019, 6, 20, 0, 0, 0, 0, time.UTC),
	}
	if err := s.repos.AchievementRepository.Create(ctx, achievement); err != nil {
		s.logger.Error().Err(err).Msg("Error creating achievement")
		return err
	}
	return nil
}
