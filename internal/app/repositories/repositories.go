package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	AlumniRepository      *AlumniRepository
	TokenRepository       *TokenRepository
	CompanyRepository     *CompanyRepository
	EventRepository       *EventRepository
	InternshipRepository  *InternshipRepository
	AchievementRepository *AchievementRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		AlumniRepository:      NewAlumniRepository(db),
		TokenRepository:       NewTokenRepository(db),
		CompanyRepository:     NewCompanyRepository(db),
		EventRepository:       NewEventRepository(db),
		InternshipRepository:  NewInternshipRepository(db),
		AchievementRepository: NewAchievementRepository(db),
	}
}
