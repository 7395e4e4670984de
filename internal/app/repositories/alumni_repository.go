package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/db"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/dberrors"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

var alumniColumns = append([]string{
	"a.user_id", "a.profile_image", "a.bio", "a.graduation_year", "a.major",
	"a.current_position", "a.current_company_id", "a.contact_email",
}, userColumns...)

// AlumniRepository handles alumni profile database operations
type AlumniRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(db *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAlumni(row pgx.Row) (*models.Alumni, error) {
	alumni := &models.Alumni{User: &models.User{}}
	u := alumni.User
	err := row.Scan(
		&alumni.UserID, &alumni.ProfileImage, &alumni.Bio, &alumni.GraduationYear, &alumni.Major,
		&alumni.CurrentPosition, &alumni.CurrentCompanyID, &alumni.ContactEmail,
		&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName,
		&u.Email, &u.IsStaff, &u.IsActive, &u.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return alumni, nil
}

// CreateWithUser inserts alumni.User and the profile in one transaction.
// Either both rows exist afterwards or neither does. A taken username
// yields apperrors.ErrResourceAlreadyExists.
func (r *AlumniRepository) CreateWithUser(ctx context.Context, alumni *models.Alumni) error {
	if alumni.User == nil {
		return errors.New("alumni has no user")
	}
	u := alumni.User

	userSQL, userArgs, err := r.sb.Insert("users").
		Columns("username", "password", "first_name", "last_name", "email", "is_staff", "is_active").
		Values(u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.IsStaff, u.IsActive).
		Suffix("RETURNING id, date_joined").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, userSQL, userArgs...).Scan(&u.ID, &u.DateJoined); err != nil {
			if dberrors.IsDuplicateConstraintError(err, UsernameConstraint) {
				return fmt.Errorf("%w: username %q", apperrors.ErrResourceAlreadyExists, u.Username)
			}
			logger.Error().Err(err).Str("username", u.Username).Msg("Error executing create user query")
			return fmt.Errorf("error creating user: %w", err)
		}
		alumni.UserID = u.ID

		sql, args, err := r.sb.Insert("alumni").
			Columns("user_id", "profile_image", "bio", "graduation_year", "major",
				"current_position", "current_company_id", "contact_email").
			Values(alumni.UserID, alumni.ProfileImage, alumni.Bio, alumni.GraduationYear, alumni.Major,
				alumni.CurrentPosition, alumni.CurrentCompanyID, alumni.ContactEmail).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create alumni query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("userID", alumni.UserID).Msg("Error executing create alumni query")
			return fmt.Errorf("error creating alumni: %w", err)
		}
		return nil
	})
}

// GetByUserID retrieves the profile of a user together with the user
func (r *AlumniRepository) GetByUserID(ctx context.Context, userID int64) (*models.Alumni, error) {
	sql, args, err := r.sb.Select(alumniColumns...).
		From("alumni a").
		Join("users u ON u.id = a.user_id").
		Where(squirrel.Eq{"a.user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get alumni SQL")
		return nil, fmt.Errorf("failed to build get alumni query: %w", err)
	}

	alumni, err := scanAlumni(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning alumni row")
		return nil, fmt.Errorf("error retrieving alumni: %w", err)
	}
	return alumni, nil
}

// GetNewest returns up to limit alumni, most recently joined first
func (r *AlumniRepository) GetNewest(ctx context.Context, limit int) ([]*models.Alumni, error) {
	sql, args, err := r.sb.Select(alumniColumns...).
		From("alumni a").
		Join("users u ON u.id = a.user_id").
		OrderBy("u.date_joined DESC", "u.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building newest alumni SQL")
		return nil, fmt.Errorf("failed to build newest alumni query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying newest alumni")
		return nil, fmt.Errorf("error querying newest alumni: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Alumni, 0, limit)
	for rows.Next() {
		alumni, err := scanAlumni(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alumni row: %w", err)
		}
		result = append(result, alumni)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alumni rows: %w", err)
	}
	return result, nil
}
