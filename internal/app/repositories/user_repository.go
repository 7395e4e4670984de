package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/dberrors"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

// UsernameConstraint is the unique constraint guarding users.username
const UsernameConstraint = "users_username_key"

var userColumns = []string{
	"u.id", "u.username", "u.password", "u.first_name", "u.last_name",
	"u.email", "u.is_staff", "u.is_active", "u.date_joined",
}

// UserRepository handles identity database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID, &user.Username, &user.Password, &user.FirstName, &user.LastName,
		&user.Email, &user.IsStaff, &user.IsActive, &user.DateJoined,
	)
}

// Create inserts a bare identity, e.g. a staff account without an alumni profile
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "password", "first_name", "last_name", "email", "is_staff", "is_active").
		Values(user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.IsStaff, user.IsActive).
		Suffix("RETURNING id, date_joined").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.DateJoined); err != nil {
		if dberrors.IsDuplicateConstraintError(err, UsernameConstraint) {
			return fmt.Errorf("%w: username %q", apperrors.ErrResourceAlreadyExists, user.Username)
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by exact username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.username": username})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users u").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	if err := scanUser(r.db.QueryRow(ctx, sql, args...), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error checking username")
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}
