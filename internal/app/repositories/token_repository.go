package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

// TokenRepository handles API token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate returns the user's token, storing candidateKey if the user has none.
// Concurrent callers for the same user all receive the single stored row.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID int64, candidateKey string) (*models.Token, error) {
	sql, args, err := r.sb.Insert("auth_tokens").
		Columns("key", "user_id", "created_at").
		Values(candidateKey, userID, time.Now()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id RETURNING key, user_id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get-or-create token SQL")
		return nil, fmt.Errorf("failed to build get-or-create token query: %w", err)
	}

	token := &models.Token{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&token.Key, &token.UserID, &token.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing get-or-create token query")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

// GetUserByKey resolves a token key to its owner
func (r *TokenRepository) GetUserByKey(ctx context.Context, key string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("auth_tokens t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.key": key}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get token SQL")
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	user := &models.User{}
	if err := scanUser(r.db.QueryRow(ctx, sql, args...), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token owner row")
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}
	return user, nil
}
