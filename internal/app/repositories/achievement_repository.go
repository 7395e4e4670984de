package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/dberrors"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

// AchievementRepository handles alumni achievement database operations
type AchievementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an achievement for an alumnus
func (r *AchievementRepository) Create(ctx context.Context, a *models.AlumniAchievement) error {
	sql, args, err := r.sb.Insert("alumni_achievements").
		Columns("alumnus_id", "title", "description", "date").
		Values(a.AlumnusID, a.Title, a.Description, a.Date).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create achievement SQL")
		return fmt.Errorf("failed to build create achievement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return fmt.Errorf("%w: alumnus %d", apperrors.ErrResourceNotFound, a.AlumnusID)
		}
		logger.Error().Err(err).Int64("alumnusID", a.AlumnusID).Msg("Error executing create achievement query")
		return fmt.Errorf("error creating achievement: %w", err)
	}
	return nil
}

// ListByAlumnus returns an alumnus' achievements, newest first
func (r *AchievementRepository) ListByAlumnus(ctx context.Context, alumnusID int64) ([]*models.AlumniAchievement, error) {
	sql, args, err := r.sb.Select("id", "alumnus_id", "title", "description", "date").
		From("alumni_achievements").
		Where(squirrel.Eq{"alumnus_id": alumnusID}).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list achievements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("alumnusID", alumnusID).Msg("Error querying achievements")
		return nil, fmt.Errorf("error querying achievements: %w", err)
	}
	defer rows.Close()

	result := make([]*models.AlumniAchievement, 0)
	for rows.Next() {
		a := &models.AlumniAchievement{}
		if err := rows.Scan(&a.ID, &a.AlumnusID, &a.Title, &a.Description, &a.Date); err != nil {
			return nil, fmt.Errorf("error scanning achievement row: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}
	return result, nil
}
