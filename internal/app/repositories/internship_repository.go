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

// InternshipRepository handles internship opportunity database operations
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an internship for an existing company
func (r *InternshipRepository) Create(ctx context.Context, in *models.InternshipOpportunity) error {
	sql, args, err := r.sb.Insert("internship_opportunities").
		Columns("title", "description", "requirements", "location", "company_id", "posted_date", "apply_link").
		Values(in.Title, in.Description, in.Requirements, in.Location, in.CompanyID, in.PostedDate, in.ApplyLink).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create internship SQL")
		return fmt.Errorf("failed to build create internship query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&in.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return fmt.Errorf("%w: company %d", apperrors.ErrResourceNotFound, in.CompanyID)
		}
		logger.Error().Err(err).Str("title", in.Title).Msg("Error executing create internship query")
		return fmt.Errorf("error creating internship: %w", err)
	}
	return nil
}

// ExistsByTitle checks if the company already lists an internship with the title
func (r *InternshipRepository) ExistsByTitle(ctx context.Context, companyID int64, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM internship_opportunities WHERE company_id = $1 AND title = $2)`,
		companyID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking internship title: %w", err)
	}
	return exists, nil
}

// ListWithCompany returns every internship ordered by id, each with its company
func (r *InternshipRepository) ListWithCompany(ctx context.Context) ([]*models.InternshipOpportunity, error) {
	sql, args, err := r.sb.Select(
		"i.id", "i.title", "i.description", "i.requirements", "i.location",
		"i.company_id", "i.posted_date", "i.apply_link",
		"c.id", "c.name", "c.logo", "c.location", "c.industry", "c.website",
	).
		From("internship_opportunities i").
		Join("companies c ON c.id = i.company_id").
		OrderBy("i.id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list internships SQL")
		return nil, fmt.Errorf("failed to build list internships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying internships")
		return nil, fmt.Errorf("error querying internships: %w", err)
	}
	defer rows.Close()

	result := make([]*models.InternshipOpportunity, 0)
	for rows.Next() {
		in := &models.InternshipOpportunity{Company: &models.Company{}}
		c := in.Company
		if err := rows.Scan(
			&in.ID, &in.Title, &in.Description, &in.Requirements, &in.Location,
			&in.CompanyID, &in.PostedDate, &in.ApplyLink,
			&c.ID, &c.Name, &c.Logo, &c.Location, &c.Industry, &c.Website,
		); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internship rows: %w", err)
	}
	return result, nil
}
