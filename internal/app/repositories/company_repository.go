package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts the company or refreshes the existing row with the same name,
// setting company.ID either way.
func (r *CompanyRepository) Upsert(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Insert("companies").
		Columns("name", "logo", "location", "industry", "website").
		Values(company.Name, company.Logo, company.Location, company.Industry, company.Website).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			logo = EXCLUDED.logo,
			location = EXCLUDED.location,
			industry = EXCLUDED.industry,
			website = EXCLUDED.website
			RETURNING id`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert company SQL")
		return fmt.Errorf("failed to build upsert company query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&company.ID); err != nil {
		logger.Error().Err(err).Str("name", company.Name).Msg("Error executing upsert company query")
		return fmt.Errorf("error saving company: %w", err)
	}
	return nil
}

// Delete removes a company; its internships go with it and alumni lose the reference
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("companies").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete company query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("companyID", id).Msg("Error deleting company")
		return fmt.Errorf("error deleting company: %w", err)
	}
	return nil
}
