package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/db"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

// EventRepository handles event and event image database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the event and its images in one transaction
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("title", "description", "location", "start_date", "end_date").
		Values(event.Title, event.Description, event.Location, event.StartDate, event.EndDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
			logger.Error().Err(err).Str("title", event.Title).Msg("Error executing create event query")
			return fmt.Errorf("error creating event: %w", err)
		}

		for _, img := range event.Images {
			img.EventID = event.ID
			imgSQL, imgArgs, err := r.sb.Insert("event_images").
				Columns("event_id", "image", "caption").
				Values(img.EventID, img.Image, img.Caption).
				Suffix("RETURNING id").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build create event image query: %w", err)
			}
			if err := tx.QueryRow(ctx, imgSQL, imgArgs...).Scan(&img.ID); err != nil {
				logger.Error().Err(err).Int64("eventID", event.ID).Msg("Error executing create event image query")
				return fmt.Errorf("error creating event image: %w", err)
			}
		}
		return nil
	})
}

// ExistsByTitle checks if an event with the title is stored
func (r *EventRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE title = $1)`, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking event title: %w", err)
	}
	return exists, nil
}

// ListWithImages returns every event ordered by id, each with its images.
// Images are loaded with one batched query.
func (r *EventRepository) ListWithImages(ctx context.Context) ([]*models.Event, error) {
	sql, args, err := r.sb.Select("id", "title", "description", "location", "start_date", "end_date", "created_at").
		From("events").
		OrderBy("id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list events SQL")
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying events")
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	byID := make(map[int64]*models.Event)
	ids := make([]int64, 0)
	for rows.Next() {
		e := &models.Event{Images: []*models.EventImage{}}
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartDate, &e.EndDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	if len(ids) == 0 {
		return events, nil
	}

	imgSQL, imgArgs, err := r.sb.Select("id", "event_id", "image", "caption").
		From("event_images").
		Where(squirrel.Eq{"event_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list event images query: %w", err)
	}

	imgRows, err := r.db.Query(ctx, imgSQL, imgArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying event images")
		return nil, fmt.Errorf("error querying event images: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		img := &models.EventImage{}
		if err := imgRows.Scan(&img.ID, &img.EventID, &img.Image, &img.Caption); err != nil {
			return nil, fmt.Errorf("error scanning event image row: %w", err)
		}
		if e, ok := byID[img.EventID]; ok {
			e.Images = append(e.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event image rows: %w", err)
	}

	return events, nil
}

// Delete removes an event and, through the cascade, its images
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error deleting event")
		return fmt.Errorf("error deleting event: %w", err)
	}
	return nil
}
