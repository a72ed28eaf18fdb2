package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

// AnalyticsRepository отвечает за работу с таблицей analytics_events.
// События только добавляются, обновлений и удалений нет.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository создаёт экземпляр репозитория.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// InsertEvent сохраняет событие просмотра или клика.
func (r *AnalyticsRepository) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (user_id, event_type, resource_type, resource_id, metadata, source, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		event.UserID,
		event.EventType,
		event.ResourceType,
		event.ResourceID,
		event.Metadata,
		event.Source,
		event.UserAgent,
		event.IPAddress,
	).Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("analytics repository: insert event %w", err)
	}

	return nil
}

// Summary собирает агрегаты дашборда: просмотры, клики, уникальные посетители
// и просмотры по дням начиная с since.
func (r *AnalyticsRepository) Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*models.AnalyticsSummary, error) {
	summary := &models.AnalyticsSummary{ViewsByDay: []models.DayViews{}}

	totalsQuery := `
		SELECT
			COUNT(*) FILTER (WHERE event_type IN ($2, $3)) AS total_views,
			COUNT(*) FILTER (WHERE event_type = $4) AS total_clicks,
			COUNT(DISTINCT user_agent) FILTER (WHERE user_agent IS NOT NULL) AS unique_visitors
		FROM analytics_events
		WHERE user_id = $1
	`
	if err := r.db.QueryRowxContext(
		ctx, totalsQuery, userID,
		models.EventPortfolioView, models.EventProposalView, models.EventProjectClick,
	).Scan(&summary.TotalViews, &summary.TotalClicks, &summary.UniqueVisitors); err != nil {
		return nil, fmt.Errorf("analytics repository: summary totals %w", err)
	}

	byDayQuery := `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS day, COUNT(*) AS views
		FROM analytics_events
		WHERE user_id = $1 AND event_type IN ($2, $3) AND created_at >= $4
		GROUP BY created_at::date
		ORDER BY created_at::date
	`

	rows, err := r.db.QueryxContext(ctx, byDayQuery, userID, models.EventPortfolioView, models.EventProposalView, since)
	if err != nil {
		return nil, fmt.Errorf("analytics repository: summary by day %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day models.DayViews
		if err := rows.Scan(&day.Day, &day.Views); err != nil {
			return nil, fmt.Errorf("analytics repository: summary scan %w", err)
		}
		summary.ViewsByDay = append(summary.ViewsByDay, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics repository: summary rows %w", err)
	}

	return summary, nil
}
