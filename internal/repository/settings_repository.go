package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

// ErrSettingsNotFound возвращается, когда у пользователя нет сохранённых настроек.
var ErrSettingsNotFound = errors.New("portfolio settings not found")

// SettingsRepository отвечает за работу с таблицей portfolio_settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository создаёт экземпляр репозитория.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get возвращает настройки портфолио пользователя.
func (r *SettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PortfolioSettings, error) {
	query := `
		SELECT id, user_id, template, primary_color, font, columns, project_order, created_at, updated_at
		FROM portfolio_settings
		WHERE user_id = $1
	`

	var settings models.PortfolioSettings
	if err := r.db.QueryRowxContext(ctx, query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.Template,
		&settings.PrimaryColor,
		&settings.Font,
		&settings.Columns,
		pq.Array(&settings.ProjectOrder),
		&settings.CreatedAt,
		&settings.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("settings repository: get %w", err)
	}

	return &settings, nil
}

// Upsert создаёт или обновляет настройки. Уникальность по user_id,
// повторное сохранение никогда не плодит вторую строку.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.PortfolioSettings) error {
	query := `
		INSERT INTO portfolio_settings (user_id, template, primary_color, font, columns, project_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET template = EXCLUDED.template,
		    primary_color = EXCLUDED.primary_color,
		    font = EXCLUDED.font,
		    columns = EXCLUDED.columns,
		    project_order = EXCLUDED.project_order,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		settings.UserID,
		settings.Template,
		settings.PrimaryColor,
		settings.Font,
		settings.Columns,
		pq.Array(settings.ProjectOrder),
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt); err != nil {
		return fmt.Errorf("settings repository: upsert %w", err)
	}

	return nil
}
