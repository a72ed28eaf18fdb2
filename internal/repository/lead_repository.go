package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

// LeadRepository отвечает за работу с таблицей leads.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository создаёт экземпляр репозитория.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create сохраняет заявку из контактной формы.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (user_id, name, email, message, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		lead.UserID,
		lead.Name,
		lead.Email,
		lead.Message,
		lead.Source,
	).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return fmt.Errorf("lead repository: create %w", err)
	}

	return nil
}

// ListByUser возвращает заявки пользователя, новые первыми.
func (r *LeadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	query := `
		SELECT id, user_id, name, email, message, source, created_at
		FROM leads
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, userID); err != nil {
		return nil, fmt.Errorf("lead repository: list %w", err)
	}

	return leads, nil
}
