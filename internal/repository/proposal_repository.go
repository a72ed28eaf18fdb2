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

// ErrProposalNotFound возвращается, когда предложение не найдено.
var ErrProposalNotFound = errors.New("proposal not found")

// ProposalRepository отвечает за работу с таблицей proposals.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository создаёт экземпляр репозитория.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `
	id, user_id, title, client_name, client_email, introduction, justification, closing,
	project_ids, budget_items, budget_type, total_value, logo_url, primary_color,
	cover_image_url, status, share_token, viewed_at, created_at, updated_at
`

// scanProposal читает одну строку proposals вместе с массивом project_ids.
func scanProposal(row sqlx.ColScanner) (*models.Proposal, error) {
	var proposal models.Proposal

	if err := row.Scan(
		&proposal.ID,
		&proposal.UserID,
		&proposal.Title,
		&proposal.ClientName,
		&proposal.ClientEmail,
		&proposal.Introduction,
		&proposal.Justification,
		&proposal.Closing,
		pq.Array(&proposal.ProjectIDs),
		&proposal.BudgetItems,
		&proposal.BudgetType,
		&proposal.TotalValue,
		&proposal.LogoURL,
		&proposal.PrimaryColor,
		&proposal.CoverImageURL,
		&proposal.Status,
		&proposal.ShareToken,
		&proposal.ViewedAt,
		&proposal.CreatedAt,
		&proposal.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &proposal, nil
}

// Create создаёт предложение.
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	query := `
		INSERT INTO proposals (
			user_id, title, client_name, client_email, introduction, justification, closing,
			project_ids, budget_items, budget_type, total_value, logo_url, primary_color,
			cover_image_url, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		proposal.UserID,
		proposal.Title,
		proposal.ClientName,
		proposal.ClientEmail,
		proposal.Introduction,
		proposal.Justification,
		proposal.Closing,
		pq.Array(proposal.ProjectIDs),
		proposal.BudgetItems,
		proposal.BudgetType,
		proposal.TotalValue,
		proposal.LogoURL,
		proposal.PrimaryColor,
		proposal.CoverImageURL,
		proposal.Status,
	).Scan(&proposal.ID, &proposal.CreatedAt, &proposal.UpdatedAt); err != nil {
		return fmt.Errorf("proposal repository: create %w", err)
	}

	return nil
}

// GetByID возвращает предложение по идентификатору.
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`

	proposal, err := scanProposal(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("proposal repository: get by id %w", err)
	}

	return proposal, nil
}

// GetByShareToken возвращает опубликованное предложение по публичному токену.
func (r *ProposalRepository) GetByShareToken(ctx context.Context, token string) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE share_token = $1`

	proposal, err := scanProposal(r.db.QueryRowxContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("proposal repository: get by share token %w", err)
	}

	return proposal, nil
}

// ListByUser возвращает предложения пользователя, новые первыми.
func (r *ProposalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("proposal repository: list query %w", err)
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("proposal repository: list scan %w", err)
		}
		proposals = append(proposals, *proposal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("proposal repository: list rows %w", err)
	}

	return proposals, nil
}

// Update обновляет содержимое предложения.
func (r *ProposalRepository) Update(ctx context.Context, proposal *models.Proposal) error {
	query := `
		UPDATE proposals
		SET title = $3,
		    client_name = $4,
		    client_email = $5,
		    introduction = $6,
		    justification = $7,
		    closing = $8,
		    project_ids = $9,
		    budget_items = $10,
		    budget_type = $11,
		    total_value = $12,
		    logo_url = $13,
		    primary_color = $14,
		    cover_image_url = $15,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		proposal.ID,
		proposal.UserID,
		proposal.Title,
		proposal.ClientName,
		proposal.ClientEmail,
		proposal.Introduction,
		proposal.Justification,
		proposal.Closing,
		pq.Array(proposal.ProjectIDs),
		proposal.BudgetItems,
		proposal.BudgetType,
		proposal.TotalValue,
		proposal.LogoURL,
		proposal.PrimaryColor,
		proposal.CoverImageURL,
	).Scan(&proposal.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProposalNotFound
		}
		return fmt.Errorf("proposal repository: update %w", err)
	}

	return nil
}

// Publish выставляет публичный токен и статус sent, если токена ещё нет.
// Повторная публикация не меняет строку, токен стабилен.
func (r *ProposalRepository) Publish(ctx context.Context, id uuid.UUID, userID uuid.UUID, token string) error {
	query := `
		UPDATE proposals
		SET share_token = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND share_token IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, id, userID, token, models.ProposalStatusSent); err != nil {
		return fmt.Errorf("proposal repository: publish %w", err)
	}

	return nil
}

// MarkViewed переводит предложение sent → viewed при первом открытии по токену.
// Возвращает true, если переход случился именно в этом вызове.
func (r *ProposalRepository) MarkViewed(ctx context.Context, token string) (bool, error) {
	query := `
		UPDATE proposals
		SET status = $2, viewed_at = NOW(), updated_at = NOW()
		WHERE share_token = $1 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, token, models.ProposalStatusViewed, models.ProposalStatusSent)
	if err != nil {
		return false, fmt.Errorf("proposal repository: mark viewed %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("proposal repository: mark viewed rows affected %w", err)
	}

	return rowsAffected > 0, nil
}

// UpdateStatus меняет статус предложения.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE proposals SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("proposal repository: update status %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("proposal repository: update status rows affected %w", err)
	}
	if rowsAffected == 0 {
		return ErrProposalNotFound
	}

	return nil
}

// Delete удаляет предложение пользователя.
func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("proposal repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("proposal repository: delete rows affected %w", err)
	}
	if rowsAffected == 0 {
		return ErrProposalNotFound
	}

	return nil
}
