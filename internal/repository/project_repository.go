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

// ErrProjectNotFound возвращается, когда проект не найден.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository отвечает за работу с таблицей projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository создаёт экземпляр репозитория.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
	id, user_id, title, description, images, video_url,
	briefing_description, challenge_description, execution_description, result_description,
	technologies, links, status, display_order, created_at, updated_at
`

// scanProject читает одну строку projects вместе с массивами.
func scanProject(row sqlx.ColScanner) (*models.Project, error) {
	var project models.Project
	var images, technologies pq.StringArray

	if err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&images,
		&project.VideoURL,
		&project.BriefingDescription,
		&project.ChallengeDescription,
		&project.ExecutionDescription,
		&project.ResultDescription,
		&technologies,
		&project.Links,
		&project.Status,
		&project.DisplayOrder,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}

	project.Images = []string(images)
	project.Technologies = []string(technologies)
	return &project, nil
}

// Create создаёт проект. Новый проект встаёт в конец списка пользователя.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (
			user_id, title, description, images, video_url,
			briefing_description, challenge_description, execution_description, result_description,
			technologies, links, status, display_order
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			COALESCE((SELECT MAX(display_order) + 1 FROM projects WHERE user_id = $1), 0)
		)
		RETURNING id, display_order, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		project.UserID,
		project.Title,
		project.Description,
		pq.Array(project.Images),
		project.VideoURL,
		project.BriefingDescription,
		project.ChallengeDescription,
		project.ExecutionDescription,
		project.ResultDescription,
		pq.Array(project.Technologies),
		project.Links,
		project.Status,
	).Scan(&project.ID, &project.DisplayOrder, &project.CreatedAt, &project.UpdatedAt); err != nil {
		return fmt.Errorf("project repository: create %w", err)
	}

	return nil
}

// GetByID возвращает проект по идентификатору.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project repository: get by id %w", err)
	}

	return project, nil
}

// ListByUser возвращает все проекты пользователя в порядке отображения.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = $1
		ORDER BY display_order, created_at
	`

	return r.list(ctx, query, userID)
}

// ListCompleteByUser возвращает только завершённые проекты для публичного портфолио.
func (r *ProjectRepository) ListCompleteByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = $1 AND status = $2
		ORDER BY display_order, created_at
	`

	return r.list(ctx, query, userID, models.ProjectStatusComplete)
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Project, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("project repository: list query %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("project repository: list scan %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("project repository: list rows %w", err)
	}

	return projects, nil
}

// Update обновляет проект целиком, включая пересчитанный статус.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET title = $3,
		    description = $4,
		    images = $5,
		    video_url = $6,
		    briefing_description = $7,
		    challenge_description = $8,
		    execution_description = $9,
		    result_description = $10,
		    technologies = $11,
		    links = $12,
		    status = $13,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		pq.Array(project.Images),
		project.VideoURL,
		project.BriefingDescription,
		project.ChallengeDescription,
		project.ExecutionDescription,
		project.ResultDescription,
		pq.Array(project.Technologies),
		project.Links,
		project.Status,
	).Scan(&project.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("project repository: update %w", err)
	}

	return nil
}

// UpdateDisplayOrder выставляет порядок отображения проектов пользователя одним батчем.
func (r *ProjectRepository) UpdateDisplayOrder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("project repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for position, id := range ids {
		if _, err = tx.ExecContext(
			ctx,
			`UPDATE projects SET display_order = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
			id, userID, position,
		); err != nil {
			return fmt.Errorf("project repository: update display order %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("project repository: commit %w", err)
	}

	return nil
}

// Delete удаляет проект пользователя.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("project repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("project repository: delete rows affected %w", err)
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// CountByUser возвращает количество проектов пользователя.
func (r *ProjectRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("project repository: count %w", err)
	}
	return count, nil
}
