package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/pkg/apperror"
	"github.com/LucasFJU/portfolio-flow-ai/internal/portfolio"
	"github.com/LucasFJU/portfolio-flow-ai/internal/validation"
)

// ProjectRepo описывает зависимости ProjectService от слоя хранилища.
type ProjectRepo interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateDisplayOrder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// ProjectService отвечает за проекты портфолио.
// Статус проекта всегда пересчитывается на сервере из содержимого,
// клиентское значение игнорируется.
type ProjectService struct {
	repo  ProjectRepo
	users ProfileRepository
	cache *CacheService
}

// NewProjectService создаёт сервис проектов.
func NewProjectService(repo ProjectRepo, users ProfileRepository, cache *CacheService) *ProjectService {
	return &ProjectService{repo: repo, users: users, cache: cache}
}

// ProjectInput — содержимое проекта при создании и обновлении.
type ProjectInput struct {
	Title                string
	Description          string
	Images               []string
	VideoURL             *string
	BriefingDescription  string
	ChallengeDescription string
	ExecutionDescription string
	ResultDescription    string
	Technologies         []string
	Links                models.ProjectLinks
}

// validate проверяет границы входных значений.
func (in *ProjectInput) validate() error {
	if err := validation.ValidateProjectTitle(in.Title); err != nil {
		return err
	}
	if err := validation.ValidateDescription("описание проекта", in.Description); err != nil {
		return err
	}
	if err := validation.ValidateTechnologies(in.Technologies); err != nil {
		return err
	}
	return validation.ValidateVideoURL(in.VideoURL)
}

// apply переносит вход в модель и пересчитывает статус.
func (in *ProjectInput) apply(project *models.Project) {
	project.Title = in.Title
	project.Description = in.Description
	project.Images = in.Images
	project.VideoURL = in.VideoURL
	project.BriefingDescription = in.BriefingDescription
	project.ChallengeDescription = in.ChallengeDescription
	project.ExecutionDescription = in.ExecutionDescription
	project.ResultDescription = in.ResultDescription
	project.Technologies = in.Technologies
	project.Links = in.Links
	project.Status = portfolio.CompletionStatus(project)
}

// Create создаёт проект.
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, in ProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("project service: %w", err)
	}

	project := &models.Project{UserID: userID}
	in.apply(project)

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.invalidatePortfolio(ctx, userID)

	return project, nil
}

// QuickCreate создаёт черновик из названия, короткого описания и пары изображений.
// Остальные поля пользователь дописывает позже.
func (s *ProjectService) QuickCreate(ctx context.Context, userID uuid.UUID, title, description string, images []string) (*models.Project, error) {
	if err := validation.ValidateQuickCreateImages(images); err != nil {
		return nil, fmt.Errorf("project service: %w", err)
	}

	return s.Create(ctx, userID, ProjectInput{
		Title:       title,
		Description: description,
		Images:      images,
	})
}

// Get возвращает проект пользователя.
func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return project, nil
}

// List возвращает проекты пользователя в порядке отображения,
// каждому добавляется процент заполненности.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]ProjectWithCompletion, error) {
	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]ProjectWithCompletion, 0, len(projects))
	for i := range projects {
		result = append(result, ProjectWithCompletion{
			Project:           projects[i],
			CompletionPercent: portfolio.CompletionPercent(&projects[i]),
		})
	}
	return result, nil
}

// ProjectWithCompletion — проект с процентом заполненности для списков кабинета.
type ProjectWithCompletion struct {
	models.Project
	CompletionPercent int `json:"completion_percent"`
}

// Update обновляет проект и пересчитывает его статус.
func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, in ProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("project service: %w", err)
	}

	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	in.apply(project)

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.invalidatePortfolio(ctx, userID)

	return project, nil
}

// Reorder сохраняет порядок отображения проектов.
// Идентификаторы чужих проектов молча игнорируются на уровне SQL.
func (s *ProjectService) Reorder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if err := s.repo.UpdateDisplayOrder(ctx, userID, ids); err != nil {
		return err
	}

	s.invalidatePortfolio(ctx, userID)
	return nil
}

// Delete удаляет проект пользователя.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if err := s.repo.Delete(ctx, projectID, userID); err != nil {
		return err
	}

	s.invalidatePortfolio(ctx, userID)
	return nil
}

func (s *ProjectService) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil || s.users == nil {
		return
	}
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		s.cache.InvalidatePortfolio(user.Username)
	}
}
