package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/pkg/apperror"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
	"github.com/LucasFJU/portfolio-flow-ai/internal/validation"
	"github.com/LucasFJU/portfolio-flow-ai/internal/ws"
)

// ProposalRepo описывает зависимости ProposalService от слоя хранилища.
type ProposalRepo interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	GetByShareToken(ctx context.Context, token string) (*models.Proposal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Proposal, error)
	Update(ctx context.Context, proposal *models.Proposal) error
	Publish(ctx context.Context, id uuid.UUID, userID uuid.UUID, token string) error
	MarkViewed(ctx context.Context, token string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// ProposalUserRepo — доступ к профилю для проверки квоты бесплатного тарифа.
type ProposalUserRepo interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	IncrementProposalCount(ctx context.Context, userID uuid.UUID) (int, error)
}

// ProposalProjectRepo — доступ к проектам, встроенным в публичное предложение.
type ProposalProjectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// Notifier отправляет события владельцу кабинета в реальном времени.
type Notifier interface {
	Publish(userID uuid.UUID, event string, data any) error
}

// ProposalService отвечает за коммерческие предложения.
// Суммы сметы и кэшированное total_value всегда пересчитываются сервером.
type ProposalService struct {
	repo     ProposalRepo
	users    ProposalUserRepo
	projects ProposalProjectRepo
	notifier Notifier
}

// NewProposalService создаёт сервис предложений.
func NewProposalService(repo ProposalRepo, users ProposalUserRepo, projects ProposalProjectRepo, notifier Notifier) *ProposalService {
	return &ProposalService{
		repo:     repo,
		users:    users,
		projects: projects,
		notifier: notifier,
	}
}

// ProposalInput — содержимое предложения при создании и обновлении.
type ProposalInput struct {
	Title         string
	ClientName    *string
	ClientEmail   *string
	Introduction  *string
	Justification *string
	Closing       *string
	ProjectIDs    []uuid.UUID
	BudgetItems   models.BudgetItems
	BudgetType    string
	LogoURL       *string
	PrimaryColor  string
	CoverImageURL *string
}

// validate проверяет границы входных значений.
func (in *ProposalInput) validate() error {
	if err := validation.ValidateProposalTitle(in.Title); err != nil {
		return err
	}
	if in.BudgetType == "" {
		in.BudgetType = models.BudgetTypeFixed
	}
	if err := validation.ValidateBudgetType(in.BudgetType); err != nil {
		return err
	}
	if in.ClientEmail != nil && *in.ClientEmail != "" {
		if err := validation.ValidateEmail(*in.ClientEmail); err != nil {
			return err
		}
	}
	if in.PrimaryColor != "" {
		if err := validation.ValidateHexColor(in.PrimaryColor); err != nil {
			return err
		}
	}
	return validation.ValidateBudgetItems(in.BudgetItems)
}

// apply переносит вход в модель и пересчитывает смету.
func (in *ProposalInput) apply(proposal *models.Proposal) {
	proposal.Title = in.Title
	proposal.ClientName = in.ClientName
	proposal.ClientEmail = in.ClientEmail
	proposal.Introduction = in.Introduction
	proposal.Justification = in.Justification
	proposal.Closing = in.Closing
	proposal.ProjectIDs = in.ProjectIDs
	proposal.BudgetItems = in.BudgetItems
	proposal.BudgetType = in.BudgetType
	proposal.LogoURL = in.LogoURL
	if in.PrimaryColor != "" {
		proposal.PrimaryColor = in.PrimaryColor
	}
	proposal.CoverImageURL = in.CoverImageURL
	proposal.RecalculateTotals()
}

// checkQuota проверяет лимит бесплатного тарифа до какой-либо записи.
func (s *ProposalService) checkQuota(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !profile.IsPro() && profile.ProposalCount >= models.FreeProposalLimit {
		return apperror.ErrProposalLimit
	}
	return nil
}

// Create создаёт черновик предложения.
// На бесплатном тарифе шестое создание отклоняется до записи в базу.
func (s *ProposalService) Create(ctx context.Context, userID uuid.UUID, in ProposalInput) (*models.Proposal, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("proposal service: %w", err)
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	proposal := &models.Proposal{
		UserID:       userID,
		PrimaryColor: "#8B5CF6",
		Status:       models.ProposalStatusDraft,
	}
	in.apply(proposal)

	if err := s.repo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	if _, err := s.users.IncrementProposalCount(ctx, userID); err != nil {
		return nil, err
	}

	return proposal, nil
}

// Get возвращает предложение пользователя.
func (s *ProposalService) Get(ctx context.Context, userID, proposalID uuid.UUID) (*models.Proposal, error) {
	proposal, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return proposal, nil
}

// List возвращает предложения пользователя.
func (s *ProposalService) List(ctx context.Context, userID uuid.UUID) ([]models.Proposal, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update обновляет содержимое предложения. Статус и токен этим путём не меняются.
func (s *ProposalService) Update(ctx context.Context, userID, proposalID uuid.UUID, in ProposalInput) (*models.Proposal, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("proposal service: %w", err)
	}

	proposal, err := s.Get(ctx, userID, proposalID)
	if err != nil {
		return nil, err
	}

	in.apply(proposal)

	if err := s.repo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	return proposal, nil
}

// Publish выдаёт предложению публичный токен и переводит его в статус sent.
// Повторная публикация возвращает тот же токен, ссылка стабильна.
func (s *ProposalService) Publish(ctx context.Context, userID, proposalID uuid.UUID) (*models.Proposal, error) {
	proposal, err := s.Get(ctx, userID, proposalID)
	if err != nil {
		return nil, err
	}

	if proposal.ShareToken != nil {
		return proposal, nil
	}

	token := uuid.NewString()
	if err := s.repo.Publish(ctx, proposalID, userID, token); err != nil {
		return nil, err
	}

	// Перечитываем строку: при гонке двух публикаций выигрывает первая.
	return s.Get(ctx, userID, proposalID)
}

// Duplicate создаёт копию предложения как новый черновик без токена.
// Копия тоже считается созданием и проходит проверку квоты.
func (s *ProposalService) Duplicate(ctx context.Context, userID, proposalID uuid.UUID) (*models.Proposal, error) {
	original, err := s.Get(ctx, userID, proposalID)
	if err != nil {
		return nil, err
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	duplicate := &models.Proposal{
		UserID:        userID,
		Title:         original.Title + " (cópia)",
		ClientName:    original.ClientName,
		ClientEmail:   original.ClientEmail,
		Introduction:  original.Introduction,
		Justification: original.Justification,
		Closing:       original.Closing,
		ProjectIDs:    original.ProjectIDs,
		BudgetItems:   append(models.BudgetItems{}, original.BudgetItems...),
		BudgetType:    original.BudgetType,
		LogoURL:       original.LogoURL,
		PrimaryColor:  original.PrimaryColor,
		CoverImageURL: original.CoverImageURL,
		Status:        models.ProposalStatusDraft,
	}
	duplicate.RecalculateTotals()

	if err := s.repo.Create(ctx, duplicate); err != nil {
		return nil, err
	}

	if _, err := s.users.IncrementProposalCount(ctx, userID); err != nil {
		return nil, err
	}

	return duplicate, nil
}

// Delete удаляет предложение пользователя.
func (s *ProposalService) Delete(ctx context.Context, userID, proposalID uuid.UUID) error {
	return s.repo.Delete(ctx, proposalID, userID)
}

// PublicProposal — предложение со встроенными проектами для публичной страницы.
type PublicProposal struct {
	Proposal *models.Proposal `json:"proposal"`
	Projects []models.Project `json:"projects"`
}

// GetByShareToken возвращает предложение по публичному токену.
// Первое открытие переводит sent → viewed и уведомляет владельца.
func (s *ProposalService) GetByShareToken(ctx context.Context, token string) (*PublicProposal, error) {
	proposal, err := s.repo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.repo.MarkViewed(ctx, token)
	if err != nil {
		return nil, err
	}
	if transitioned {
		// Отражаем переход в уже прочитанной строке, не перечитывая её.
		proposal.Status = models.ProposalStatusViewed
		if s.notifier != nil {
			_ = s.notifier.Publish(proposal.UserID, ws.EventProposalViewed, map[string]any{
				"proposal_id": proposal.ID,
				"title":       proposal.Title,
			})
		}
	}

	projects := make([]models.Project, 0, len(proposal.ProjectIDs))
	for _, projectID := range proposal.ProjectIDs {
		project, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				// Удалённый проект молча пропадает из предложения.
				continue
			}
			return nil, err
		}
		projects = append(projects, *project)
	}

	return &PublicProposal{Proposal: proposal, Projects: projects}, nil
}

// Respond фиксирует решение клиента по публичному токену.
// Допустимы только accepted и rejected, статус не откатывается назад.
func (s *ProposalService) Respond(ctx context.Context, token, status string) (*models.Proposal, error) {
	if status != models.ProposalStatusAccepted && status != models.ProposalStatusRejected {
		return nil, fmt.Errorf("proposal service: недопустимое решение '%s'", status)
	}

	proposal, err := s.repo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if proposal.Status == status {
		return proposal, nil
	}
	if !proposal.CanTransitionTo(status) {
		return nil, fmt.Errorf("proposal service: статус %s нельзя изменить на %s", proposal.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, proposal.ID, status); err != nil {
		return nil, err
	}
	proposal.Status = status

	return proposal, nil
}
