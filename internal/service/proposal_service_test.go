package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/pkg/apperror"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
	"github.com/LucasFJU/portfolio-flow-ai/internal/ws"
)

// stubProposalRepo хранит предложения в памяти.
type stubProposalRepo struct {
	proposals map[uuid.UUID]*models.Proposal
	created   int
	published int
}

func newStubProposalRepo() *stubProposalRepo {
	return &stubProposalRepo{proposals: make(map[uuid.UUID]*models.Proposal)}
}

func (r *stubProposalRepo) Create(_ context.Context, proposal *models.Proposal) error {
	proposal.ID = uuid.New()
	r.proposals[proposal.ID] = proposal
	r.created++
	return nil
}

func (r *stubProposalRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Proposal, error) {
	proposal, ok := r.proposals[id]
	if !ok {
		return nil, repository.ErrProposalNotFound
	}
	copied := *proposal
	return &copied, nil
}

func (r *stubProposalRepo) GetByShareToken(_ context.Context, token string) (*models.Proposal, error) {
	for _, proposal := range r.proposals {
		if proposal.ShareToken != nil && *proposal.ShareToken == token {
			copied := *proposal
			return &copied, nil
		}
	}
	return nil, repository.ErrProposalNotFound
}

func (r *stubProposalRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Proposal, error) {
	var result []models.Proposal
	for _, proposal := range r.proposals {
		if proposal.UserID == userID {
			result = append(result, *proposal)
		}
	}
	return result, nil
}

func (r *stubProposalRepo) Update(_ context.Context, proposal *models.Proposal) error {
	r.proposals[proposal.ID] = proposal
	return nil
}

func (r *stubProposalRepo) Publish(_ context.Context, id, userID uuid.UUID, token string) error {
	proposal, ok := r.proposals[id]
	if !ok || proposal.UserID != userID {
		return repository.ErrProposalNotFound
	}
	if proposal.ShareToken == nil {
		proposal.ShareToken = &token
		proposal.Status = models.ProposalStatusSent
		r.published++
	}
	return nil
}

func (r *stubProposalRepo) MarkViewed(_ context.Context, token string) (bool, error) {
	for _, proposal := range r.proposals {
		if proposal.ShareToken != nil && *proposal.ShareToken == token {
			if proposal.Status == models.ProposalStatusSent {
				proposal.Status = models.ProposalStatusViewed
				return true, nil
			}
			return false, nil
		}
	}
	return false, repository.ErrProposalNotFound
}

func (r *stubProposalRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	proposal, ok := r.proposals[id]
	if !ok {
		return repository.ErrProposalNotFound
	}
	proposal.Status = status
	return nil
}

func (r *stubProposalRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	proposal, ok := r.proposals[id]
	if !ok || proposal.UserID != userID {
		return repository.ErrProposalNotFound
	}
	delete(r.proposals, id)
	return nil
}

// stubProposalUsers отдаёт профиль и считает создания предложений.
type stubProposalUsers struct {
	profile *models.Profile
}

func (u *stubProposalUsers) GetProfile(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return u.profile, nil
}

func (u *stubProposalUsers) IncrementProposalCount(_ context.Context, _ uuid.UUID) (int, error) {
	u.profile.ProposalCount++
	return u.profile.ProposalCount, nil
}

// stubProjectLookup отдаёт проекты по ID.
type stubProjectLookup struct {
	projects map[uuid.UUID]*models.Project
}

func (l *stubProjectLookup) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := l.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return project, nil
}

// stubNotifier запоминает опубликованные события.
type stubNotifier struct {
	events []publishedEvent
}

type publishedEvent struct {
	UserID uuid.UUID
	Event  string
	Data   any
}

func (n *stubNotifier) Publish(userID uuid.UUID, event string, data any) error {
	n.events = append(n.events, publishedEvent{UserID: userID, Event: event, Data: data})
	return nil
}

func newProposalFixture(plan string, count int) (*ProposalService, *stubProposalRepo, *stubProposalUsers, *stubNotifier, uuid.UUID) {
	userID := uuid.New()
	repo := newStubProposalRepo()
	users := &stubProposalUsers{profile: &models.Profile{UserID: userID, Plan: plan, ProposalCount: count}}
	notifier := &stubNotifier{}
	svc := NewProposalService(repo, users, &stubProjectLookup{}, notifier)
	return svc, repo, users, notifier, userID
}

func TestProposalService_Create_FreeQuotaBlocksBeforeWrite(t *testing.T) {
	svc, repo, _, _, userID := newProposalFixture(models.PlanFree, models.FreeProposalLimit)

	_, err := svc.Create(context.Background(), userID, ProposalInput{Title: "Proposta de site"})

	assert.ErrorIs(t, err, apperror.ErrProposalLimit)
	assert.Zero(t, repo.created, "шестое предложение не должно попасть в базу")
}

func TestProposalService_Create_ProPlanUnlimited(t *testing.T) {
	svc, _, users, _, userID := newProposalFixture(models.PlanPro, 50)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{Title: "Proposta de site"})

	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusDraft, proposal.Status)
	assert.Equal(t, 51, users.profile.ProposalCount)
}

func TestProposalService_Create_RecalculatesTotals(t *testing.T) {
	svc, _, _, _, userID := newProposalFixture(models.PlanFree, 0)

	// Клиентские total заведомо неверные, сервер их пересчитывает.
	proposal, err := svc.Create(context.Background(), userID, ProposalInput{
		Title: "Identidade visual",
		BudgetItems: models.BudgetItems{
			{Description: "Logo", Quantity: 1, UnitPrice: 1500, Total: 999999},
			{Description: "Manual da marca", Quantity: 2, UnitPrice: 800, Total: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1500.0, proposal.BudgetItems[0].Total)
	assert.Equal(t, 1600.0, proposal.BudgetItems[1].Total)
	assert.Equal(t, 3100.0, proposal.TotalValue)
}

func TestProposalService_Get_Forbidden(t *testing.T) {
	svc, repo, _, _, userID := newProposalFixture(models.PlanFree, 0)

	foreign := &models.Proposal{UserID: uuid.New(), Title: "Чужое"}
	require.NoError(t, repo.Create(context.Background(), foreign))

	_, err := svc.Get(context.Background(), userID, foreign.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestProposalService_Publish_AssignsTokenOnce(t *testing.T) {
	svc, repo, _, _, userID := newProposalFixture(models.PlanFree, 0)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{Title: "Proposta"})
	require.NoError(t, err)

	published, err := svc.Publish(context.Background(), userID, proposal.ID)
	require.NoError(t, err)
	require.NotNil(t, published.ShareToken)
	assert.Equal(t, models.ProposalStatusSent, published.Status)

	// Повторная публикация возвращает тот же токен без новой записи.
	again, err := svc.Publish(context.Background(), userID, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, *published.ShareToken, *again.ShareToken)
	assert.Equal(t, 1, repo.published)
}

func TestProposalService_GetByShareToken_FirstViewNotifiesOwner(t *testing.T) {
	svc, _, _, notifier, userID := newProposalFixture(models.PlanFree, 0)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{Title: "Proposta"})
	require.NoError(t, err)
	published, err := svc.Publish(context.Background(), userID, proposal.ID)
	require.NoError(t, err)

	public, err := svc.GetByShareToken(context.Background(), *published.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusViewed, public.Proposal.Status)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, ws.EventProposalViewed, notifier.events[0].Event)
	assert.Equal(t, userID, notifier.events[0].UserID)

	// Повторное открытие уже не уведомляет.
	_, err = svc.GetByShareToken(context.Background(), *published.ShareToken)
	require.NoError(t, err)
	assert.Len(t, notifier.events, 1)
}

func TestProposalService_GetByShareToken_SkipsDeletedProjects(t *testing.T) {
	userID := uuid.New()
	repo := newStubProposalRepo()
	users := &stubProposalUsers{profile: &models.Profile{UserID: userID, Plan: models.PlanFree}}

	existing := &models.Project{ID: uuid.New(), UserID: userID, Title: "Живой проект"}
	projects := &stubProjectLookup{projects: map[uuid.UUID]*models.Project{existing.ID: existing}}
	svc := NewProposalService(repo, users, projects, &stubNotifier{})

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{
		Title:      "Proposta",
		ProjectIDs: []uuid.UUID{existing.ID, uuid.New()},
	})
	require.NoError(t, err)
	published, err := svc.Publish(context.Background(), userID, proposal.ID)
	require.NoError(t, err)

	public, err := svc.GetByShareToken(context.Background(), *published.ShareToken)
	require.NoError(t, err)
	require.Len(t, public.Projects, 1)
	assert.Equal(t, existing.ID, public.Projects[0].ID)
}

func TestProposalService_Respond(t *testing.T) {
	svc, _, _, _, userID := newProposalFixture(models.PlanFree, 0)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{Title: "Proposta"})
	require.NoError(t, err)
	published, err := svc.Publish(context.Background(), userID, proposal.ID)
	require.NoError(t, err)
	token := *published.ShareToken

	_, err = svc.Respond(context.Background(), token, "draft")
	assert.Error(t, err, "решением может быть только accepted или rejected")

	accepted, err := svc.Respond(context.Background(), token, models.ProposalStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, accepted.Status)

	// Повтор того же решения идемпотентен.
	again, err := svc.Respond(context.Background(), token, models.ProposalStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, again.Status)
}

func TestProposalService_Duplicate(t *testing.T) {
	svc, _, _, _, userID := newProposalFixture(models.PlanFree, 0)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{
		Title: "Proposta de site",
		BudgetItems: models.BudgetItems{
			{Description: "Layout", Quantity: 1, UnitPrice: 2000},
		},
	})
	require.NoError(t, err)
	published, err := svc.Publish(context.Background(), userID, proposal.ID)
	require.NoError(t, err)

	duplicate, err := svc.Duplicate(context.Background(), userID, published.ID)
	require.NoError(t, err)
	assert.Equal(t, "Proposta de site (cópia)", duplicate.Title)
	assert.Equal(t, models.ProposalStatusDraft, duplicate.Status)
	assert.Nil(t, duplicate.ShareToken)
	assert.Equal(t, 2000.0, duplicate.TotalValue)
}

func TestProposalService_Duplicate_CountsAgainstQuota(t *testing.T) {
	svc, repo, users, _, userID := newProposalFixture(models.PlanFree, 0)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{Title: "Proposta"})
	require.NoError(t, err)

	users.profile.ProposalCount = models.FreeProposalLimit

	_, err = svc.Duplicate(context.Background(), userID, proposal.ID)
	assert.ErrorIs(t, err, apperror.ErrProposalLimit)
	assert.Equal(t, 1, repo.created)
}
