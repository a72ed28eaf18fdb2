package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/ws"
)

// stubAnalyticsRepo отдаёт вставленные события через канал,
// потому что Track пишет их в фоне.
type stubAnalyticsRepo struct {
	inserted     chan *models.AnalyticsEvent
	summary      *models.AnalyticsSummary
	summaryCalls int
}

func newStubAnalyticsRepo() *stubAnalyticsRepo {
	return &stubAnalyticsRepo{
		inserted: make(chan *models.AnalyticsEvent, 8),
		summary:  &models.AnalyticsSummary{TotalViews: 42},
	}
}

func (r *stubAnalyticsRepo) InsertEvent(_ context.Context, event *models.AnalyticsEvent) error {
	r.inserted <- event
	return nil
}

func (r *stubAnalyticsRepo) Summary(_ context.Context, _ uuid.UUID, _ time.Time) (*models.AnalyticsSummary, error) {
	r.summaryCalls++
	return r.summary, nil
}

// stubLeadRepo хранит заявки в памяти.
type stubLeadRepo struct {
	leads []*models.Lead
}

func (r *stubLeadRepo) Create(_ context.Context, lead *models.Lead) error {
	lead.ID = uuid.New()
	r.leads = append(r.leads, lead)
	return nil
}

func (r *stubLeadRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Lead, error) {
	var result []models.Lead
	for _, lead := range r.leads {
		if lead.UserID == userID {
			result = append(result, *lead)
		}
	}
	return result, nil
}

func waitForEvent(t *testing.T, ch chan *models.AnalyticsEvent) *models.AnalyticsEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("событие не записано в отведённое время")
		return nil
	}
}

func TestAnalyticsService_Track_RejectsUnknownTypes(t *testing.T) {
	svc := NewAnalyticsService(newStubAnalyticsRepo(), &stubLeadRepo{}, nil, nil)

	err := svc.Track(TrackInput{UserID: uuid.New(), EventType: "page_scroll", ResourceType: models.ResourcePortfolio})
	assert.Error(t, err)

	err = svc.Track(TrackInput{UserID: uuid.New(), EventType: models.EventPortfolioView, ResourceType: "newsletter"})
	assert.Error(t, err)
}

func TestAnalyticsService_Track_InsertsInBackground(t *testing.T) {
	repo := newStubAnalyticsRepo()
	svc := NewAnalyticsService(repo, &stubLeadRepo{}, nil, nil)
	userID := uuid.New()

	err := svc.Track(TrackInput{
		UserID:       userID,
		EventType:    models.EventPortfolioView,
		ResourceType: models.ResourcePortfolio,
	})
	require.NoError(t, err)

	event := waitForEvent(t, repo.inserted)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, models.EventPortfolioView, event.EventType)
}

func TestAnalyticsService_Summary_Cached(t *testing.T) {
	repo := newStubAnalyticsRepo()
	svc := NewAnalyticsService(repo, &stubLeadRepo{}, NewCacheService(), nil)
	userID := uuid.New()

	first, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 42, first.TotalViews)

	_, err = svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.summaryCalls, "повторный запрос в течение минуты идёт из кэша")
}

func TestAnalyticsService_CreateLead(t *testing.T) {
	leads := &stubLeadRepo{}
	notifier := &stubNotifier{}
	svc := NewAnalyticsService(newStubAnalyticsRepo(), leads, nil, notifier)
	ownerID := uuid.New()

	lead, err := svc.CreateLead(context.Background(), ownerID, LeadInput{
		Name:  "Maria Souza",
		Email: "maria@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ResourcePortfolio, lead.Source, "источник по умолчанию")
	require.Len(t, notifier.events, 1)
	assert.Equal(t, ws.EventLeadCreated, notifier.events[0].Event)
	assert.Equal(t, ownerID, notifier.events[0].UserID)
}

func TestAnalyticsService_CreateLead_Validation(t *testing.T) {
	svc := NewAnalyticsService(newStubAnalyticsRepo(), &stubLeadRepo{}, nil, nil)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := svc.CreateLead(ctx, ownerID, LeadInput{Name: "  ", Email: "maria@example.com"})
	assert.Error(t, err)

	_, err = svc.CreateLead(ctx, ownerID, LeadInput{Name: "Maria", Email: "not-an-email"})
	assert.Error(t, err)
}

func TestAnalyticsService_ListLeads(t *testing.T) {
	leads := &stubLeadRepo{}
	svc := NewAnalyticsService(newStubAnalyticsRepo(), leads, nil, nil)
	ownerID := uuid.New()

	_, err := svc.CreateLead(context.Background(), ownerID, LeadInput{Name: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)
	_, err = svc.CreateLead(context.Background(), uuid.New(), LeadInput{Name: "Outro", Email: "outro@example.com"})
	require.NoError(t, err)

	list, err := svc.ListLeads(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
