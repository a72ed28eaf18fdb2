package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/goroutine"
	"github.com/LucasFJU/portfolio-flow-ai/internal/logger"
	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/validation"
	"github.com/LucasFJU/portfolio-flow-ai/internal/ws"
)

// AnalyticsRepo описывает зависимости AnalyticsService от слоя хранилища.
type AnalyticsRepo interface {
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
	Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*models.AnalyticsSummary, error)
}

// LeadRepo — доступ к заявкам контактной формы.
type LeadRepo interface {
	Create(ctx context.Context, lead *models.Lead) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Lead, error)
}

const (
	// summaryCacheTTL — агрегаты дашборда пересчитываются не чаще раза в минуту.
	summaryCacheTTL = time.Minute
	// summaryWindow — окно графика просмотров по дням.
	summaryWindow = 7 * 24 * time.Hour
	// trackTimeout — предел на фоновую запись события.
	trackTimeout = 5 * time.Second
)

var validEventTypes = map[string]bool{
	models.EventPortfolioView: true,
	models.EventProposalView:  true,
	models.EventProjectClick:  true,
	models.EventProposalShare: true,
}

var validResourceTypes = map[string]bool{
	models.ResourcePortfolio: true,
	models.ResourceProposal:  true,
	models.ResourceProject:   true,
}

// AnalyticsService отвечает за события просмотров, агрегаты дашборда
// и заявки из контактной формы.
type AnalyticsService struct {
	repo     AnalyticsRepo
	leads    LeadRepo
	cache    *CacheService
	notifier Notifier
}

// NewAnalyticsService создаёт сервис аналитики.
func NewAnalyticsService(repo AnalyticsRepo, leads LeadRepo, cache *CacheService, notifier Notifier) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		leads:    leads,
		cache:    cache,
		notifier: notifier,
	}
}

// TrackInput — событие просмотра или клика с публичной страницы.
type TrackInput struct {
	UserID       uuid.UUID
	EventType    string
	ResourceType string
	ResourceID   *uuid.UUID
	Metadata     models.EventMetadata
	Source       *string
	UserAgent    *string
	IPAddress    *string
}

// validate проверяет тип события и ресурса.
func (in *TrackInput) validate() error {
	if !validEventTypes[in.EventType] {
		return fmt.Errorf("analytics service: неизвестный тип события '%s'", in.EventType)
	}
	if !validResourceTypes[in.ResourceType] {
		return fmt.Errorf("analytics service: неизвестный тип ресурса '%s'", in.ResourceType)
	}
	return nil
}

// Track сохраняет событие в фоне. Ошибка записи не влияет на ответ
// публичной страницы, она только логируется.
func (s *AnalyticsService) Track(in TrackInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	event := &models.AnalyticsEvent{
		UserID:       in.UserID,
		EventType:    in.EventType,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		Metadata:     in.Metadata,
		Source:       in.Source,
		UserAgent:    in.UserAgent,
		IPAddress:    in.IPAddress,
	}

	goroutine.SafeGo(func() {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		if err := s.repo.InsertEvent(ctx, event); err != nil {
			logger.Log.Warnf("не удалось записать событие аналитики %s: %v", in.EventType, err)
		}
	})

	return nil
}

// Summary возвращает агрегаты дашборда за последнюю неделю.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID) (*models.AnalyticsSummary, error) {
	key := AnalyticsSummaryCacheKey(userID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if summary, ok := cached.(*models.AnalyticsSummary); ok {
				return summary, nil
			}
		}
	}

	summary, err := s.repo.Summary(ctx, userID, time.Now().Add(-summaryWindow))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, summary, summaryCacheTTL)
	}

	return summary, nil
}

// LeadInput — заявка из контактной формы публичного портфолио.
type LeadInput struct {
	Name    string
	Email   string
	Message *string
	Source  string
}

// CreateLead сохраняет заявку и уведомляет владельца портфолио.
func (s *AnalyticsService) CreateLead(ctx context.Context, ownerID uuid.UUID, in LeadInput) (*models.Lead, error) {
	if err := validation.ValidateLeadName(in.Name); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	if err := validation.ValidateLeadMessage(in.Message); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	if in.Source == "" {
		in.Source = models.ResourcePortfolio
	}

	lead := &models.Lead{
		UserID:  ownerID,
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Source:  in.Source,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.Publish(ownerID, ws.EventLeadCreated, map[string]any{
			"lead_id": lead.ID,
			"name":    lead.Name,
			"email":   lead.Email,
		})
	}

	return lead, nil
}

// ListLeads возвращает заявки пользователя.
func (s *AnalyticsService) ListLeads(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	return s.leads.ListByUser(ctx, userID)
}
