package models

// Статусы проекта.
const (
	ProjectStatusDraft    = "draft"
	ProjectStatusComplete = "complete"
)

// Статусы коммерческого предложения.
const (
	ProposalStatusDraft    = "draft"
	ProposalStatusSent     = "sent"
	ProposalStatusViewed   = "viewed"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// Типы бюджета предложения. Влияют только на отображение, не на расчёт.
const (
	BudgetTypeHourly  = "hourly"
	BudgetTypeFixed   = "fixed"
	BudgetTypePackage = "package"
)

// Тарифные планы пользователя.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// FreeProposalLimit — максимум предложений на бесплатном тарифе.
const FreeProposalLimit = 5

// Шаблоны портфолио.
const (
	TemplateCase    = "case"
	TemplateGallery = "gallery"
	TemplateSlides  = "slides"
	TemplateOnePage = "onepage"
)

// Типы аналитических событий.
const (
	EventPortfolioView = "portfolio_view"
	EventProposalView  = "proposal_view"
	EventProjectClick  = "project_click"
	EventProposalShare = "proposal_share"
)

// Типы ресурсов аналитических событий.
const (
	ResourcePortfolio = "portfolio"
	ResourceProposal  = "proposal"
	ResourceProject   = "project"
)

// ValidTemplates перечисляет допустимые шаблоны портфолио.
var ValidTemplates = []string{TemplateCase, TemplateGallery, TemplateSlides, TemplateOnePage}

// ValidBudgetTypes перечисляет допустимые типы бюджета.
var ValidBudgetTypes = []string{BudgetTypeHourly, BudgetTypeFixed, BudgetTypePackage}

// proposalStatusRank задаёт порядок статусов для проверки переходов «только вперёд».
var proposalStatusRank = map[string]int{
	ProposalStatusDraft:    0,
	ProposalStatusSent:     1,
	ProposalStatusViewed:   2,
	ProposalStatusAccepted: 3,
	ProposalStatusRejected: 3,
}

// ProposalStatusRank возвращает ранг статуса для сравнения переходов.
// Неизвестный статус получает ранг -1.
func ProposalStatusRank(status string) int {
	if rank, ok := proposalStatusRank[status]; ok {
		return rank
	}
	return -1
}
