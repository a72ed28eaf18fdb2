package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

// fullProject возвращает проект со всеми заполненными полями.
func fullProject() *models.Project {
	return &models.Project{
		Title:                "Редизайн интернет-магазина",
		Description:          "Полный редизайн витрины и корзины.",
		Images:               []string{"/media/cover.png"},
		BriefingDescription:  "Клиент пришёл с устаревшим дизайном.",
		ChallengeDescription: "Сохранить конверсию при смене визуала.",
		ExecutionDescription: "Итеративные прототипы и A/B тесты.",
		ResultDescription:    "Конверсия выросла на 18%.",
		Technologies:         []string{"Figma", "React"},
	}
}

func TestCompletionPercent_Full(t *testing.T) {
	assert.Equal(t, 100, CompletionPercent(fullProject()))
}

func TestCompletionPercent_Empty(t *testing.T) {
	assert.Equal(t, 0, CompletionPercent(&models.Project{}))
}

func TestCompletionPercent_Partial(t *testing.T) {
	p := fullProject()
	p.ChallengeDescription = ""
	p.ExecutionDescription = ""
	p.Technologies = nil

	// 5 из 8 проверок: округление до ближайшего целого процента.
	assert.Equal(t, 63, CompletionPercent(p))
}

func TestCompletionStatus_Complete(t *testing.T) {
	assert.Equal(t, models.ProjectStatusComplete, CompletionStatus(fullProject()))
}

func TestCompletionStatus_FlipAnyPredicate(t *testing.T) {
	// Сброс любого из пяти определяющих условий возвращает проект в черновик.
	mutations := map[string]func(p *models.Project){
		"title":       func(p *models.Project) { p.Title = "" },
		"description": func(p *models.Project) { p.Description = "" },
		"images":      func(p *models.Project) { p.Images = nil },
		"briefing":    func(p *models.Project) { p.BriefingDescription = "" },
		"result":      func(p *models.Project) { p.ResultDescription = "" },
	}

	for name, mutate := range mutations {
		p := fullProject()
		mutate(p)
		assert.Equal(t, models.ProjectStatusDraft, CompletionStatus(p), "предикат %s", name)
	}
}

func TestCompletionStatus_IgnoresPercentOnlyPredicates(t *testing.T) {
	// Этапы challenge/execution и технологии влияют на процент, но не на статус.
	p := fullProject()
	p.ChallengeDescription = ""
	p.ExecutionDescription = ""
	p.Technologies = nil

	assert.Equal(t, models.ProjectStatusComplete, CompletionStatus(p))
}
