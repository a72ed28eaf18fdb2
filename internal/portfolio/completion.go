package portfolio

import (
	"math"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

// CompletionPercent считает процент заполненности проекта для прогресс-бара.
// Восемь проверок: заголовок, описание, хотя бы одно изображение,
// описания всех четырёх этапов и хотя бы одна технология.
func CompletionPercent(p *models.Project) int {
	checks := []bool{
		p.Title != "",
		p.Description != "",
		len(p.Images) > 0,
		p.BriefingDescription != "",
		p.ChallengeDescription != "",
		p.ExecutionDescription != "",
		p.ResultDescription != "",
		len(p.Technologies) > 0,
	}

	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}

	return int(math.Round(float64(done) / float64(len(checks)) * 100))
}

// CompletionStatus вычисляет хранимый статус проекта.
// Канонический набор из пяти условий: заголовок, описание, изображение,
// брифинг и результат. Статус "complete" только при выполнении всех пяти.
func CompletionStatus(p *models.Project) string {
	checks := []bool{
		p.Title != "",
		p.Description != "",
		len(p.Images) > 0,
		p.BriefingDescription != "",
		p.ResultDescription != "",
	}

	for _, ok := range checks {
		if !ok {
			return models.ProjectStatusDraft
		}
	}

	return models.ProjectStatusComplete
}
