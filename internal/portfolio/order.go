package portfolio

import (
	"sort"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

// SortProjects упорядочивает проекты по явному списку project_order из настроек.
// Проекты из списка идут первыми по возрастанию ранга; проекты вне списка
// сохраняют исходный относительный порядок и идут после всех ранжированных.
// Сортировка стабильная.
func SortProjects(projects []models.Project, order []uuid.UUID) []models.Project {
	rank := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		rank[id] = i
	}

	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)

	sort.SliceStable(sorted, func(i, j int) bool {
		ri, okI := rank[sorted[i].ID]
		rj, okJ := rank[sorted[j].ID]
		switch {
		case okI && okJ:
			return ri < rj
		case okI:
			return true
		case okJ:
			return false
		default:
			return false
		}
	})

	return sorted
}
