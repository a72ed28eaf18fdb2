package portfolio

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

func namedProjects(titles ...string) []models.Project {
	projects := make([]models.Project, 0, len(titles))
	for _, title := range titles {
		projects = append(projects, models.Project{ID: uuid.New(), Title: title})
	}
	return projects
}

func titlesOf(projects []models.Project) []string {
	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestSortProjects_RankedFirstUnrankedStable(t *testing.T) {
	// Проекты [A,B,C,D] в порядке создания, явный порядок [C,A] → [C,A,B,D].
	projects := namedProjects("A", "B", "C", "D")
	order := []uuid.UUID{projects[2].ID, projects[0].ID}

	sorted := SortProjects(projects, order)

	assert.Equal(t, []string{"C", "A", "B", "D"}, titlesOf(sorted))
}

func TestSortProjects_EmptyOrderKeepsOriginal(t *testing.T) {
	projects := namedProjects("A", "B", "C")

	sorted := SortProjects(projects, nil)

	assert.Equal(t, []string{"A", "B", "C"}, titlesOf(sorted))
}

func TestSortProjects_UnknownIDsIgnored(t *testing.T) {
	projects := namedProjects("A", "B")
	order := []uuid.UUID{uuid.New(), projects[1].ID}

	sorted := SortProjects(projects, order)

	assert.Equal(t, []string{"B", "A"}, titlesOf(sorted))
}

func TestSortProjects_DoesNotMutateInput(t *testing.T) {
	projects := namedProjects("A", "B", "C")
	order := []uuid.UUID{projects[2].ID}

	_ = SortProjects(projects, order)

	assert.Equal(t, []string{"A", "B", "C"}, titlesOf(projects))
}
