package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

func TestBuildSlides_FlattensProjectsAndExtraImages(t *testing.T) {
	projects := []models.Project{
		{Title: "A", Images: []string{"a1.png", "a2.png", "a3.png"}},
		{Title: "B", Images: []string{"b1.png"}},
		{Title: "C"},
	}

	slides := BuildSlides(projects)

	// intro + A + 2 доп. изображения A + B + C
	assert.Len(t, slides, 6)
	assert.Equal(t, SlideIntro, slides[0].Type)
	assert.Equal(t, SlideProject, slides[1].Type)
	assert.Equal(t, "A", slides[1].Project.Title)
	assert.Equal(t, SlideImage, slides[2].Type)
	assert.Equal(t, "a2.png", slides[2].Image)
	assert.Equal(t, "a3.png", slides[3].Image)
	assert.Equal(t, "B", slides[4].Project.Title)
	assert.Equal(t, "C", slides[5].Project.Title)
}

func TestBuildSlides_EmptyPortfolio(t *testing.T) {
	slides := BuildSlides(nil)

	assert.Len(t, slides, 1)
	assert.Equal(t, SlideIntro, slides[0].Type)
}

func TestClampSlideIndex(t *testing.T) {
	// Навигация ограничена границами без зацикливания.
	assert.Equal(t, 0, ClampSlideIndex(-1, 5))
	assert.Equal(t, 0, ClampSlideIndex(0, 5))
	assert.Equal(t, 3, ClampSlideIndex(3, 5))
	assert.Equal(t, 4, ClampSlideIndex(5, 5))
	assert.Equal(t, 4, ClampSlideIndex(100, 5))
	assert.Equal(t, 0, ClampSlideIndex(2, 0))
}
