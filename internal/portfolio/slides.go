package portfolio

import "github.com/LucasFJU/portfolio-flow-ai/internal/models"

// Типы слайдов презентационного шаблона.
const (
	SlideIntro   = "intro"
	SlideProject = "project"
	SlideImage   = "image"
)

// Slide — один слайд линейной последовательности шаблона slides.
type Slide struct {
	Type    string
	Project *models.Project
	Image   string
}

// BuildSlides разворачивает портфолио в линейную последовательность:
// вступление, затем по слайду на проект и по слайду на каждое
// дополнительное изображение проекта.
func BuildSlides(projects []models.Project) []Slide {
	slides := []Slide{{Type: SlideIntro}}

	for i := range projects {
		project := &projects[i]
		slides = append(slides, Slide{Type: SlideProject, Project: project})
		if len(project.Images) > 1 {
			for _, img := range project.Images[1:] {
				slides = append(slides, Slide{Type: SlideImage, Project: project, Image: img})
			}
		}
	}

	return slides
}

// ClampSlideIndex ограничивает навигацию диапазоном [0, len-1] без зацикливания.
func ClampSlideIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= total {
		return total - 1
	}
	return index
}
