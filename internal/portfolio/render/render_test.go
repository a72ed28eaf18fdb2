package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
)

func strPtr(s string) *string { return &s }

func renderInput() Input {
	video := "https://youtu.be/dQw4w9WgXcQ"
	return Input{
		Profile: &models.Profile{
			Name:  strPtr("Ana Souza"),
			Area:  strPtr("Design"),
			Niche: strPtr("Branding"),
			Bio:   strPtr("Crio marcas memoráveis."),
		},
		Projects: []models.Project{
			{
				ID:                  uuid.New(),
				Title:               "Rebranding Acme",
				Description:         "Redesign completo da marca.",
				Images:              []string{"/media/a.jpg", "/media/b.jpg", "/media/c.jpg"},
				VideoURL:            &video,
				BriefingDescription: "Запрос клиента на обновление.",
				ResultDescription:   "Продажи выросли на 40%.",
				Technologies:        []string{"Figma", "Illustrator"},
				Links:               models.ProjectLinks{{Label: "Behance", URL: "https://behance.net/acme"}},
				Status:              models.ProjectStatusComplete,
				CreatedAt:           time.Now(),
			},
		},
		Settings:  models.DefaultPortfolioSettings(uuid.New()),
		ColorMode: "light",
	}
}

func TestForTemplate(t *testing.T) {
	// Все четыре шаблона зарегистрированы под своими именами.
	for _, name := range models.ValidTemplates {
		r := ForTemplate(name)
		require.NotNil(t, r)
		assert.Equal(t, name, r.Name())
	}

	// Неизвестный шаблон откатывается к case.
	assert.Equal(t, models.TemplateCase, ForTemplate("brutalist").Name())
	assert.Equal(t, models.TemplateCase, ForTemplate("").Name())
}

func TestRenderAllTemplates(t *testing.T) {
	in := renderInput()

	for _, name := range models.ValidTemplates {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ForTemplate(name).Render(&buf, in))

			html := buf.String()
			assert.Contains(t, html, "<!DOCTYPE html>")
			assert.Contains(t, html, "Ana Souza")
			assert.Contains(t, html, "Rebranding Acme")
			// Настройки отображения попадают в каркас страницы.
			assert.Contains(t, html, "#8B5CF6")
			assert.Contains(t, html, "DM Sans")
		})
	}
}

func TestRenderCaseShowsStagesAndVideo(t *testing.T) {
	in := renderInput()
	var buf bytes.Buffer
	require.NoError(t, ForTemplate(models.TemplateCase).Render(&buf, in))

	html := buf.String()
	assert.Contains(t, html, models.StageBriefingTitle)
	assert.Contains(t, html, models.StageResultTitle)
	// Этапы без описания не отрисовываются.
	assert.NotContains(t, html, models.StageChallengeTitle)
	assert.Contains(t, html, "youtube.com/embed/dQw4w9WgXcQ")
	assert.Contains(t, html, "https://behance.net/acme")
}

func TestRenderGallerySkipsNarrative(t *testing.T) {
	in := renderInput()
	var buf bytes.Buffer
	require.NoError(t, ForTemplate(models.TemplateGallery).Render(&buf, in))

	html := buf.String()
	assert.NotContains(t, html, models.StageBriefingTitle)
	assert.Contains(t, html, "Figma")
}

func TestRenderSlidesSections(t *testing.T) {
	in := renderInput()
	var buf bytes.Buffer
	require.NoError(t, ForTemplate(models.TemplateSlides).Render(&buf, in))

	// Вступление + проект + два дополнительных изображения.
	html := buf.String()
	assert.Equal(t, 4, strings.Count(html, `<section class="project"`))
	assert.Contains(t, html, `id="slide-0"`)
	assert.Contains(t, html, `id="slide-3"`)
}

func TestRenderDarkMode(t *testing.T) {
	in := renderInput()
	in.ColorMode = "dark"
	var buf bytes.Buffer
	require.NoError(t, ForTemplate(models.TemplateOnePage).Render(&buf, in))
	assert.Contains(t, buf.String(), "#111113")
}

func TestRenderRequiresProfileAndSettings(t *testing.T) {
	var buf bytes.Buffer
	err := ForTemplate(models.TemplateCase).Render(&buf, Input{})
	assert.Error(t, err)
}
