// Package render содержит четыре взаимозаменяемых шаблона публичного портфолио.
// Все шаблоны принимают одинаковый вход и только читают данные:
// переключение шаблона в настройках не теряет и не изменяет записи.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/portfolio"
)

// Input — общий контракт всех шаблонов: упорядоченные проекты,
// профиль владельца, настройки отображения и цветовой режим.
type Input struct {
	Profile   *models.Profile
	Projects  []models.Project
	Settings  *models.PortfolioSettings
	ColorMode string
}

// Renderer отрисовывает портфолио в HTML документ.
type Renderer interface {
	Name() string
	Render(w io.Writer, in Input) error
}

// renderers — таблица диспетчеризации по settings.template.
var renderers = map[string]Renderer{}

func register(r Renderer) {
	renderers[r.Name()] = r
}

// ForTemplate возвращает рендерер для выбранного шаблона.
// Неизвестное значение откатывается к шаблону case.
func ForTemplate(name string) Renderer {
	if r, ok := renderers[name]; ok {
		return r
	}
	return renderers[models.TemplateCase]
}

// funcs — общие помощники шаблонов.
var funcs = template.FuncMap{
	"video": func(url *string) portfolio.VideoInfo {
		if url == nil {
			return portfolio.VideoInfo{}
		}
		return portfolio.ParseVideoURL(*url)
	},
	"stages": func(p models.Project) []models.ProjectStage {
		return p.Stages()
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"first": func(items []string) string {
		if len(items) == 0 {
			return ""
		}
		return items[0]
	},
	"rest": func(items []string) []string {
		if len(items) <= 1 {
			return nil
		}
		return items[1:]
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"slides": func(projects []models.Project) []portfolio.Slide {
		return portfolio.BuildSlides(projects)
	},
}

// mustParse собирает шаблон из общего каркаса и тела конкретного варианта.
func mustParse(name, body string) *template.Template {
	t := template.New(name).Funcs(funcs)
	template.Must(t.Parse(layout))
	template.Must(t.New("body").Parse(body))
	return t
}

// layout — общий HTML каркас: шрифт и основной цвет берутся из настроек,
// фон зависит от цветового режима.
const layout = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{deref .Profile.Name}} — Portfólio</title>
<style>
:root { --primary: {{.Settings.PrimaryColor}}; }
body {
  margin: 0;
  font-family: '{{.Settings.Font}}', sans-serif;
  background: {{if eq .ColorMode "dark"}}#111113{{else}}#ffffff{{end}};
  color: {{if eq .ColorMode "dark"}}#e4e4e7{{else}}#18181b{{end}};
}
a { color: var(--primary); }
.container { max-width: 960px; margin: 0 auto; padding: 2rem 1rem; }
.grid { display: grid; gap: 1rem; grid-template-columns: repeat({{.Settings.Columns}}, 1fr); }
.tag { display: inline-block; padding: 0.1rem 0.6rem; border-radius: 999px; border: 1px solid var(--primary); font-size: 0.8rem; margin-right: 0.3rem; }
.project img { width: 100%; border-radius: 0.5rem; }
.stage h4 { color: var(--primary); margin-bottom: 0.2rem; }
iframe.video { width: 100%; aspect-ratio: 16 / 9; border: 0; border-radius: 0.5rem; }
</style>
</head>
<body>
<div class="container">
{{template "body" .}}
</div>
</body>
</html>
`

type baseRenderer struct {
	name string
	tmpl *template.Template
}

func (r *baseRenderer) Name() string { return r.name }

func (r *baseRenderer) Render(w io.Writer, in Input) error {
	if in.Profile == nil || in.Settings == nil {
		return fmt.Errorf("render: профиль и настройки обязательны")
	}
	if err := r.tmpl.Execute(w, in); err != nil {
		return fmt.Errorf("render: шаблон %s: %w", r.name, err)
	}
	return nil
}
