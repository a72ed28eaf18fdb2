package render

import "github.com/LucasFJU/portfolio-flow-ai/internal/models"

func init() {
	register(&baseRenderer{name: models.TemplateGallery, tmpl: mustParse(models.TemplateGallery, galleryBody)})
}

// Шаблон gallery: визуальная сетка без нарративных этапов,
// плотность колонок задаётся настройкой columns.
const galleryBody = `<header>
<h1>{{deref .Profile.Name}}</h1>
<p>{{deref .Profile.Area}}{{with deref .Profile.Niche}} · {{.}}{{end}}</p>
</header>
<div class="grid">
{{range .Projects}}
  <figure class="project">
    {{with first .Images}}<img src="{{.}}" alt="">{{end}}
    <figcaption>
      <h3>{{.Title}}</h3>
      {{range .Technologies}}<span class="tag">{{.}}</span>{{end}}
    </figcaption>
  </figure>
{{end}}
</div>
`
