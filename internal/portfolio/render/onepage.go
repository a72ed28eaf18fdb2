package render

import "github.com/LucasFJU/portfolio-flow-ai/internal/models"

func init() {
	register(&baseRenderer{name: models.TemplateOnePage, tmpl: mustParse(models.TemplateOnePage, onepageBody)})
}

// Шаблон onepage: компактная одностраничная версия — обложка,
// краткое описание и результат каждого проекта, контактный блок.
const onepageBody = `<header>
<h1>{{deref .Profile.Name}}</h1>
<p>{{deref .Profile.Area}}{{with deref .Profile.Niche}} · {{.}}{{end}}</p>
{{with deref .Profile.Bio}}<p>{{.}}</p>{{end}}
</header>
{{range .Projects}}
<section class="project">
  <h3>{{.Title}}</h3>
  {{with first .Images}}<img src="{{.}}" alt="">{{end}}
  {{with .Description}}<p>{{.}}</p>{{end}}
  {{with .ResultDescription}}<p><strong>{{.}}</strong></p>{{end}}
  {{range .Technologies}}<span class="tag">{{.}}</span>{{end}}
</section>
{{end}}
<footer>
<p>{{deref .Profile.IdealClient}}</p>
</footer>
`
