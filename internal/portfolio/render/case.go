package render

import "github.com/LucasFJU/portfolio-flow-ai/internal/models"

func init() {
	register(&baseRenderer{name: models.TemplateCase, tmpl: mustParse(models.TemplateCase, caseBody)})
}

// Шаблон case-study: полная история каждого проекта со всеми четырьмя этапами,
// галереей изображений, видео и ссылками.
const caseBody = `<header>
<h1>{{deref .Profile.Name}}</h1>
<p>{{deref .Profile.Area}}{{with deref .Profile.Niche}} · {{.}}{{end}}</p>
{{with deref .Profile.Bio}}<p>{{.}}</p>{{end}}
</header>
{{range .Projects}}
<article class="project">
  <h2>{{.Title}}</h2>
  {{with .Description}}<p>{{.}}</p>{{end}}
  {{with first .Images}}<img src="{{.}}" alt="">{{end}}
  {{range stages .}}{{if .Description}}
  <section class="stage">
    <h4>{{.Title}}</h4>
    <p>{{.Description}}</p>
  </section>
  {{end}}{{end}}
  {{with video .VideoURL}}{{if .Embed}}<iframe class="video" src="{{.Embed}}" allowfullscreen></iframe>{{end}}{{end}}
  {{with rest .Images}}
  <div class="grid">
    {{range .}}<img src="{{.}}" alt="">{{end}}
  </div>
  {{end}}
  {{range .Technologies}}<span class="tag">{{.}}</span>{{end}}
  {{range .Links}}<p><a href="{{.URL}}">{{.Label}}</a></p>{{end}}
</article>
{{end}}
`
