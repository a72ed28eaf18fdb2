package render

import "github.com/LucasFJU/portfolio-flow-ai/internal/models"

func init() {
	register(&baseRenderer{name: models.TemplateSlides, tmpl: mustParse(models.TemplateSlides, slidesBody)})
}

// Шаблон slides: линейная последовательность секций — вступление, проект,
// дополнительные изображения. Навигация по якорям, индексы без зацикливания.
const slidesBody = `{{$slides := slides .Projects}}
{{range $i, $s := $slides}}
<section class="project" id="slide-{{$i}}">
  {{if eq $s.Type "intro"}}
    <h1>{{deref $.Profile.Name}}</h1>
    <p>{{deref $.Profile.Area}}{{with deref $.Profile.Niche}} · {{.}}{{end}}</p>
    {{with deref $.Profile.Bio}}<p>{{.}}</p>{{end}}
  {{else if eq $s.Type "project"}}
    <h2>{{$s.Project.Title}}</h2>
    {{with first $s.Project.Images}}<img src="{{.}}" alt="">{{end}}
    {{with $s.Project.Description}}<p>{{.}}</p>{{end}}
    {{range $s.Project.Technologies}}<span class="tag">{{.}}</span>{{end}}
    {{with video $s.Project.VideoURL}}{{if .Embed}}<iframe class="video" src="{{.Embed}}" allowfullscreen></iframe>{{end}}{{end}}
  {{else}}
    <img src="{{$s.Image}}" alt="">
  {{end}}
  <nav>
    {{if gt $i 0}}<a href="#slide-{{sub $i 1}}">‹</a>{{end}}
    {{if lt (add $i 1) (len $slides)}}<a href="#slide-{{add $i 1}}">›</a>{{end}}
  </nav>
</section>
{{end}}
`
