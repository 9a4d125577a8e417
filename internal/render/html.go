package render

import (
	"html/template"
	"os"

	"github.com/D4rk1d3/study/internal/entity"
)

var htmlTmpl = template.Must(template.New("notes").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { text-align: center; }
  .generated { text-align: center; color: #777; font-size: .85rem; margin-bottom: 2.5rem; }
  nav ol { list-style: none; padding-left: 0; }
  nav li { margin: .2rem 0; }
  nav li.l2 { padding-left: 1.2rem; }
  nav li.l3 { padding-left: 2.4rem; }
  p { line-height: 1.6; text-align: justify; }
  dl dt { font-weight: bold; margin-top: .8rem; }
  dl dd { margin-left: 0; color: #444; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="generated">Generated on {{.Generated}}</div>
{{if .TOC}}<nav>
<h2>Table of Contents</h2>
<ol>
{{range .TOC}}  <li class="l{{.Level}}">{{.Number}}&ensp;{{.Title}}</li>
{{end}}</ol>
</nav>
{{end}}<main>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}</main>
{{if .Glossary}}<section>
<h2>Glossary</h2>
<dl>
{{range .Glossary}}  <dt>{{.Term}}</dt><dd>{{.Definition}}</dd>
{{end}}</dl>
</section>
{{end}}</body>
</html>
`))

type htmlData struct {
	Title      string
	Generated  string
	TOC        []entity.TOCEntry
	Paragraphs []string
	Glossary   []entity.GlossaryEntry
}

func writeHTML(path string, in Input) error {
	data := htmlData{
		Title:      in.Title,
		Generated:  in.GeneratedAt.Format("2 January 2006"),
		Paragraphs: paragraphs(in.Content),
		Glossary:   in.Glossary,
	}
	if in.WithTOC && len(in.Headings) > 0 {
		data.TOC = BuildTOC(in.Headings)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := htmlTmpl.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
