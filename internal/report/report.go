// Package report renders planner output as a standalone HTML document
// for sharing outside the terminal.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/paperscout/paperscout/internal/agent"
)

// Section is one rendered plan artifact.
type Section struct {
	Title string
	Body  template.HTML
}

type pageData struct {
	Query    string
	Sections []Section
}

// sectionTitles maps result keys to human headings.
var sectionTitles = map[string]string{
	"summary":            "Structured Summary",
	"methods_comparison": "Methods Comparison",
	"slides":             "Slide Outline",
}

// WriteHTML renders the plan results into a standalone HTML file at
// path. Sections appear in task execution order.
func WriteHTML(path, query string, results agent.PlanResult, order []agent.Task) error {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	)

	var sections []Section
	for _, task := range order {
		text, ok := results[task.Key()]
		if !ok {
			continue
		}

		var buf bytes.Buffer
		if err := md.Convert([]byte(text), &buf); err != nil {
			return fmt.Errorf("rendering %s: %w", task.Key(), err)
		}

		title := sectionTitles[task.Key()]
		if title == "" {
			title = task.Key()
		}
		sections = append(sections, Section{Title: title, Body: template.HTML(buf.String())})
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, pageData{Query: strings.TrimSpace(query), Sections: sections}); err != nil {
		return fmt.Errorf("executing report template: %w", err)
	}

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}

	return nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Research report: {{.Query}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
h1 { border-bottom: 1px solid #d1d9e0; padding-bottom: .3rem; }
section { margin-bottom: 2rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 6px; }
</style>
</head>
<body>
<h1>Research report: {{.Query}}</h1>
{{range .Sections}}<section>
<h2>{{.Title}}</h2>
{{.Body}}
</section>
{{end}}</body>
</html>
`
