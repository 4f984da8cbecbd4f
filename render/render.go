// Package render turns workflow results into shareable output: a
// markdown report with a sources section, and a sanitized HTML version
// of it.
package render

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/agrigraph/durag/workflow"
)

// Markdown renders an answer and its citations as a markdown document.
// Web citations become links; knowledge graph citations are listed by
// document name.
func Markdown(result workflow.Result) string {
	var b strings.Builder
	b.WriteString(result.Answer)

	cited := false
	for _, c := range result.Citations {
		if c.Title == "" && c.URL == "" {
			continue
		}
		if !cited {
			b.WriteString("\n\n### Sources\n")
			cited = true
		}
		switch {
		case c.URL != "" && c.Title != "":
			fmt.Fprintf(&b, "\n- [%s](%s)", c.Title, c.URL)
		case c.URL != "":
			fmt.Fprintf(&b, "\n- <%s>", c.URL)
		default:
			fmt.Fprintf(&b, "\n- %s", c.Title)
		}
	}
	return b.String()
}

// HTML renders the markdown report and sanitizes the output for
// embedding in web pages.
func HTML(result workflow.Result) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(Markdown(result)), p, renderer)
	return string(bluemonday.UGCPolicy().SanitizeBytes(rendered))
}
