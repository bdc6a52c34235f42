package search

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// inferDescriptionFromBody returns the first Markdown paragraph of body with
// its lines joined. Headings, code blocks and thematic breaks are skipped.
func inferDescriptionFromBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	src := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var out string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindParagraph {
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		parts := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if p := strings.TrimSpace(string(seg.Value(src))); p != "" {
				parts = append(parts, p)
			}
		}
		out = strings.Join(parts, " ")
		return ast.WalkStop, nil
	})
	return out
}
