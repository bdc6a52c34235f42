package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDoc(t *testing.T, id, category string, keywords ...string) *Document {
	t.Helper()
	d, err := NewDocument(DocumentFields{
		ID:       id,
		Category: category,
		Keywords: keywords,
		Body:     "body of " + id,
		Source:   id + ".md",
	})
	require.NoError(t, err)
	return d
}

func skillSource(id, category string, keywords []string, body string) Source {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", id)
	fmt.Fprintf(&b, "category: %s\n", category)
	b.WriteString("keywords:\n")
	for _, k := range keywords {
		fmt.Fprintf(&b, "  - %q\n", k)
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return Source{ID: "skills/" + id + "/SKILL.md", Content: []byte(b.String())}
}
