package search

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// stringList accepts either a YAML sequence or a comma-separated scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var out []string
		for _, part := range strings.Split(n.Value, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*l = out
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return errors.Errorf("line %d: list entries must be plain strings", c.Line)
			}
			out = append(out, c.Value)
		}
		*l = out
		return nil
	}
	return errors.Errorf("line %d: expected a list or a comma-separated string", n.Line)
}

type header struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"`
	Description string     `yaml:"description"`
	Keywords    stringList `yaml:"keywords"`
	Tags        stringList `yaml:"tags"`
	Category    string     `yaml:"category"`
	PainPoints  []int      `yaml:"pain_points"`
}

// splitFrontmatter separates the header block delimited by "---" lines from
// the body. ok is false when no complete header block is present.
func splitFrontmatter(content string) (fm string, body string, ok bool) {
	s := strings.TrimPrefix(content, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", s, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm = strings.Join(lines[1:i], "\n")
			body = strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
			return fm, body, true
		}
	}
	return "", s, false
}

// parseDocument turns one source into a Document. Every failure is reported as
// a *ParseError naming the source.
func parseDocument(src Source) (*Document, *ParseError) {
	fm, body, ok := splitFrontmatter(string(src.Content))
	if !ok {
		return nil, &ParseError{Source: src.ID, Err: errors.New("missing frontmatter header")}
	}

	var h header
	if err := yaml.Unmarshal([]byte(fm), &h); err != nil {
		return nil, &ParseError{Source: src.ID, Err: errors.Wrap(err, "malformed frontmatter")}
	}

	id := strings.TrimSpace(h.ID)
	if id == "" {
		id = strings.TrimSpace(h.Name)
	}
	rawKeywords := h.Keywords
	if len(rawKeywords) == 0 {
		rawKeywords = h.Tags
	}
	keywords := normalizeKeywords(rawKeywords)
	category := normalizeField(h.Category)

	var missing []string
	if id == "" {
		missing = append(missing, "id")
	}
	if len(keywords) == 0 {
		missing = append(missing, "keywords")
	}
	if category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, &ParseError{Source: src.ID, Missing: missing}
	}

	for _, p := range h.PainPoints {
		if p < 0 {
			return nil, &ParseError{Source: src.ID, Err: errors.Errorf("pain_points must be non-negative, got %d", p)}
		}
	}

	kind := src.Kind
	if h.Kind != "" {
		k, ok := ParseKind(h.Kind)
		if !ok {
			return nil, &ParseError{Source: src.ID, Err: errors.Errorf("unknown kind %q", h.Kind)}
		}
		kind = k
	}
	if kind == "" {
		kind = KindSkill
	}

	name := strings.TrimSpace(h.Name)
	if name == "" {
		name = id
	}
	desc := strings.TrimSpace(h.Description)
	if desc == "" {
		desc = inferDescriptionFromBody(body)
	}

	painPoints := make([]int, len(h.PainPoints))
	copy(painPoints, h.PainPoints)

	return &Document{
		id:          id,
		kind:        kind,
		name:        name,
		description: desc,
		keywords:    keywords,
		category:    category,
		painPoints:  painPoints,
		body:        body,
		source:      src.ID,
	}, nil
}
