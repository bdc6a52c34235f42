package search

// Kind classifies a document. Skills, commands and workflows share the same
// matching and ranking machinery.
type Kind string

const (
	KindSkill    Kind = "skill"
	KindCommand  Kind = "command"
	KindWorkflow Kind = "workflow"
)

// ParseKind maps a header or config value to a Kind. Plural forms are accepted
// because corpus directories are usually named that way.
func ParseKind(s string) (Kind, bool) {
	switch normalizeField(s) {
	case "skill", "skills":
		return KindSkill, true
	case "command", "commands":
		return KindCommand, true
	case "workflow", "workflows":
		return KindWorkflow, true
	}
	return "", false
}

// Source is one raw document as handed over by a corpus loader: an identifier
// (usually a relative path) and the full file content.
type Source struct {
	ID      string
	Kind    Kind
	Content []byte
}

// Document is a parsed, immutable skill document. Use the accessor methods;
// slices are copied on the way out.
type Document struct {
	id          string
	kind        Kind
	name        string
	description string
	keywords    []string
	category    string
	painPoints  []int
	body        string
	source      string
}

func (d *Document) ID() string          { return d.id }
func (d *Document) Kind() Kind          { return d.kind }
func (d *Document) Name() string        { return d.name }
func (d *Document) Description() string { return d.description }
func (d *Document) Category() string    { return d.category }
func (d *Document) Body() string        { return d.body }
func (d *Document) Source() string      { return d.source }

// Keywords returns the normalized keywords in declaration order.
func (d *Document) Keywords() []string {
	out := make([]string, len(d.keywords))
	copy(out, d.keywords)
	return out
}

// PainPoints returns the issue-tracker references declared in the header.
func (d *Document) PainPoints() []int {
	out := make([]int, len(d.painPoints))
	copy(out, d.painPoints)
	return out
}

// MatchResult is the score of one document against one query.
type MatchResult struct {
	DocumentID      string
	Score           float64
	MatchedKeywords []string
}

// Material is a selected document ready to be injected into a downstream context.
type Material struct {
	ID   string
	Kind Kind
	Name string
	Body string
}
