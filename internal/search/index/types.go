package index

// Manifest describes a persisted catalog and how to interpret it.
type Manifest struct {
	IndexVersion  int    `json:"index_version"`
	CreatedAt     string `json:"created_at"`
	CorpusHash    string `json:"corpus_hash"`
	DocumentCount int    `json:"document_count"`
	DocumentsFile string `json:"documents_file"`
}

// Entry is one document row in documents.jsonl.
type Entry struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	PainPoints  []int    `json:"pain_points,omitempty"`
	Body        string   `json:"body"`
	Source      string   `json:"source"`
	TextHash    string   `json:"text_hash"`
}

// Index is a loaded persisted catalog.
type Index struct {
	Manifest Manifest
	Entries  []Entry
}

const (
	currentVersion       = 1
	manifestFile         = "index_manifest.json"
	defaultDocumentsFile = "documents.jsonl"
)
