package search

import (
	"context"

	"github.com/kamusis/skillscope/internal/logger"
)

// Snapshot is an immutable view of the corpus as of one successful load.
// It is safe for concurrent readers.
type Snapshot struct {
	docs []*Document
	byID map[string]*Document
}

// Load parses sources into a new Snapshot. Sources that fail to parse, or that
// repeat an id already loaded, are skipped and returned as warnings; a bad
// source never aborts the load.
func Load(ctx context.Context, sources []Source) (*Snapshot, []*ParseError) {
	log := logger.G(ctx)

	var warns []*ParseError
	docs := make([]*Document, 0, len(sources))
	for _, src := range sources {
		doc, perr := parseDocument(src)
		if perr != nil {
			warns = append(warns, perr)
			entry := log.WithField("source", src.ID)
			if len(perr.Missing) > 0 {
				entry = entry.WithField("missing", perr.Missing)
			}
			if perr.Err != nil {
				entry = entry.WithError(perr.Err)
			}
			entry.Warn("skipping document")
			continue
		}
		docs = append(docs, doc)
	}

	snap, dupes := newSnapshot(docs)
	for _, d := range dupes {
		perr := &ParseError{Source: d.source, Err: &duplicateIDError{id: d.id}}
		warns = append(warns, perr)
		log.WithField("source", d.source).WithField("id", d.id).Warn("skipping document with duplicate id")
	}

	log.WithField("documents", len(snap.docs)).WithField("skipped", len(warns)).Debug("corpus loaded")
	return snap, warns
}

// NewSnapshot builds a snapshot from documents that were parsed elsewhere
// (for example restored from a persisted index). The first document wins on
// duplicate ids.
func NewSnapshot(docs []*Document) *Snapshot {
	snap, _ := newSnapshot(docs)
	return snap
}

func newSnapshot(docs []*Document) (*Snapshot, []*Document) {
	s := &Snapshot{
		docs: make([]*Document, 0, len(docs)),
		byID: make(map[string]*Document, len(docs)),
	}
	var dupes []*Document
	for _, d := range docs {
		if _, exists := s.byID[d.id]; exists {
			dupes = append(dupes, d)
			continue
		}
		s.byID[d.id] = d
		s.docs = append(s.docs, d)
	}
	return s, dupes
}

// All returns every document in insertion order.
func (s *Snapshot) All() []*Document {
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of documents.
func (s *Snapshot) Len() int { return len(s.docs) }

// Get returns the document with the given id or a *NotFoundError.
func (s *Snapshot) Get(id string) (*Document, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return d, nil
}

// Kind returns the documents of one kind in insertion order.
func (s *Snapshot) Kind(k Kind) []*Document {
	var out []*Document
	for _, d := range s.docs {
		if d.kind == k {
			out = append(out, d)
		}
	}
	return out
}

type duplicateIDError struct {
	id string
}

func (e *duplicateIDError) Error() string {
	return "duplicate id " + e.id
}

// DocumentFields carries every field of a Document for reconstruction outside
// the parser. Keywords and Category are normalized again on the way in.
type DocumentFields struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	Keywords    []string
	Category    string
	PainPoints  []int
	Body        string
	Source      string
}

// NewDocument builds a Document from already-extracted fields, applying the
// same invariants as the parser.
func NewDocument(f DocumentFields) (*Document, error) {
	keywords := normalizeKeywords(f.Keywords)
	category := normalizeField(f.Category)

	var missing []string
	if f.ID == "" {
		missing = append(missing, "id")
	}
	if len(keywords) == 0 {
		missing = append(missing, "keywords")
	}
	if category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, &ParseError{Source: f.Source, Missing: missing}
	}

	kind := f.Kind
	if kind == "" {
		kind = KindSkill
	}
	name := f.Name
	if name == "" {
		name = f.ID
	}
	painPoints := make([]int, len(f.PainPoints))
	copy(painPoints, f.PainPoints)

	return &Document{
		id:          f.ID,
		kind:        kind,
		name:        name,
		description: f.Description,
		keywords:    keywords,
		category:    category,
		painPoints:  painPoints,
		body:        f.Body,
		source:      f.Source,
	}, nil
}

// Fields returns a copy of every field of d.
func (d *Document) Fields() DocumentFields {
	return DocumentFields{
		ID:          d.id,
		Kind:        d.kind,
		Name:        d.name,
		Description: d.description,
		Keywords:    d.Keywords(),
		Category:    d.category,
		PainPoints:  d.PainPoints(),
		Body:        d.body,
		Source:      d.source,
	}
}
