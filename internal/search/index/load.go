package index

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kamusis/skillscope/internal/search"
)

// Load reads an index from dir (manifest + documents) under a shared lock.
func Load(ctx context.Context, dir string) (*Index, error) {
	unlock, err := acquireLock(ctx, dir, true, DefaultLockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	manifestPath := filepath.Join(dir, manifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.IndexVersion != currentVersion {
		return nil, errors.Wrapf(ErrVersionMismatch, "got %d want %d", m.IndexVersion, currentVersion)
	}
	if m.DocumentsFile == "" {
		m.DocumentsFile = defaultDocumentsFile
	}

	entries, err := loadEntries(filepath.Join(dir, m.DocumentsFile))
	if err != nil {
		return nil, err
	}
	if len(entries) != m.DocumentCount {
		return nil, fmt.Errorf("document count mismatch: manifest %d, file %d", m.DocumentCount, len(entries))
	}
	return &Index{Manifest: m, Entries: entries}, nil
}

func loadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open documents file %s: %w", path, err)
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	// Bodies can be long; allow lines up to 16MiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("invalid documents JSONL %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read documents file %s: %w", path, err)
	}
	return out, nil
}

// Snapshot rebuilds an immutable search snapshot from the index entries.
func (idx *Index) Snapshot() (*search.Snapshot, error) {
	docs := make([]*search.Document, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		kind, ok := search.ParseKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("entry %q has unknown kind %q", e.ID, e.Kind)
		}
		d, err := search.NewDocument(search.DocumentFields{
			ID:          e.ID,
			Kind:        kind,
			Name:        e.Name,
			Description: e.Description,
			Keywords:    e.Keywords,
			Category:    e.Category,
			PainPoints:  e.PainPoints,
			Body:        e.Body,
			Source:      e.Source,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "entry %q", e.ID)
		}
		docs = append(docs, d)
	}
	return search.NewSnapshot(docs), nil
}

// Stale reports whether sources differ from the corpus the index was built from.
func (idx *Index) Stale(sources []search.Source) bool {
	return idx.Manifest.CorpusHash != CorpusHash(sources)
}
