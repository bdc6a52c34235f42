package index

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamusis/skillscope/internal/search"
)

// Write writes index artifacts to dir while holding the index lock exclusively.
func Write(ctx context.Context, dir string, manifest Manifest, entries []Entry) error {
	unlock, err := acquireLock(ctx, dir, false, DefaultLockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	if manifest.IndexVersion == 0 {
		manifest.IndexVersion = currentVersion
	}
	if manifest.DocumentsFile == "" {
		manifest.DocumentsFile = defaultDocumentsFile
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	manifest.DocumentCount = len(entries)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create index dir %s: %w", dir, err)
	}

	// manifest
	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	// documents jsonl
	df, err := os.Create(filepath.Join(dir, manifest.DocumentsFile))
	if err != nil {
		return fmt.Errorf("cannot create documents file: %w", err)
	}
	bw := bufio.NewWriter(df)
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			_ = df.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = df.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = df.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = df.Close()
		return err
	}
	return df.Close()
}

// DocumentToEntry converts a parsed document for index writing.
func DocumentToEntry(d *search.Document, textHash string) Entry {
	f := d.Fields()
	return Entry{
		ID:          f.ID,
		Kind:        string(f.Kind),
		Name:        f.Name,
		Description: f.Description,
		Keywords:    f.Keywords,
		Category:    f.Category,
		PainPoints:  f.PainPoints,
		Body:        f.Body,
		Source:      f.Source,
		TextHash:    textHash,
	}
}
