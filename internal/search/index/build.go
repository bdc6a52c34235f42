package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamusis/skillscope/internal/logger"
	"github.com/kamusis/skillscope/internal/search"
)

// Build parses sources and writes the resulting catalog to outDir. Sources
// that fail to parse are left out of the index and returned as warnings.
//
// It is the caller's responsibility to apply an atomic swap strategy.
func Build(ctx context.Context, sources []search.Source, outDir string) (*Index, []*search.ParseError, error) {
	if outDir == "" {
		return nil, nil, fmt.Errorf("out dir is required")
	}

	snap, warns := search.Load(ctx, sources)
	if snap.Len() == 0 {
		return nil, warns, fmt.Errorf("no valid documents among %d sources", len(sources))
	}

	hashes := make(map[string]string, len(sources))
	for _, s := range sources {
		hashes[s.ID] = TextHash(s.Content)
	}

	entries := make([]Entry, 0, snap.Len())
	for _, d := range snap.All() {
		entries = append(entries, DocumentToEntry(d, hashes[d.Source()]))
	}

	manifest := Manifest{
		IndexVersion: currentVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		CorpusHash:   CorpusHash(sources),
	}
	if err := Write(ctx, outDir, manifest, entries); err != nil {
		return nil, warns, err
	}
	manifest.DocumentsFile = defaultDocumentsFile
	manifest.DocumentCount = len(entries)

	logger.G(ctx).WithField("dir", outDir).WithField("documents", len(entries)).Debug("index written")
	return &Index{Manifest: manifest, Entries: entries}, warns, nil
}

// Install moves a freshly built index from srcDir into destDir while holding
// destDir's lock, so concurrent Load calls never observe a half-swapped index.
func Install(ctx context.Context, srcDir, destDir string) error {
	unlock, err := acquireLock(ctx, destDir, false, DefaultLockTimeout)
	if err != nil {
		return err
	}
	defer unlock()
	return AtomicSwap(srcDir, destDir)
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
