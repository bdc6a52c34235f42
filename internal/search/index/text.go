package index

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/kamusis/skillscope/internal/search"
)

// TextHash returns a sha256 hash (hex) of one source's content.
func TextHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// CorpusHash fingerprints a set of sources independent of their order. Any
// added, removed, renamed or edited source changes it.
func CorpusHash(sources []search.Source) string {
	rows := make([]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, string(s.Kind)+"\x00"+s.ID+"\x00"+TextHash(s.Content))
	}
	sort.Strings(rows)

	h := sha256.New()
	for _, r := range rows {
		h.Write([]byte(r))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
