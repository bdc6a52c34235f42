package search

import "sort"

// Unbounded disables the result cap in RankOptions.
const Unbounded = -1

// RankOptions controls which match results survive ranking.
type RankOptions struct {
	// MinScore is inclusive. Zero-score results are always dropped.
	MinScore float64
	// MaxResults caps the output. Zero yields no results; Unbounded (or any
	// negative value) disables the cap.
	MaxResults int
}

// DefaultRankOptions keeps every non-zero match.
func DefaultRankOptions() RankOptions {
	return RankOptions{MinScore: 0, MaxResults: Unbounded}
}

// SortResults orders results by score (descending), then by number of matched
// keywords (descending), then by document ID (ascending).
func SortResults(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.MatchedKeywords) != len(b.MatchedKeywords) {
			return len(a.MatchedKeywords) > len(b.MatchedKeywords)
		}
		return a.DocumentID < b.DocumentID
	})
}

// Rank filters, orders and truncates results. The input slice is not modified.
// An empty return value is a valid outcome, not an error.
func Rank(results []MatchResult, opts RankOptions) []MatchResult {
	if opts.MaxResults == 0 {
		return []MatchResult{}
	}

	out := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if r.Score <= 0 || r.Score < opts.MinScore {
			continue
		}
		out = append(out, r)
	}
	SortResults(out)

	if opts.MaxResults > 0 && len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out
}

// IDs extracts the document ids of ranked results, preserving order.
func IDs(results []MatchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.DocumentID
	}
	return ids
}
