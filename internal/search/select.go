package search

// MatchAll scores every document of snap that q's kind filter admits, in
// snapshot order.
func MatchAll(snap *Snapshot, q Query) []MatchResult {
	out := make([]MatchResult, 0, len(snap.docs))
	for _, d := range snap.docs {
		if !q.allows(d.kind) {
			continue
		}
		out = append(out, Match(q, d))
	}
	return out
}

// Select runs the whole lookup against one snapshot: score every document,
// then rank. The result is deterministic for a given snapshot, query and opts.
func Select(snap *Snapshot, q Query, opts RankOptions) []MatchResult {
	if q.Empty() {
		return []MatchResult{}
	}
	return Rank(MatchAll(snap, q), opts)
}
