package search

import "strings"

// CategoryBonus is added to a document's keyword coverage when the normalized
// query text contains the document's category. Scores therefore lie in
// [0, 1+CategoryBonus].
const CategoryBonus = 0.25

// Query is the per-lookup view of the input text. Build it with NewQuery.
type Query struct {
	Text string
	// Kinds restricts matching to the listed document kinds. Empty means all kinds.
	Kinds []Kind

	tokens     []string
	tokenSet   map[string]struct{}
	normalized string
}

// NewQuery tokenizes text once so that every document is scored against the
// same token set.
func NewQuery(text string, kinds ...Kind) Query {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return Query{
		Text:       text,
		Kinds:      kinds,
		tokens:     tokens,
		tokenSet:   set,
		normalized: strings.Join(tokens, " "),
	}
}

// Tokens returns the derived tokens in input order, duplicates included.
func (q Query) Tokens() []string {
	out := make([]string, len(q.tokens))
	copy(out, q.tokens)
	return out
}

// Normalized returns the query tokens joined by single spaces.
func (q Query) Normalized() string { return q.normalized }

// Empty reports whether the query produced no tokens.
func (q Query) Empty() bool { return len(q.tokens) == 0 }

func (q Query) allows(k Kind) bool {
	if len(q.Kinds) == 0 {
		return true
	}
	for _, want := range q.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

// hasKeyword reports whether keyword occurs in the query as a contiguous run
// of tokens. Single-token keywords reduce to set membership.
func (q Query) hasKeyword(keyword string) bool {
	if !strings.Contains(keyword, " ") {
		_, ok := q.tokenSet[keyword]
		return ok
	}
	return strings.Contains(" "+q.normalized+" ", " "+keyword+" ")
}

// Match scores d against q: the fraction of d's keywords found in the query,
// plus CategoryBonus when the normalized query contains d's category.
// An empty query or a document without keywords scores 0.
func Match(q Query, d *Document) MatchResult {
	res := MatchResult{DocumentID: d.id}
	if q.Empty() || len(d.keywords) == 0 {
		return res
	}

	for _, k := range d.keywords {
		if q.hasKeyword(k) {
			res.MatchedKeywords = append(res.MatchedKeywords, k)
		}
	}
	res.Score = float64(len(res.MatchedKeywords)) / float64(len(d.keywords))
	if d.category != "" && strings.Contains(q.normalized, d.category) {
		res.Score += CategoryBonus
	}
	return res
}
