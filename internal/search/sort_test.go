package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_TieBrokenByMatchedCount(t *testing.T) {
	// Both score 0.5; "zeta" matched 2 of 4 keywords, "alpha-doc" 1 of 2.
	snap := NewSnapshot([]*Document{
		newTestDoc(t, "alpha-doc", "misc", "gamma", "y1"),
		newTestDoc(t, "zeta", "misc", "alpha", "beta", "x1", "x2"),
	})

	got := Select(snap, NewQuery("alpha beta gamma"), DefaultRankOptions())

	require.Len(t, got, 2)
	assert.Equal(t, 0.5, got[0].Score)
	assert.Equal(t, 0.5, got[1].Score)
	assert.Equal(t, []string{"zeta", "alpha-doc"}, IDs(got))
}

func TestRank_TieBrokenByID(t *testing.T) {
	results := []MatchResult{
		{DocumentID: "b", Score: 1, MatchedKeywords: []string{"x"}},
		{DocumentID: "a", Score: 1, MatchedKeywords: []string{"y"}},
		{DocumentID: "c", Score: 2, MatchedKeywords: []string{"z"}},
	}

	got := Rank(results, DefaultRankOptions())

	assert.Equal(t, []string{"c", "a", "b"}, IDs(got))
	assert.Equal(t, "b", results[0].DocumentID, "input must not be reordered")
}

func TestRank_MaxResultsZeroIsEmpty(t *testing.T) {
	results := []MatchResult{
		{DocumentID: "a", Score: 1, MatchedKeywords: []string{"x"}},
		{DocumentID: "b", Score: 0.5, MatchedKeywords: []string{"y"}},
	}

	got := Rank(results, RankOptions{MaxResults: 0})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRank_MaxResultsTruncates(t *testing.T) {
	results := []MatchResult{
		{DocumentID: "a", Score: 0.2, MatchedKeywords: []string{"x"}},
		{DocumentID: "b", Score: 0.9, MatchedKeywords: []string{"y"}},
		{DocumentID: "c", Score: 0.5, MatchedKeywords: []string{"z"}},
	}

	assert.Equal(t, []string{"b", "c"}, IDs(Rank(results, RankOptions{MaxResults: 2})))
	assert.Equal(t, []string{"b", "c", "a"}, IDs(Rank(results, RankOptions{MaxResults: Unbounded})))
	assert.Equal(t, []string{"b", "c", "a"}, IDs(Rank(results, RankOptions{MaxResults: 10})))
}

func TestRank_MinScoreIsInclusive(t *testing.T) {
	snap := NewSnapshot([]*Document{
		newTestDoc(t, "half", "misc", "alpha", "beta"),
		newTestDoc(t, "third", "misc", "alpha", "x", "y"),
	})
	q := NewQuery("alpha")

	atBoundary := Select(snap, q, RankOptions{MinScore: 0.5, MaxResults: Unbounded})
	assert.Equal(t, []string{"half"}, IDs(atBoundary))

	above := Select(snap, q, RankOptions{MinScore: 0.5000001, MaxResults: Unbounded})
	assert.Empty(t, above)
}

func TestRank_DropsZeroScores(t *testing.T) {
	results := []MatchResult{
		{DocumentID: "a", Score: 0},
		{DocumentID: "b", Score: 0.25},
	}

	got := Rank(results, RankOptions{MinScore: 0, MaxResults: Unbounded})

	assert.Equal(t, []string{"b"}, IDs(got))
}

func TestSelect_NoMatchIsEmptyNotError(t *testing.T) {
	snap := NewSnapshot([]*Document{newTestDoc(t, "sec-1", "security", "xss")})

	got := Select(snap, NewQuery("bake a cake"), DefaultRankOptions())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelect_Deterministic(t *testing.T) {
	var docs []*Document
	for _, id := range []string{"m", "c", "x", "a", "q", "b"} {
		docs = append(docs, newTestDoc(t, id, "misc", "deploy", "rollback"))
	}
	docs = append(docs, newTestDoc(t, "z", "ops", "deploy"))
	snap := NewSnapshot(docs)
	q := NewQuery("deploy to prod ops")

	first := Select(snap, q, DefaultRankOptions())
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Select(snap, q, DefaultRankOptions()))
	}
	assert.Equal(t, []string{"z", "a", "b", "c", "m", "q", "x"}, IDs(first))
}

func TestSelect_KindFilter(t *testing.T) {
	skill := newTestDoc(t, "s", "ops", "deploy")
	cmd, err := NewDocument(DocumentFields{ID: "c", Kind: KindCommand, Category: "ops", Keywords: []string{"deploy"}})
	require.NoError(t, err)
	snap := NewSnapshot([]*Document{skill, cmd})

	assert.Equal(t, []string{"c", "s"}, IDs(Select(snap, NewQuery("deploy"), DefaultRankOptions())))
	assert.Equal(t, []string{"c"}, IDs(Select(snap, NewQuery("deploy", KindCommand), DefaultRankOptions())))
	assert.Equal(t, []string{"s"}, IDs(Select(snap, NewQuery("deploy", KindSkill), DefaultRankOptions())))
}
